package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvModelDir     = "TEXTCAT_MODEL_DIR"
	EnvCategoryFile = "TEXTCAT_CATEGORY_FILE"
	EnvLogLevel     = "TEXTCAT_LOG_LEVEL"
)

// SegmenterConfig selects the tokenization variant.
type SegmenterConfig struct {
	Type      string `yaml:"type"`
	WithSpace bool   `yaml:"with_space"`
}

// VectorConfig configures document vector construction.
type VectorConfig struct {
	MaxFeatures int    `yaml:"max_features"`
	Truncation  string `yaml:"truncation"`
	Normalize   bool   `yaml:"normalize"`
}

// ModelConfig locates the model artifacts and category list.
type ModelConfig struct {
	Dir          string `yaml:"dir"`
	CategoryFile string `yaml:"category_file"`
	Encoding     string `yaml:"encoding"`
}

// TrainConfig holds scorer training parameters.
type TrainConfig struct {
	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"learning_rate"`
	L2           float64 `yaml:"l2"`
	Seed         uint64  `yaml:"seed"`
}

// ClassifyConfig holds classification defaults.
type ClassifyConfig struct {
	TopN int `yaml:"top_n"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Segmenter SegmenterConfig `yaml:"segmenter"`
	Vector    VectorConfig    `yaml:"vector"`
	Model     ModelConfig     `yaml:"model"`
	Train     TrainConfig     `yaml:"train"`
	Classify  ClassifyConfig  `yaml:"classify"`
	Log       LogConfig       `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnv(cfg)
			deriveCategoryFile(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	applyEnv(&cfg)
	deriveCategoryFile(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./textcat.yaml first, then ~/.config/textcat/config.yaml.
// If neither exists, it returns defaults without writing anything.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "textcat.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(userPath)
	return cfg, userPath, err
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "textcat", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	cfg := defaultConfig()
	deriveCategoryFile(cfg)
	return cfg
}

// defaultConfig leaves Model.CategoryFile empty; it follows Model.Dir unless
// set explicitly.
func defaultConfig() *AppConfig {
	return &AppConfig{
		Segmenter: SegmenterConfig{Type: "bilingual_bigram"},
		Vector:    VectorConfig{MaxFeatures: 5000, Truncation: "weight"},
		Model:     ModelConfig{Dir: "news_model", Encoding: "utf-8"},
		Train:     TrainConfig{Epochs: 10, LearningRate: 0.5, L2: 1e-6, Seed: 1},
		Classify:  ClassifyConfig{TopN: 3},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Segmenter.Type == "" {
		cfg.Segmenter.Type = def.Segmenter.Type
	}
	if cfg.Vector.MaxFeatures == 0 {
		cfg.Vector.MaxFeatures = def.Vector.MaxFeatures
	}
	if cfg.Vector.Truncation == "" {
		cfg.Vector.Truncation = def.Vector.Truncation
	}
	if cfg.Model.Dir == "" {
		cfg.Model.Dir = def.Model.Dir
	}
	if cfg.Model.Encoding == "" {
		cfg.Model.Encoding = def.Model.Encoding
	}
	if cfg.Train.Epochs == 0 {
		cfg.Train.Epochs = def.Train.Epochs
	}
	if cfg.Train.LearningRate == 0 {
		cfg.Train.LearningRate = def.Train.LearningRate
	}
	if cfg.Classify.TopN == 0 {
		cfg.Classify.TopN = def.Classify.TopN
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}

// deriveCategoryFile runs after applyEnv so the category file follows an
// overridden model directory.
func deriveCategoryFile(cfg *AppConfig) {
	if cfg.Model.CategoryFile == "" {
		cfg.Model.CategoryFile = filepath.Join(cfg.Model.Dir, "category")
	}
}

func applyEnv(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvModelDir)); v != "" {
		cfg.Model.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCategoryFile)); v != "" {
		cfg.Model.CategoryFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}
}
