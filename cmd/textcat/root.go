package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"textcat/internal/config"
	"textcat/internal/logging"
)

var (
	cfgPath  string
	logLevel string
	blobPath string

	appCfg *config.AppConfig
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "textcat",
	Short: "Bilingual news text classifier",
	Long: `textcat classifies Chinese and English text into categories using a
lexicon of unigram and bigram features weighted by TF-IDF.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file (default ./textcat.yaml or ~/.config/textcat/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
	rootCmd.PersistentFlags().StringVar(&blobPath, "blob", "", "Load the model from a portable blob file instead of the model directory")
}

func setup(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	var err error
	if cfgPath == "" {
		appCfg, _, err = config.LoadDefault()
	} else {
		appCfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return err
	}
	if logLevel != "" {
		appCfg.Log.Level = logLevel
	}
	logger, err = logging.New(appCfg.Log.Level, appCfg.Log.Format, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}
