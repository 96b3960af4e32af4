package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "bilingual_bigram", cfg.Segmenter.Type)
	assert.Equal(t, 5000, cfg.Vector.MaxFeatures)
	assert.Equal(t, "weight", cfg.Vector.Truncation)
	assert.Equal(t, filepath.Join("news_model", "category"), cfg.Model.CategoryFile)
	assert.Equal(t, 3, cfg.Classify.TopN)
}

func TestLoadAppliesDefaultsToPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textcat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
segmenter:
  type: english_bigram
  with_space: true
model:
  dir: /srv/models/news
vector:
  truncation: id
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "english_bigram", cfg.Segmenter.Type)
	assert.True(t, cfg.Segmenter.WithSpace)
	assert.Equal(t, "id", cfg.Vector.Truncation)
	assert.Equal(t, 5000, cfg.Vector.MaxFeatures)
	assert.Equal(t, filepath.Join("/srv/models/news", "category"), cfg.Model.CategoryFile)
	assert.Equal(t, "utf-8", cfg.Model.Encoding)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("segmenter: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvModelDir, "/env/model")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/env/model", cfg.Model.Dir)
	assert.Equal(t, filepath.Join("/env/model", "category"), cfg.Model.CategoryFile)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvModelDirOverridesFile(t *testing.T) {
	dir := t.TempDir()
	derived := filepath.Join(dir, "derived.yaml")
	require.NoError(t, os.WriteFile(derived, []byte("model:\n  dir: /file/model\n"), 0o644))
	explicit := filepath.Join(dir, "explicit.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("model:\n  dir: /file/model\n  category_file: /file/cats\n"), 0o644))
	t.Setenv(EnvModelDir, "/env/model")

	cfg, err := Load(derived)
	require.NoError(t, err)
	assert.Equal(t, "/env/model", cfg.Model.Dir)
	assert.Equal(t, filepath.Join("/env/model", "category"), cfg.Model.CategoryFile)

	cfg, err = Load(explicit)
	require.NoError(t, err)
	assert.Equal(t, "/env/model", cfg.Model.Dir)
	assert.Equal(t, "/file/cats", cfg.Model.CategoryFile)
}

func TestEnvCategoryFileWins(t *testing.T) {
	t.Setenv(EnvModelDir, "/env/model")
	t.Setenv(EnvCategoryFile, "/env/cats")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/env/cats", cfg.Model.CategoryFile)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Classify.TopN = 5
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
