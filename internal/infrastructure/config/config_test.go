package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.Model)
	assert.Equal(t, "localhost", cfg.Qdrant.Host)
	assert.Equal(t, 6334, cfg.Qdrant.Port)
	assert.Equal(t, "companion_notes", cfg.Qdrant.Collection)
	assert.Equal(t, 10, cfg.Quota.DailyLimit)
	assert.Equal(t, 30, cfg.Quota.WeeklyLimit)
	assert.Equal(t, 75, cfg.Quota.MonthlyLimit)
	assert.Equal(t, 50, cfg.Extraction.MinContentLength)
	assert.Equal(t, 60*time.Second, cfg.Extraction.Timeout())
}

func TestLoad_MissingConfig(t *testing.T) {
	_, err := Load(t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "companion init")
}

func TestLoad_MergesWithDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
quota:
  daily_limit: 5
qdrant:
  host: qdrant.internal
`)

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Quota.DailyLimit)
	assert.Equal(t, "qdrant.internal", cfg.Qdrant.Host)
	// Untouched fields keep their defaults.
	assert.Equal(t, 30, cfg.Quota.WeeklyLimit)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	// The database path defaults into the config directory.
	assert.Equal(t, filepath.Join(ConfigDir(dir), DefaultDatabaseFile), cfg.SQLite.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "llm:\n  model: gpt-4o\n")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "sk-test", cfg.Embedder.APIKey)
}

func TestLoad_ConfigKeyBeatsEnv(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "llm:\n  api_key: from-file\n")
	t.Setenv("OPENAI_API_KEY", "from-env")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.LLM.APIKey)
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteDefault(dir))
	assert.True(t, Exists(dir))

	// The written default must round-trip through Load.
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Quota.DailyLimit)
	assert.Equal(t, 60, cfg.Extraction.TimeoutSeconds)

	err = WriteDefault(dir)
	require.Error(t, err, "writing over an existing config must fail")
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(ConfigDir(dir), 0755))
	require.NoError(t, os.WriteFile(ConfigFilePath(dir), []byte(content), 0644))
}
