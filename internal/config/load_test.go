package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ZAHRO_LLM_GEMINI_API_KEY", "test-key")
	t.Chdir(t.TempDir()) // no config.yaml in reach

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "zahro.db", cfg.Store.SQLitePath)
	assert.Equal(t, "test-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, "gemini-3-flash-preview", cfg.LLM.ModelName)
	assert.Equal(t, 3, cfg.LLM.MaxRetries)
	assert.Equal(t, 30, cfg.LLM.QuestionCount)
	assert.Equal(t, int64(20*1024*1024), cfg.Quiz.MaxUploadBytes)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ZAHRO_LLM_GEMINI_API_KEY", "test-key")
	t.Setenv("ZAHRO_SERVER_PORT", "9090")
	t.Setenv("ZAHRO_STORE_DRIVER", "memory")
	t.Setenv("ZAHRO_SERVER_LOG_LEVEL", "debug")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("ZAHRO_LLM_GEMINI_API_KEY", "test-key")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 7070\nstore:\n  driver: redis\n  redis_addr: localhost:6379\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, "localhost:6379", cfg.Store.RedisAddr)
}

func TestLoadValidation(t *testing.T) {
	t.Run("missing gemini key fails", func(t *testing.T) {
		t.Setenv("ZAHRO_LLM_GEMINI_API_KEY", "")
		t.Chdir(t.TempDir())

		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GeminiAPIKey")
	})

	t.Run("unknown store driver fails", func(t *testing.T) {
		t.Setenv("ZAHRO_LLM_GEMINI_API_KEY", "test-key")
		t.Setenv("ZAHRO_STORE_DRIVER", "mongodb")
		t.Chdir(t.TempDir())

		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Driver")
	})

	t.Run("invalid log level fails", func(t *testing.T) {
		t.Setenv("ZAHRO_LLM_GEMINI_API_KEY", "test-key")
		t.Setenv("ZAHRO_SERVER_LOG_LEVEL", "verbose")
		t.Chdir(t.TempDir())

		_, err := Load("")
		require.Error(t, err)
	})
}
