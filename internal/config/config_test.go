package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/vacancy-wizard/internal/llm"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
	assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
	assert.True(t, cfg.IsDev())
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Session, cfg.Session)
}

func TestLoad_YAMLWithExpansion(t *testing.T) {
	t.Setenv("TEST_GEMINI_KEY", "secret-key")
	path := writeConfig(t, `
server:
  port: 9090
fetch:
  timeout: 5s
  use_browser: true
llm:
  provider: gemini
  gemini_api_key: ${TEST_GEMINI_KEY}
  models:
    advanced: gemini-exp
session:
  idle_ttl: 2h
log:
  level: debug
  format: text
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.True(t, cfg.Fetch.UseBrowser)
	assert.Equal(t, "secret-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, 2*time.Hour, cfg.Session.IdleTTL)
	assert.Equal(t, "text", cfg.Log.Format)
	// untouched sections keep defaults
	assert.Equal(t, "https://ec.europa.eu/esco/api", cfg.Taxonomy.BaseURL)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("PORT", "7070")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SESSION_IDLE_TTL", "30m")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAIAPIKey)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTTL)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"invalid yaml", "server: [", "failed to parse config YAML"},
		{"bad port", "server:\n  port: 70000\n", "Config.Server.Port"},
		{"bad provider", "llm:\n  provider: claude\n", "Config.LLM.Provider"},
		{"bad log level", "log:\n  level: verbose\n", "Config.Log.Level"},
		{"cleanup longer than ttl", "session:\n  idle_ttl: 1m\n  cleanup_interval: 5m\n", "cleanup_interval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestClientConfig(t *testing.T) {
	t.Run("gemini with key", func(t *testing.T) {
		l := Default().LLM
		l.GeminiAPIKey = "k"
		l.Models.Lite = "tiny"

		cfg, key, ok := l.ClientConfig()
		require.True(t, ok)
		assert.Equal(t, "k", key)
		assert.Equal(t, llm.ProviderGemini, cfg.Provider)
		assert.Equal(t, "tiny", cfg.GetModel(llm.TierLite))
		assert.Equal(t, l.Temperature, cfg.Temperature)
	})

	t.Run("gemini without key", func(t *testing.T) {
		_, _, ok := Default().LLM.ClientConfig()
		assert.False(t, ok)
	})

	t.Run("vertex needs project", func(t *testing.T) {
		l := Default().LLM
		l.Provider = "vertex"
		_, _, ok := l.ClientConfig()
		assert.False(t, ok)

		l.ProjectID = "proj"
		cfg, key, ok := l.ClientConfig()
		require.True(t, ok)
		assert.Empty(t, key)
		assert.Equal(t, "us-central1", cfg.Location)
	})

	t.Run("openai base url", func(t *testing.T) {
		l := Default().LLM
		l.Provider = "openai"
		l.OpenAIAPIKey = "sk"
		l.BaseURL = "http://localhost:11434/v1"
		cfg, _, ok := l.ClientConfig()
		require.True(t, ok)
		assert.Equal(t, "http://localhost:11434/v1", cfg.BaseURL)
	})
}
