// Package config loads the application configuration: defaults, then an
// optional YAML file, then environment variables, then validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/vacancy-wizard/internal/llm"
)

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Cache    CacheConfig    `yaml:"cache"`
	LLM      LLMConfig      `yaml:"llm"`
	Taxonomy TaxonomyConfig `yaml:"taxonomy"`
	Session  SessionConfig  `yaml:"session"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port            int           `yaml:"port" env:"PORT" validate:"min=1,max=65535"`
	RateLimitPerMin int           `yaml:"rate_limit_per_min" env:"RATE_LIMIT_PER_MIN" validate:"min=0"`
	MaxUploadMB     int64         `yaml:"max_upload_mb" env:"MAX_UPLOAD_MB" validate:"min=1,max=100"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

// FetchConfig configures URL retrieval.
type FetchConfig struct {
	Timeout        time.Duration `yaml:"timeout" env:"FETCH_TIMEOUT" validate:"gt=0"`
	UserAgent      string        `yaml:"user_agent" env:"FETCH_USER_AGENT" validate:"required"`
	UseBrowser     bool          `yaml:"use_browser" env:"FETCH_USE_BROWSER"`
	BrowserTimeout time.Duration `yaml:"browser_timeout" env:"FETCH_BROWSER_TIMEOUT" validate:"gt=0"`
}

// CacheConfig configures the optional PostgreSQL page cache. An empty
// DatabaseURL disables it.
type CacheConfig struct {
	DatabaseURL string        `yaml:"database_url" env:"DATABASE_URL" validate:"omitempty,url"`
	TTL         time.Duration `yaml:"ttl" env:"PAGE_CACHE_TTL" validate:"gt=0"`
}

// LLMConfig selects and configures the completion provider.
type LLMConfig struct {
	Provider     string        `yaml:"provider" env:"LLM_PROVIDER" validate:"omitempty,oneof=gemini vertex openai"`
	GeminiAPIKey string        `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	OpenAIAPIKey string        `yaml:"openai_api_key" env:"OPENAI_API_KEY"`
	BaseURL      string        `yaml:"base_url" env:"OPENAI_BASE_URL" validate:"omitempty,url"`
	ProjectID    string        `yaml:"project_id" env:"GOOGLE_CLOUD_PROJECT"`
	Location     string        `yaml:"location" env:"GOOGLE_CLOUD_LOCATION"`
	Models       ModelOverride `yaml:"models"`
	Temperature  float32       `yaml:"temperature" env:"LLM_TEMPERATURE" validate:"min=0,max=2"`
	Timeout      time.Duration `yaml:"timeout" env:"LLM_TIMEOUT" validate:"gt=0"`
}

// ModelOverride replaces the provider default model of a tier when set.
type ModelOverride struct {
	Lite     string `yaml:"lite" env:"LLM_MODEL_LITE"`
	Standard string `yaml:"standard" env:"LLM_MODEL_STANDARD"`
	Advanced string `yaml:"advanced" env:"LLM_MODEL_ADVANCED"`
}

// TaxonomyConfig configures the ESCO client.
type TaxonomyConfig struct {
	Enabled  bool          `yaml:"enabled" env:"ESCO_ENABLED"`
	BaseURL  string        `yaml:"base_url" env:"ESCO_BASE_URL" validate:"required,url"`
	Language string        `yaml:"language" env:"ESCO_LANGUAGE" validate:"oneof=de en"`
	Timeout  time.Duration `yaml:"timeout" env:"ESCO_TIMEOUT" validate:"gt=0"`
}

// SessionConfig bounds in-memory wizard sessions.
type SessionConfig struct {
	IdleTTL         time.Duration `yaml:"idle_ttl" env:"SESSION_IDLE_TTL" validate:"gt=0"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"SESSION_CLEANUP_INTERVAL" validate:"gt=0"`
	Language        string        `yaml:"language" env:"DEFAULT_LANGUAGE" validate:"oneof=de en"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" env:"LOG_FORMAT" validate:"oneof=json text"`
	Env    string `yaml:"env" env:"APP_ENV" validate:"required"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			RateLimitPerMin: 60,
			MaxUploadMB:     10,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    120 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Fetch: FetchConfig{
			Timeout:        10 * time.Second,
			UserAgent:      "Mozilla/5.0 (compatible; VacancyWizard/1.0)",
			BrowserTimeout: 30 * time.Second,
		},
		Cache: CacheConfig{TTL: 24 * time.Hour},
		LLM: LLMConfig{
			Provider:    string(llm.ProviderGemini),
			Temperature: 0.2,
			Timeout:     llm.DefaultTimeout,
		},
		Taxonomy: TaxonomyConfig{
			Enabled:  true,
			BaseURL:  "https://ec.europa.eu/esco/api",
			Language: "en",
			Timeout:  10 * time.Second,
		},
		Session: SessionConfig{
			IdleTTL:         time.Hour,
			CleanupInterval: time.Minute,
			Language:        "de",
		},
		Log: LogConfig{Level: "info", Format: "json", Env: "dev"},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment are used. ${VAR} references in the file are
// expanded before parsing.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), c); err != nil {
		return fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return nil
}

var validate = validator.New()

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config error: %w", err)
	}
	if c.Session.CleanupInterval > c.Session.IdleTTL {
		return fmt.Errorf("config error: session cleanup_interval must not exceed idle_ttl")
	}
	return nil
}

// IsDev reports whether the app runs in the development environment.
func (c *Config) IsDev() bool {
	return strings.EqualFold(c.Log.Env, "dev")
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// MaxUploadBytes converts MaxUploadMB to bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.Server.MaxUploadMB << 20
}

// ClientConfig returns the llm package configuration for the selected
// provider and the API key it needs. ok is false when the provider lacks
// credentials, in which case LLM features stay disabled.
func (l LLMConfig) ClientConfig() (cfg *llm.Config, apiKey string, ok bool) {
	provider, err := llm.ParseProvider(l.Provider)
	if err != nil {
		return nil, "", false
	}
	switch provider {
	case llm.ProviderVertex:
		cfg = llm.DefaultVertexConfig(l.ProjectID, l.Location)
		ok = l.ProjectID != ""
	case llm.ProviderOpenAI:
		cfg = llm.DefaultOpenAIConfig(l.BaseURL)
		apiKey = l.OpenAIAPIKey
		ok = apiKey != ""
	default:
		cfg = llm.DefaultGeminiConfig()
		apiKey = l.GeminiAPIKey
		ok = apiKey != ""
	}

	cfg.Temperature = l.Temperature
	cfg.Timeout = l.Timeout
	for tier, model := range map[llm.ModelTier]string{
		llm.TierLite:     l.Models.Lite,
		llm.TierStandard: l.Models.Standard,
		llm.TierAdvanced: l.Models.Advanced,
	} {
		if model != "" {
			cfg.Models[tier] = model
		}
	}
	return cfg, apiKey, ok
}
