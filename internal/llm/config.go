// Package llm provides LLM configuration and client abstractions over Gemini,
// Vertex AI and OpenAI-compatible chat completion endpoints.
package llm

import (
	"fmt"
	"time"
)

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: field extraction, short suggestions
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: emails, interview sheets
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long-form generation: job ads, personas
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini API (API key auth)
	ProviderGemini Provider = "gemini"
	// ProviderVertex is Gemini served through Vertex AI (ADC auth)
	ProviderVertex Provider = "vertex"
	// ProviderOpenAI is any OpenAI-compatible chat completions endpoint
	ProviderOpenAI Provider = "openai"
)

// ParseProvider converts a configuration string into a Provider.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(s); p {
	case ProviderGemini, ProviderVertex, ProviderOpenAI:
		return p, nil
	case "":
		return ProviderGemini, nil
	default:
		return "", fmt.Errorf("unknown llm provider %q", s)
	}
}

// DefaultOpenAIBaseURL is used when no base URL is configured for ProviderOpenAI.
const DefaultOpenAIBaseURL = "https://api.openai.com/v1"

// DefaultTimeout bounds a single completion call.
const DefaultTimeout = 60 * time.Second

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
	Timeout     time.Duration

	// ProjectID and Location are used by ProviderVertex.
	ProjectID string
	Location  string

	// BaseURL is used by ProviderOpenAI.
	BaseURL string
}

// DefaultConfig returns the default configuration (Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: 0.1,
		Timeout:     DefaultTimeout,
	}
}

// DefaultVertexConfig returns the default Vertex AI configuration.
func DefaultVertexConfig(projectID, location string) *Config {
	if location == "" {
		location = "us-central1"
	}
	return &Config{
		Provider: ProviderVertex,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: 0.2,
		Timeout:     DefaultTimeout,
		ProjectID:   projectID,
		Location:    location,
	}
}

// DefaultOpenAIConfig returns the default OpenAI configuration.
func DefaultOpenAIConfig(baseURL string) *Config {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	return &Config{
		Provider: ProviderOpenAI,
		Models: map[ModelTier]string{
			TierLite:     "gpt-4o-mini",
			TierStandard: "gpt-4o-mini",
			TierAdvanced: "gpt-4o",
		},
		Temperature: 0.3,
		Timeout:     DefaultTimeout,
		BaseURL:     baseURL,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := *c
	next.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[tier] = model
	return &next
}
