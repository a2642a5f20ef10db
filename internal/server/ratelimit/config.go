package ratelimit

import (
	"time"
)

// EndpointConfig is the limit for one route pattern. In Path "*" matches one
// segment and a trailing "/" matches any longer path. Limit requests are
// allowed per Window; Burst caps the saved-up tokens and defaults to Limit.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// NewConfig returns an enabled configuration with perMinute as the default
// limit and the vacancy endpoint limits. perMinute <= 0 disables limiting.
func NewConfig(perMinute int, whitelist ...string) *Config {
	if perMinute <= 0 {
		return &Config{Enabled: false}
	}
	allowed := make(map[string]bool, len(whitelist))
	for _, ip := range whitelist {
		allowed[ip] = true
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    perMinute,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleBucketTTL:   time.Hour,
		Whitelist:       allowed,
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-route limits.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// LLM calls
		{Path: "/sessions/*/generate/", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/sessions/*/llm-extract", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},

		// Outbound fetches and document decoding
		{Path: "/sessions/*/url", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/sessions/*/upload", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/sessions/*/steps/*/suggest", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/taxonomy/", Method: "GET", Limit: 30, Window: time.Minute, Burst: 10},

		{Path: "/sessions", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},
	}
}
