package ratelimit

import (
	"strings"
)

// unlimited paths are never limited for GET.
var unlimited = map[string]bool{"/health": true, "/metrics": true}

// MatchEndpoint returns the first configuration whose method and pattern match
// the request, or nil. Exact patterns are tried before prefix patterns.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == "GET" && unlimited[path] {
		return &EndpointConfig{Path: path}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && !strings.HasSuffix(config.Path, "/") && matchPattern(config.Path, path, false) {
			return config
		}
	}
	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && matchPattern(config.Path, path, true) {
			return config
		}
	}
	return nil
}

func matchPattern(pattern, path string, prefix bool) bool {
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if prefix {
		if len(got) <= len(want) {
			return false
		}
	} else if len(got) != len(want) {
		return false
	}
	for i, seg := range want {
		if seg != "*" && seg != got[i] {
			return false
		}
	}
	return true
}
