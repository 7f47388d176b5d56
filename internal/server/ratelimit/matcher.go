package ratelimit

import (
	"net/http"
	"strings"
)

// MatchEndpoint resolves the rate-limit configuration for a request. An
// exact path+method entry always wins; a config path ending in "/" acts as
// a prefix and covers everything underneath it, which is how per-run routes
// like /runs/{id} are matched. Health checks are never throttled: they get
// a zero-limit config, which the limiter treats as unlimited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == http.MethodGet {
		return &EndpointConfig{Path: path, Method: method}
	}

	var prefixMatch *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != method {
			continue
		}
		if config.Path == path {
			return config
		}
		if prefixMatch == nil && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			prefixMatch = config
		}
	}
	return prefixMatch
}
