package ratelimit

import (
	"time"

	"github.com/jonathan/resume-matcher/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	DefaultBurst    int
	CleanupInterval time.Duration
	IdleTimeout     time.Duration // Buckets unused this long are dropped
	EndpointConfigs []EndpointConfig
}

// FromServerConfig derives limiter settings from the server section of the
// application config.
func FromServerConfig(sc config.ServerConfig) *Config {
	return &Config{
		Enabled:         sc.RateLimitEnabled,
		DefaultLimit:    sc.RateLimitPerMinute,
		DefaultWindow:   time.Minute,
		DefaultBurst:    sc.RateLimitBurst,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		EndpointConfigs: DefaultEndpointConfigs(sc.RateLimitPerMinute, sc.RateLimitBurst),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific configurations.
// /analyze gets half the /parse allowance.
func DefaultEndpointConfigs(perMinute, burst int) []EndpointConfig {
	analyze := max(perMinute/2, 1)
	analyzeBurst := max(burst/2, 1)
	return []EndpointConfig{
		{Path: "/analyze", Method: "POST", Limit: analyze, Window: time.Minute, Burst: analyzeBurst},
		{Path: "/parse", Method: "POST", Limit: perMinute, Window: time.Minute, Burst: burst},
	}
}
