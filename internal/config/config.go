// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RateLimitWindowMinutes and RateLimitMaxRequests define the global
	// per-client request budget.
	RateLimitWindowMinutes int `koanf:"rate_limit_window_minutes"`
	RateLimitMaxRequests   int `koanf:"rate_limit_max_requests"`

	// CORSAllowedOrigins and CORSAllowedMethods feed the CORS allow-lists.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
	CORSAllowedMethods []string `koanf:"cors_allowed_methods"`

	// PredictionCacheTTLHours bounds how long a cached prediction is served.
	PredictionCacheTTLHours int `koanf:"prediction_cache_ttl_hours"`

	// TokenTTLHours bounds how long an issued auth token stays valid.
	TokenTTLHours int `koanf:"token_ttl_hours"`

	// StatModelWeight and DeepModelWeight set the ensemble blend.
	StatModelWeight float64 `koanf:"stat_model_weight"`
	DeepModelWeight float64 `koanf:"deep_model_weight"`
}

// New creates a Config with production defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		Addr:                    ":9080",
		RateLimitWindowMinutes:  15,
		RateLimitMaxRequests:    100,
		CORSAllowedOrigins:      []string{"https://yourapp.com"},
		CORSAllowedMethods:      []string{"GET", "POST", "PUT", "DELETE"},
		PredictionCacheTTLHours: 6,
		TokenTTLHours:           24,
		StatModelWeight:         0.6,
		DeepModelWeight:         0.4,
	}
}
