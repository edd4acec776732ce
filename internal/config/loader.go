package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PRONO_CONFIG is set
//  3. env (prefix PRONO_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("PRONO_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PRONO_ADDR, PRONO_RATE_LIMIT_MAX_REQUESTS, ...
	// Map env keys like PRONO_LOG_LEVEL -> log_level (flat keys).
	envProvider := env.Provider("PRONO_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "prono_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.RateLimitWindowMinutes <= 0 || cfg.RateLimitMaxRequests <= 0:
		return nil, fmt.Errorf("%w: rate limit window and budget must be positive", ErrInvalidConfig)
	case cfg.StatModelWeight <= 0 || cfg.DeepModelWeight <= 0:
		return nil, fmt.Errorf("%w: model blend weights must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
