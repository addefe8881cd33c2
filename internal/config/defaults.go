package config

import "github.com/quantlab/stockdash/internal/common"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 5000,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/stockdash",
			},
		},
		Logging: common.LoggingConfig{
			Level: "info",
		},
		Auth: AuthConfig{
			JWTSecret:       "",
			SessionTTLHours: 24,
		},
		Market: MarketConfig{
			ReferenceDate:    "2023-01-15",
			SeriesTTLSeconds: 300,
			SearchTTLSeconds: 120,
			QuoteTTLSeconds:  60,
			RateLimit: RateLimitConfig{
				Requests:      100,
				WindowMinutes: 15,
			},
		},
	}
}
