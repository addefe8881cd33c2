package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/quantlab/stockdash/internal/common"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig         `toml:"server"`
	Storage StorageConfig        `toml:"storage"`
	Logging common.LoggingConfig `toml:"logging"`
	Auth    AuthConfig           `toml:"auth"`
	Market  MarketConfig         `toml:"market"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// StorageConfig contains storage layer settings.
type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig contains BadgerDB-specific settings.
type BadgerConfig struct {
	Path string `toml:"path"`
}

// AuthConfig contains session and credential settings.
type AuthConfig struct {
	JWTSecret       string `toml:"jwt_secret"`
	SessionTTLHours int    `toml:"session_ttl_hours"`
}

// MarketConfig contains synthetic market-data engine settings.
type MarketConfig struct {
	// ReferenceDate anchors all timeframe resolution (YYYY-MM-DD). It is a
	// fixed calendar date, never derived from wall-clock time, so generated
	// series stay stable across runs.
	ReferenceDate    string          `toml:"reference_date"`
	SeriesTTLSeconds int             `toml:"series_ttl_seconds"`
	SearchTTLSeconds int             `toml:"search_ttl_seconds"`
	QuoteTTLSeconds  int             `toml:"quote_ttl_seconds"`
	RateLimit        RateLimitConfig `toml:"rate_limit"`
}

// RateLimitConfig contains the shared API rate-limit settings.
type RateLimitConfig struct {
	Requests      int `toml:"requests"`
	WindowMinutes int `toml:"window_minutes"`
}

// SessionTTL returns the configured session lifetime.
func (c *Config) SessionTTL() time.Duration {
	hours := c.Auth.SessionTTLHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// SeriesTTL returns the cache TTL for synthesized series.
func (c *Config) SeriesTTL() time.Duration {
	return time.Duration(c.Market.SeriesTTLSeconds) * time.Second
}

// SearchTTL returns the cache TTL for search results.
func (c *Config) SearchTTL() time.Duration {
	return time.Duration(c.Market.SearchTTLSeconds) * time.Second
}

// QuoteTTL returns the cache TTL for quotes.
func (c *Config) QuoteTTL() time.Duration {
	return time.Duration(c.Market.QuoteTTLSeconds) * time.Second
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies STOCKDASH_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("STOCKDASH_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("STOCKDASH_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if badgerPath := os.Getenv("STOCKDASH_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if level := os.Getenv("STOCKDASH_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if secret := os.Getenv("STOCKDASH_JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}
	if refDate := os.Getenv("STOCKDASH_REFERENCE_DATE"); refDate != "" {
		config.Market.ReferenceDate = refDate
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
