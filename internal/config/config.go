// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Durations are stored as integer units in the key name so env vars stay plain numbers.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Store selects the key-value backend: memory or redis.
	Store string `koanf:"store"`

	// Redis connection, used when Store is redis.
	RedisAddr      string `koanf:"redis_addr"`
	RedisPassword  string `koanf:"redis_password"`
	RedisDB        int    `koanf:"redis_db"`
	RedisKeyPrefix string `koanf:"redis_key_prefix"`

	// RefreshIntervalSeconds is the period of the refresh trigger.
	RefreshIntervalSeconds int `koanf:"refresh_interval_seconds"`

	// CloseToGameThresholdMinutes: games starting sooner than this are refreshed every cycle.
	CloseToGameThresholdMinutes int `koanf:"close_to_game_threshold_minutes"`

	// StaleThresholdMinutes: snapshots older than this are refreshed.
	StaleThresholdMinutes int `koanf:"stale_threshold_minutes"`

	// FetchTimeoutMS bounds each provider call.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// MaxConcurrentFetches caps in-flight provider calls per cycle.
	MaxConcurrentFetches int `koanf:"max_concurrent_fetches"`

	// Provider endpoints and credentials.
	ESPNBaseURL           string `koanf:"espn_base_url"`
	SportradarBaseURL     string `koanf:"sportradar_base_url"`
	SportradarAPIKey      string `koanf:"sportradar_api_key"`
	SportradarAccessLevel string `koanf:"sportradar_access_level"`

	// Environment is attached to every metric as the const label env when set.
	Environment string `koanf:"environment"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:                    "info",
		LogFormat:                   "text",
		Addr:                        ":9080",
		Store:                       StoreMemory,
		RedisAddr:                   "localhost:6379",
		RedisKeyPrefix:              "livescores:",
		RefreshIntervalSeconds:      60,
		CloseToGameThresholdMinutes: 60,
		StaleThresholdMinutes:       360,
		FetchTimeoutMS:              10_000,
		MaxConcurrentFetches:        16,
		ESPNBaseURL:                 "https://site.api.espn.com/apis/site/v2/sports",
		SportradarBaseURL:           "https://api.sportradar.com",
		SportradarAccessLevel:       "trial",
	}
}

// Validate checks invariants the service relies on.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.Store != StoreMemory && c.Store != StoreRedis:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	case c.Store == StoreRedis && strings.TrimSpace(c.RedisAddr) == "":
		return fmt.Errorf("%w: redis_addr is required for the redis store", ErrInvalidConfig)
	case c.RefreshIntervalSeconds <= 0:
		return fmt.Errorf("%w: refresh_interval_seconds must be positive", ErrInvalidConfig)
	case c.CloseToGameThresholdMinutes <= 0:
		return fmt.Errorf("%w: close_to_game_threshold_minutes must be positive", ErrInvalidConfig)
	case c.StaleThresholdMinutes <= 0:
		return fmt.Errorf("%w: stale_threshold_minutes must be positive", ErrInvalidConfig)
	case c.FetchTimeoutMS <= 0:
		return fmt.Errorf("%w: fetch_timeout_ms must be positive", ErrInvalidConfig)
	case c.MaxConcurrentFetches <= 0:
		return fmt.Errorf("%w: max_concurrent_fetches must be positive", ErrInvalidConfig)
	}
	return nil
}

// RefreshInterval returns RefreshIntervalSeconds as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

// CloseToGameThreshold returns CloseToGameThresholdMinutes as a duration.
func (c *Config) CloseToGameThreshold() time.Duration {
	return time.Duration(c.CloseToGameThresholdMinutes) * time.Minute
}

// StaleThreshold returns StaleThresholdMinutes as a duration.
func (c *Config) StaleThreshold() time.Duration {
	return time.Duration(c.StaleThresholdMinutes) * time.Minute
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}
