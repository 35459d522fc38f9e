package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the full runtime configuration, parsed from environment
// variables.
type Config struct {
	App       AppConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

// AppConfig identifies this gateway to the upstream media server. The three
// client identity fields are sent in every upstream auth header.
type AppConfig struct {
	Port          int    `env:"APP_PORT"                envDefault:"8080"`
	ClientName    string `env:"JELLYFIN_CLIENT_NAME"    envDefault:"media-savant"`
	DeviceName    string `env:"JELLYFIN_DEVICE_NAME"    envDefault:"media-savant"`
	ClientVersion string `env:"JELLYFIN_CLIENT_VERSION" envDefault:"0.1.0"`
}

// RedisConfig addresses the session store.
type RedisConfig struct {
	URL string `env:"REDIS_URL" envDefault:"redis://redis:6379"`
}

// AuthConfig controls the session cookie and session lifetime.
type AuthConfig struct {
	CookieName   string        `env:"SESSION_COOKIE_NAME"   envDefault:"ms_session"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	SessionTTL   time.Duration `env:"SESSION_TTL"           envDefault:"720h"`
}

// RateLimitConfig bounds per-client request rates at the router. Burst is
// the number of requests a client may spend at once; the sustained rate
// stays at PerSecond.
type RateLimitConfig struct {
	PerSecond int `env:"RATE_LIMIT_PER_SECOND" envDefault:"100"`
	Burst     int `env:"RATE_LIMIT_BURST"      envDefault:"200"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port)
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.Auth.SessionTTL)
	}
	if c.RateLimit.PerSecond <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_SECOND must be positive, got %d", c.RateLimit.PerSecond)
	}
	if c.RateLimit.Burst < c.RateLimit.PerSecond {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least RATE_LIMIT_PER_SECOND, got %d", c.RateLimit.Burst)
	}

	return nil
}
