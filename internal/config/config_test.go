package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "media-savant", cfg.App.ClientName)
	assert.Equal(t, "redis://redis:6379", cfg.Redis.URL)
	assert.Equal(t, "ms_session", cfg.Auth.CookieName)
	assert.False(t, cfg.Auth.CookieSecure)
	assert.Equal(t, 720*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 100, cfg.RateLimit.PerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JELLYFIN_CLIENT_NAME", "custom-client")
	t.Setenv("SESSION_COOKIE_NAME", "sid")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("SESSION_TTL", "24h")
	t.Setenv("REDIS_URL", "redis://localhost:6380")
	t.Setenv("RATE_LIMIT_PER_SECOND", "50")
	t.Setenv("RATE_LIMIT_BURST", "80")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "custom-client", cfg.App.ClientName)
	assert.Equal(t, "sid", cfg.Auth.CookieName)
	assert.True(t, cfg.Auth.CookieSecure)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "redis://localhost:6380", cfg.Redis.URL)
	assert.Equal(t, 50, cfg.RateLimit.PerSecond)
	assert.Equal(t, 80, cfg.RateLimit.Burst)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port out of range", key: "APP_PORT", value: "70000"},
		{name: "port not a number", key: "APP_PORT", value: "abc"},
		{name: "zero ttl", key: "SESSION_TTL", value: "0s"},
		{name: "zero rate limit", key: "RATE_LIMIT_PER_SECOND", value: "0"},
		{name: "burst below rate", key: "RATE_LIMIT_BURST", value: "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
