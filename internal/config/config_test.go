package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
	assert.Equal(t, 12, cfg.Password.BcryptCost)
	assert.Equal(t, 10*time.Second, cfg.Notify.Timeout)
	assert.Equal(t, 4, cfg.Notify.Concurrency)
	assert.Empty(t, cfg.Notify.RedisAddr)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 1000, cfg.RateLimit.DefaultLimit)
	assert.Empty(t, cfg.RateLimit.Whitelist)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/jobboard")
	t.Setenv("STORE_TIMEOUT", "2s")
	t.Setenv("ADMIN_API_KEY", "admin")
	t.Setenv("NOTIFY_CONCURRENCY", "8")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("RATE_LIMIT_WHITELIST", "127.0.0.1, 10.0.0.1 ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/jobboard", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Second, cfg.StoreTimeout)
	assert.Equal(t, "admin", cfg.AdminAPIKey)
	assert.Equal(t, 8, cfg.Notify.Concurrency)
	assert.Equal(t, "localhost:6379", cfg.Notify.RedisAddr)
	assert.Equal(t, []string{"127.0.0.1", "10.0.0.1"}, cfg.RateLimit.Whitelist)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:         8080,
			StoreTimeout: time.Second,
			Notify:       NotifyConfig{Timeout: time.Second, Concurrency: 1},
			RateLimit:    RateLimitConfig{Enabled: true, DefaultLimit: 10},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Port = 0 }, wantErr: "PORT"},
		{name: "port too high", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "PORT"},
		{name: "store timeout", mutate: func(c *Config) { c.StoreTimeout = 0 }, wantErr: "STORE_TIMEOUT"},
		{name: "notify timeout", mutate: func(c *Config) { c.Notify.Timeout = 0 }, wantErr: "NOTIFY_TIMEOUT"},
		{name: "notify concurrency", mutate: func(c *Config) { c.Notify.Concurrency = 0 }, wantErr: "NOTIFY_CONCURRENCY"},
		{name: "rate limit", mutate: func(c *Config) { c.RateLimit.DefaultLimit = 0 }, wantErr: "RATE_LIMIT"},
		{
			name:   "rate limit disabled ignores limit",
			mutate: func(c *Config) { c.RateLimit = RateLimitConfig{Enabled: false} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
