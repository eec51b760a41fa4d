// Package config provides configuration loading and validation for the job board.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates process-wide settings sourced from environment variables.
type Config struct {
	Port         int
	DatabaseURL  string
	StoreTimeout time.Duration
	LogLevel     string
	AdminAPIKey  string

	JWT       *JWTConfig
	Password  *PasswordConfig
	Notify    NotifyConfig
	RateLimit RateLimitConfig
}

// NotifyConfig controls how application notifications are delivered.
type NotifyConfig struct {
	Timeout         time.Duration
	Concurrency     int
	From            string
	CredentialsFile string // Gmail service account key; empty means log-only delivery
	RedisAddr       string // asynq broker; empty means in-process dispatch
}

// RateLimitConfig holds the per-client rate limiting knobs.
type RateLimitConfig struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       []string
}

// Load reads configuration from the environment (with defaults) and validates it.
func Load() (*Config, error) {
	v := newViper()

	jwtCfg, err := newJWTConfig(v)
	if err != nil {
		return nil, err
	}
	pwCfg, err := newPasswordConfig(v)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:         v.GetInt("port"),
		DatabaseURL:  v.GetString("database_url"),
		StoreTimeout: v.GetDuration("store_timeout"),
		LogLevel:     v.GetString("log_level"),
		AdminAPIKey:  v.GetString("admin_api_key"),
		JWT:          jwtCfg,
		Password:     pwCfg,
		Notify: NotifyConfig{
			Timeout:         v.GetDuration("notify_timeout"),
			Concurrency:     v.GetInt("notify_concurrency"),
			From:            v.GetString("mail_from"),
			CredentialsFile: v.GetString("gmail_credentials_file"),
			RedisAddr:       v.GetString("redis_addr"),
		},
		RateLimit: RateLimitConfig{
			Enabled:         v.GetBool("rate_limit_enabled"),
			DefaultLimit:    v.GetInt("rate_limit_default_limit"),
			DefaultWindow:   v.GetDuration("rate_limit_default_window"),
			CleanupInterval: v.GetDuration("rate_limit_cleanup_interval"),
			Whitelist:       splitList(v.GetString("rate_limit_whitelist")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has usable values.
// DATABASE_URL is not checked here since the memory store does not need it.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT out of range: %d", c.Port)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("config error: STORE_TIMEOUT must be positive")
	}
	if c.Notify.Timeout <= 0 {
		return fmt.Errorf("config error: NOTIFY_TIMEOUT must be positive")
	}
	if c.Notify.Concurrency < 1 {
		return fmt.Errorf("config error: NOTIFY_CONCURRENCY must be at least 1")
	}
	if c.RateLimit.Enabled && c.RateLimit.DefaultLimit < 1 {
		return fmt.Errorf("config error: RATE_LIMIT_DEFAULT_LIMIT must be at least 1")
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("port", 8080)
	v.SetDefault("store_timeout", 5*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("jwt_expiration_hours", 24)
	v.SetDefault("bcrypt_cost", 12)
	v.SetDefault("notify_timeout", 10*time.Second)
	v.SetDefault("notify_concurrency", 4)
	v.SetDefault("mail_from", "no-reply@jobboard.local")
	v.SetDefault("rate_limit_enabled", true)
	v.SetDefault("rate_limit_default_limit", 1000)
	v.SetDefault("rate_limit_default_window", time.Minute)
	v.SetDefault("rate_limit_cleanup_interval", 5*time.Minute)

	// Each key maps to its upper-case environment variable (jwt_secret -> JWT_SECRET).
	for _, key := range []string{
		"port", "database_url", "store_timeout", "log_level", "admin_api_key",
		"jwt_secret", "jwt_expiration_hours", "bcrypt_cost", "password_pepper",
		"notify_timeout", "notify_concurrency", "mail_from", "gmail_credentials_file", "redis_addr",
		"rate_limit_enabled", "rate_limit_default_limit", "rate_limit_default_window",
		"rate_limit_cleanup_interval", "rate_limit_whitelist",
	} {
		_ = v.BindEnv(key, strings.ToUpper(key))
	}
	return v
}

func splitList(list string) []string {
	var out []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
