// Package config loads server configuration from environment variables,
// optionally overridden by a YAML config file pointed at by CONFIG.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Config holds everything main needs to wire the server together.
type Config struct {
	// Port the HTTP server listens on.
	Port string `yaml:"port"`

	// Env is the deployment environment: "development" or "production".
	// Controls cookie security attributes and logger verbosity.
	Env string `yaml:"env"`

	// DatabaseURL is the postgres DSN. Required.
	DatabaseURL string `yaml:"database_url"`

	// RedisURL, when set, switches session storage from postgres to Redis.
	RedisURL string `yaml:"redis_url"`

	// SessionTTL is how long a session stays valid after creation.
	SessionTTL time.Duration `yaml:"session_ttl"`

	// AllowedOrigins is the CORS allow-list.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// LoginRatePerMin caps login/register attempts per client IP per minute.
	LoginRatePerMin int `yaml:"login_rate_per_min"`
}

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is empty")

// Load reads configuration from the environment. If CONFIG names a YAML
// file, values from the file take precedence over environment defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:            getEnv("PORT", "5050"),
		Env:             getEnv("APP_ENV", "development"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		SessionTTL:      24 * time.Hour,
		LoginRatePerMin: 10,
	}

	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return Config{}, err
		}
		cfg.SessionTTL = d
	}

	if n := os.Getenv("LOGIN_RATE_PER_MIN"); n != "" {
		v, err := strconv.Atoi(n)
		if err != nil {
			return Config{}, err
		}
		cfg.LoginRatePerMin = v
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{"http://localhost:5173"}
	}

	if path := os.Getenv("CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	}

	if cfg.DatabaseURL == "" {
		return Config{}, ErrMissingDatabaseURL
	}

	return cfg, nil
}

// IsProduction reports whether the server runs with production hardening
// (secure cookies, JSON logs).
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
