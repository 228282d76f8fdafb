// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8008"`
	DBPath   string `env:"DB_PATH" envDefault:"portfolio.db"`

	JWTSecret   string `env:"JWT_SECRET" envDefault:"development-insecure-secret-change-me"`
	JWTIssuer   string `env:"JWT_ISSUER" envDefault:"portfolio-api"`
	JWTAudience string `env:"JWT_AUDIENCE" envDefault:"portfolio-admin"`

	// Seeded on startup when no user with this name exists.
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	Cache CacheConfig
}

// CacheConfig tunes the named cache instances.
type CacheConfig struct {
	MaxSize         int           `env:"CACHE_MAX_SIZE" envDefault:"1000"`
	CleanupInterval time.Duration `env:"CACHE_CLEANUP_INTERVAL" envDefault:"60s"`
	SingleFlight    bool          `env:"CACHE_SINGLE_FLIGHT" envDefault:"true"`
	ReportEvery     int           `env:"CACHE_REPORT_EVERY" envDefault:"0"`

	PageTTL   time.Duration `env:"CACHE_PAGE_TTL" envDefault:"300s"`
	APITTL    time.Duration `env:"CACHE_API_TTL" envDefault:"180s"`
	StaticTTL time.Duration `env:"CACHE_STATIC_TTL" envDefault:"3600s"`
	UserTTL   time.Duration `env:"CACHE_USER_TTL" envDefault:"900s"`
}

// Load reads a .env file if present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the cache layer cannot run with.
func (c *Config) Validate() error {
	if c.Cache.MaxSize <= 0 {
		return errors.New("CACHE_MAX_SIZE must be positive")
	}
	ttls := map[string]time.Duration{
		"CACHE_PAGE_TTL":   c.Cache.PageTTL,
		"CACHE_API_TTL":    c.Cache.APITTL,
		"CACHE_STATIC_TTL": c.Cache.StaticTTL,
		"CACHE_USER_TTL":   c.Cache.UserTTL,
	}
	for name, ttl := range ttls {
		if ttl <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	return nil
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
