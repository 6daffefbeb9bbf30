// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the scholarcms configuration from SCMS_ environment
// variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"SCMS_DB_PATH" envDefault:"./data/scholarcms.db"`
	ServerHost string `env:"SCMS_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"SCMS_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"SCMS_ENV" envDefault:"development"`
	LogLevel   string `env:"SCMS_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL     string `env:"SCMS_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"SCMS_CACHE_PREFIX" envDefault:"scms:"`   // Redis key prefix
	CacheTTL     int    `env:"SCMS_CACHE_TTL" envDefault:"3600"`       // Menu item list TTL in seconds
	CacheMaxSize int    `env:"SCMS_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// HTTP
	RequestTimeout   time.Duration `env:"SCMS_REQUEST_TIMEOUT" envDefault:"30s"`
	RateLimitRPS     float64       `env:"SCMS_RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst   int           `env:"SCMS_RATE_LIMIT_BURST" envDefault:"40"`
	NavigationMaxAge int           `env:"SCMS_NAVIGATION_MAX_AGE" envDefault:"60"` // Cache-Control max-age for storefront navigation

	// Scheduled jobs
	OrphanAuditInterval time.Duration `env:"SCMS_ORPHAN_AUDIT_INTERVAL" envDefault:"1h"`
	EventRetention      time.Duration `env:"SCMS_EVENT_RETENTION" envDefault:"720h"` // 0 keeps events forever

	// Seeding configuration
	DoSeed bool `env:"SCMS_DO_SEED" envDefault:"true"` // Create the default header and footer menus
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// CacheTTLDuration returns CacheTTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// SlogLevel maps LogLevel to a slog level.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Env != "development" && c.Env != "production" {
		errs = append(errs, fmt.Errorf("SCMS_ENV must be development or production, got %q", c.Env))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("SCMS_LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel))
	}
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		errs = append(errs, fmt.Errorf("SCMS_SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, errors.New("SCMS_CACHE_TTL must not be negative"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("SCMS_REQUEST_TIMEOUT must be positive"))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		errs = append(errs, errors.New("SCMS_RATE_LIMIT_RPS must be positive and SCMS_RATE_LIMIT_BURST at least 1"))
	}
	if c.OrphanAuditInterval < time.Minute {
		errs = append(errs, fmt.Errorf("SCMS_ORPHAN_AUDIT_INTERVAL must be at least 1m, got %s", c.OrphanAuditInterval))
	}
	if c.EventRetention < 0 {
		errs = append(errs, errors.New("SCMS_EVENT_RETENTION must not be negative"))
	}
	return errors.Join(errs...)
}
