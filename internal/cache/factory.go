// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"time"
)

// Config holds configuration for cache creation.
type Config struct {
	// RedisURL selects the Redis backend when set,
	// e.g. redis://localhost:6379/0
	RedisURL string

	// Prefix is the key prefix for Redis
	Prefix string

	DefaultTTL time.Duration

	// MaxSize is the maximum number of entries for memory cache (0 = unlimited)
	MaxSize int

	CleanupInterval time.Duration
}

// DefaultConfig returns default cache configuration.
func DefaultConfig() Config {
	return Config{
		Prefix:          "scms:",
		DefaultTTL:      time.Hour,
		MaxSize:         10000,
		CleanupInterval: time.Minute,
	}
}

// NewCache creates the configured backend. An unreachable Redis is logged
// and replaced by a memory cache so the service can still start.
func NewCache(cfg Config, logger *slog.Logger) Cacher {
	if cfg.RedisURL != "" {
		rc, err := NewRedisCacheFromURL(cfg.RedisURL, cfg.Prefix, cfg.DefaultTTL)
		if err == nil {
			logger.Info("using redis cache", "prefix", cfg.Prefix)
			return rc
		}
		logger.Warn("redis cache unavailable, falling back to memory",
			"category", "cache", "error", err)
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cfg.CleanupInterval,
	})
}
