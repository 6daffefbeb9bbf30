// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the caching layer for scholarcms: a byte-oriented
// backend interface with memory and Redis implementations, a typed JSON
// wrapper and the menu item cache built on top of them.
package cache

import (
	"context"
	"time"
)

// Cacher defines the interface for cache backends.
// All implementations must be safe for concurrent use.
type Cacher interface {
	// Get returns ErrCacheMiss if the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value. A zero TTL means the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	// Clear removes all entries owned by this cache.
	Clear(ctx context.Context) error

	Has(ctx context.Context, key string) (bool, error)

	Close() error
}

// PrefixDeleter is implemented by backends that can drop a key range.
type PrefixDeleter interface {
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// StatsProvider is an optional interface for caches that provide statistics.
type StatsProvider interface {
	Stats() Stats
	ResetStats()
}

// Stats holds cache statistics.
type Stats struct {
	Backend string  `json:"backend,omitempty"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Sets    int64   `json:"sets"`
	Items   int     `json:"items"`
	HitRate float64 `json:"hitRate"`
	Size    int64   `json:"sizeBytes,omitempty"`
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

// Error represents an error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found in cache or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)
