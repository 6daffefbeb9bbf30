// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryCache is a process-local Cacher.
type MemoryCache struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	defaultTTL time.Duration
	maxSize    int // 0 = unlimited
	stopCh     chan struct{}
	closed     atomic.Bool

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
	size   atomic.Int64
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// MemoryCacheOptions configures the memory cache.
type MemoryCacheOptions struct {
	DefaultTTL      time.Duration
	MaxSize         int           // Maximum number of entries (0 = unlimited)
	CleanupInterval time.Duration // 0 disables background cleanup
}

// NewMemoryCache creates a new memory cache with the given options.
func NewMemoryCache(opts MemoryCacheOptions) *MemoryCache {
	c := &MemoryCache{
		entries:    make(map[string]memoryEntry),
		defaultTTL: opts.DefaultTTL,
		maxSize:    opts.MaxSize,
		stopCh:     make(chan struct{}),
	}
	if c.defaultTTL <= 0 {
		c.defaultTTL = time.Hour
	}

	if opts.CleanupInterval > 0 {
		go c.cleanupLoop(opts.CleanupInterval)
	}

	return c
}

// Get retrieves a copy of the stored value.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	now := time.Now()
	if !ok || entry.expired(now) {
		if ok {
			c.mu.Lock()
			if current, still := c.entries[key]; still && current.expired(now) {
				c.removeLocked(key)
			}
			c.mu.Unlock()
		}
		c.misses.Add(1)
		return nil, ErrCacheMiss
	}

	c.hits.Add(1)
	result := make([]byte, len(entry.value))
	copy(result, entry.value)
	return result, nil
}

// Set stores a copy of value. When the cache is full, expired entries are
// dropped first and then the entry closest to expiry.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}

	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictLocked()
	}

	c.removeLocked(key)
	c.entries[key] = memoryEntry{value: valueCopy, expiresAt: time.Now().Add(ttl)}
	c.size.Add(int64(len(valueCopy)))
	c.sets.Add(1)
	return nil
}

// Delete removes a key from the cache.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}

	c.mu.Lock()
	c.removeLocked(key)
	c.mu.Unlock()
	return nil
}

// DeleteByPrefix removes all keys starting with prefix.
func (c *MemoryCache) DeleteByPrefix(_ context.Context, prefix string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.removeLocked(key)
		}
	}
	return nil
}

// Clear removes all entries from the cache.
func (c *MemoryCache) Clear(_ context.Context) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}

	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.size.Store(0)
	c.mu.Unlock()
	return nil
}

// Has checks if a key exists in the cache (and is not expired).
func (c *MemoryCache) Has(_ context.Context, key string) (bool, error) {
	if c.closed.Load() {
		return false, ErrCacheClosed
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	return ok && !entry.expired(time.Now()), nil
}

// Close stops the cleanup goroutine and releases resources.
func (c *MemoryCache) Close() error {
	if c.closed.CompareAndSwap(false, true) {
		close(c.stopCh)
	}
	return nil
}

// Stats returns current cache statistics.
func (c *MemoryCache) Stats() Stats {
	hits, misses := c.hits.Load(), c.misses.Load()

	c.mu.RLock()
	items := len(c.entries)
	c.mu.RUnlock()

	return Stats{
		Backend: "memory",
		Hits:    hits,
		Misses:  misses,
		Sets:    c.sets.Load(),
		Items:   items,
		HitRate: hitRate(hits, misses),
		Size:    c.size.Load(),
	}
}

// ResetStats resets the cache statistics.
func (c *MemoryCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.sets.Store(0)
}

func (c *MemoryCache) removeLocked(key string) {
	if entry, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.size.Add(-int64(len(entry.value)))
	}
}

func (c *MemoryCache) evictLocked() {
	c.removeExpiredLocked(time.Now())
	if len(c.entries) < c.maxSize {
		return
	}

	var victim string
	var soonest time.Time
	for key, entry := range c.entries {
		if victim == "" || entry.expiresAt.Before(soonest) {
			victim, soonest = key, entry.expiresAt
		}
	}
	c.removeLocked(victim)
}

func (c *MemoryCache) removeExpiredLocked(now time.Time) {
	for key, entry := range c.entries {
		if entry.expired(now) {
			c.removeLocked(key)
		}
	}
}

func (c *MemoryCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			c.removeExpiredLocked(time.Now())
			c.mu.Unlock()
		case <-c.stopCh:
			return
		}
	}
}

var (
	_ Cacher        = (*MemoryCache)(nil)
	_ PrefixDeleter = (*MemoryCache)(nil)
	_ StatsProvider = (*MemoryCache)(nil)
)
