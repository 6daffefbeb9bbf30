// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// TypedCache stores values of one type as JSON on top of a Cacher.
type TypedCache[T any] struct {
	cache      Cacher
	defaultTTL time.Duration
}

// NewTypedCache creates a new TypedCache wrapping the given cache implementation.
func NewTypedCache[T any](cache Cacher, defaultTTL time.Duration) *TypedCache[T] {
	return &TypedCache[T]{
		cache:      cache,
		defaultTTL: defaultTTL,
	}
}

// Get returns the decoded value. Backend failures and undecodable entries
// are reported as a miss.
func (c *TypedCache[T]) Get(ctx context.Context, key string) (T, bool) {
	var value T

	data, err := c.cache.Get(ctx, key)
	if err != nil {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		var zero T
		return zero, false
	}
	return value, true
}

// Set stores a value in the cache with the default TTL.
func (c *TypedCache[T]) Set(ctx context.Context, key string, value T) error {
	return c.SetWithTTL(ctx, key, value, c.defaultTTL)
}

// SetWithTTL stores a value in the cache with a custom TTL.
func (c *TypedCache[T]) SetWithTTL(ctx context.Context, key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return c.cache.Set(ctx, key, data, ttl)
}

// Delete removes a key from the cache.
func (c *TypedCache[T]) Delete(ctx context.Context, key string) error {
	return c.cache.Delete(ctx, key)
}

// DeleteByPrefix drops keys under prefix, or clears the backend when it
// cannot delete by prefix.
func (c *TypedCache[T]) DeleteByPrefix(ctx context.Context, prefix string) error {
	if pd, ok := c.cache.(PrefixDeleter); ok {
		return pd.DeleteByPrefix(ctx, prefix)
	}
	return c.cache.Clear(ctx)
}

// GetOrSet returns the cached value or computes and stores it with fn.
// A failed store is ignored, the computed value is still returned.
func (c *TypedCache[T]) GetOrSet(ctx context.Context, key string, fn func(context.Context) (T, error)) (T, error) {
	if value, ok := c.Get(ctx, key); ok {
		return value, nil
	}

	value, err := fn(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	_ = c.Set(ctx, key, value)
	return value, nil
}
