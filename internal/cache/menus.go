// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/olegiv/scholarcms/internal/store"
)

const menuItemsPrefix = "menu:items:"

// MenuItemsKey is the cache key holding the flat item list of one menu.
func MenuItemsKey(menuID int64) string {
	return menuItemsPrefix + strconv.FormatInt(menuID, 10)
}

// ItemLoader reads a menu's items from the database.
type ItemLoader func(ctx context.Context, menuID int64) ([]store.MenuItem, error)

// MenuCache caches the flat item list of each menu. Writers must call
// Invalidate after every change to a menu's items.
//
// Each menu has a generation that Invalidate bumps. A load only stores its
// result if the generation is unchanged, so a load that raced a write
// never repopulates the cache with the old rows.
type MenuCache struct {
	items  *TypedCache[[]store.MenuItem]
	group  singleflight.Group
	hits   atomic.Int64
	misses atomic.Int64

	mu   sync.Mutex // guards gens; held around store and delete
	gens map[int64]uint64
	all  uint64 // bumped by InvalidateAll
}

// NewMenuCache creates a menu cache on top of backend.
func NewMenuCache(backend Cacher, ttl time.Duration) *MenuCache {
	return &MenuCache{
		items: NewTypedCache[[]store.MenuItem](backend, ttl),
		gens:  make(map[int64]uint64),
	}
}

// Items returns the cached items of menuID, loading them on a miss.
// Concurrent misses for the same menu share one load.
func (c *MenuCache) Items(ctx context.Context, menuID int64, load ItemLoader) ([]store.MenuItem, error) {
	key := MenuItemsKey(menuID)
	if items, ok := c.items.Get(ctx, key); ok {
		c.hits.Add(1)
		return items, nil
	}
	c.misses.Add(1)

	v, err, _ := c.group.Do(key, func() (any, error) {
		gen := c.generation(menuID)
		items, err := load(ctx, menuID)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []store.MenuItem{}
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.generationLocked(menuID) == gen {
			_ = c.items.Set(ctx, key, items)
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]store.MenuItem), nil
}

// Invalidate drops the cached items of one menu. Loads already running
// for it will not store their result.
func (c *MenuCache) Invalidate(ctx context.Context, menuID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[menuID]++
	c.group.Forget(MenuItemsKey(menuID))
	return c.items.Delete(ctx, MenuItemsKey(menuID))
}

// InvalidateAll drops every cached menu.
func (c *MenuCache) InvalidateAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.all++
	for id := range c.gens {
		c.group.Forget(MenuItemsKey(id))
	}
	return c.items.DeleteByPrefix(ctx, menuItemsPrefix)
}

// menuGen identifies one state of a menu's cached list.
type menuGen struct {
	menu uint64
	all  uint64
}

func (c *MenuCache) generation(menuID int64) menuGen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generationLocked(menuID)
}

func (c *MenuCache) generationLocked(menuID int64) menuGen {
	return menuGen{menu: c.gens[menuID], all: c.all}
}

// Stats returns hit/miss counters for menu lookups.
func (c *MenuCache) Stats() Stats {
	hits, misses := c.hits.Load(), c.misses.Load()
	return Stats{
		Backend: "menu",
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate(hits, misses),
	}
}

// ResetStats resets the hit/miss counters.
func (c *MenuCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
}
