// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DefaultMenu describes a menu created on first start.
type DefaultMenu struct {
	Name     string
	Slug     string
	Location string
}

// DefaultMenus are the storefront menus every installation starts with.
var DefaultMenus = []DefaultMenu{
	{Name: "Main Menu", Slug: "main-menu", Location: "header"},
	{Name: "Footer Menu", Slug: "footer-menu", Location: "footer"},
}

// Seed creates the default menus when no menu exists at their location yet.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	for _, dm := range DefaultMenus {
		_, err := queries.GetActiveMenuByLocation(ctx, dm.Location)
		if err == nil {
			slog.Debug("menu already exists, skipping seed", "location", dm.Location)
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking %s menu: %w", dm.Location, err)
		}

		taken, err := queries.MenuSlugExists(ctx, dm.Slug)
		if err != nil {
			return fmt.Errorf("checking slug %q: %w", dm.Slug, err)
		}
		if taken != 0 {
			slog.Debug("default menu slug in use, skipping seed", "slug", dm.Slug)
			continue
		}

		now := time.Now()
		menu, err := queries.CreateMenu(ctx, CreateMenuParams{
			Name:      dm.Name,
			Slug:      dm.Slug,
			Location:  dm.Location,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("creating %s menu: %w", dm.Location, err)
		}

		slog.Info("created default menu", "id", menu.ID, "slug", menu.Slug, "location", menu.Location)
	}

	return nil
}
