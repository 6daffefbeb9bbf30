// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/scholarcms/internal/cache"
	"github.com/olegiv/scholarcms/internal/model"
	"github.com/olegiv/scholarcms/internal/store"
	"github.com/olegiv/scholarcms/internal/util"
)

// MenuService manages menus and their items. Item lists are served from
// cache.MenuCache when one is configured; every write invalidates the
// affected menu.
type MenuService struct {
	db        *sql.DB
	queries   *store.Queries
	menuCache *cache.MenuCache
	events    *EventService
}

// NewMenuService creates a new MenuService.
// menuCache and events may be nil.
func NewMenuService(db *sql.DB, menuCache *cache.MenuCache, events *EventService) *MenuService {
	return &MenuService{
		db:        db,
		queries:   store.New(db),
		menuCache: menuCache,
		events:    events,
	}
}

// MenuInput holds the fields of a new menu. An empty Slug is derived from Name.
type MenuInput struct {
	Name        string
	Slug        string
	Description string
	Location    model.Location
	IsActive    bool
}

// MenuPatch holds a partial menu update; nil fields are left unchanged.
type MenuPatch struct {
	Name        *string
	Slug        *string
	Description *string
	Location    *model.Location
	IsActive    *bool
}

// ListMenus returns all menus, or those at location when it is non-empty.
func (s *MenuService) ListMenus(ctx context.Context, location model.Location) ([]model.Menu, error) {
	var (
		rows []store.Menu
		err  error
	)
	if location == "" {
		rows, err = s.queries.ListMenus(ctx)
	} else {
		if !model.IsValidLocation(string(location)) {
			return nil, &ValidationError{Fields: map[string]string{"location": "unknown location"}}
		}
		rows, err = s.queries.ListMenusByLocation(ctx, string(location))
	}
	if err != nil {
		return nil, fmt.Errorf("listing menus: %w", err)
	}

	menus := make([]model.Menu, 0, len(rows))
	for _, r := range rows {
		menus = append(menus, menuFromRow(r))
	}
	return menus, nil
}

// GetMenu returns one menu.
func (s *MenuService) GetMenu(ctx context.Context, id int64) (model.Menu, error) {
	row, err := s.getMenuRow(ctx, id)
	if err != nil {
		return model.Menu{}, err
	}
	return menuFromRow(row), nil
}

func (s *MenuService) getMenuRow(ctx context.Context, id int64) (store.Menu, error) {
	row, err := s.queries.GetMenuByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Menu{}, fmt.Errorf("menu %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return store.Menu{}, fmt.Errorf("loading menu %d: %w", id, err)
	}
	return row, nil
}

// CreateMenu validates and stores a new menu. A derived slug gets a
// numeric suffix when taken; an explicit slug that is taken fails with
// ErrSlugTaken.
func (s *MenuService) CreateMenu(ctx context.Context, in MenuInput) (model.Menu, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.TrimSpace(in.Slug)

	errs := fieldErrors{}
	validateMenuFields(errs, in.Name, in.Location)

	slug := in.Slug
	if slug == "" {
		slug = util.Slugify(in.Name)
		if slug == "" && in.Name != "" {
			errs.add("slug", "cannot derive a slug from name")
		}
	} else if !util.IsValidSlug(slug) {
		errs.add("slug", "must contain only lowercase letters, numbers and single hyphens")
	}
	if err := errs.err(); err != nil {
		return model.Menu{}, err
	}

	if in.Slug == "" {
		derived, err := util.UniqueSlug(slug, func(c string) (bool, error) {
			n, err := s.queries.MenuSlugExists(ctx, c)
			return n > 0, err
		})
		if err != nil {
			return model.Menu{}, fmt.Errorf("deriving slug: %w", err)
		}
		slug = derived
	} else if err := s.checkSlugFree(ctx, slug, 0); err != nil {
		return model.Menu{}, err
	}

	now := time.Now()
	row, err := s.queries.CreateMenu(ctx, store.CreateMenuParams{
		Name:        in.Name,
		Slug:        slug,
		Description: strings.TrimSpace(in.Description),
		Location:    string(in.Location),
		IsActive:    in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Menu{}, fmt.Errorf("creating menu: %w", err)
	}

	s.audit(ctx, "Menu created", map[string]any{"menu_id": row.ID, "slug": row.Slug})
	return menuFromRow(row), nil
}

// UpdateMenu applies a partial update.
func (s *MenuService) UpdateMenu(ctx context.Context, id int64, p MenuPatch) (model.Menu, error) {
	row, err := s.getMenuRow(ctx, id)
	if err != nil {
		return model.Menu{}, err
	}

	params := store.UpdateMenuParams{
		ID:          row.ID,
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		Location:    row.Location,
		IsActive:    row.IsActive,
	}
	if p.Name != nil {
		params.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		params.Description = strings.TrimSpace(*p.Description)
	}
	if p.Location != nil {
		params.Location = string(*p.Location)
	}
	if p.IsActive != nil {
		params.IsActive = *p.IsActive
	}

	errs := fieldErrors{}
	validateMenuFields(errs, params.Name, model.Location(params.Location))
	if p.Slug != nil {
		params.Slug = strings.TrimSpace(*p.Slug)
		if !util.IsValidSlug(params.Slug) {
			errs.add("slug", "must contain only lowercase letters, numbers and single hyphens")
		}
	}
	if err := errs.err(); err != nil {
		return model.Menu{}, err
	}

	if params.Slug != row.Slug {
		if err := s.checkSlugFree(ctx, params.Slug, row.ID); err != nil {
			return model.Menu{}, err
		}
	}

	params.UpdatedAt = time.Now()
	updated, err := s.queries.UpdateMenu(ctx, params)
	if err != nil {
		return model.Menu{}, fmt.Errorf("updating menu %d: %w", id, err)
	}

	s.audit(ctx, "Menu updated", map[string]any{"menu_id": id})
	return menuFromRow(updated), nil
}

// DeleteMenu removes a menu together with all of its items.
func (s *MenuService) DeleteMenu(ctx context.Context, id int64) error {
	if _, err := s.getMenuRow(ctx, id); err != nil {
		return err
	}

	if err := s.queries.DeleteMenu(ctx, id); err != nil {
		return fmt.Errorf("deleting menu %d: %w", id, err)
	}

	s.invalidate(ctx, id)
	s.audit(ctx, "Menu deleted", map[string]any{"menu_id": id})
	return nil
}

// Navigation returns the forest of the first active menu at location.
func (s *MenuService) Navigation(ctx context.Context, location model.Location) (model.Menu, []model.MenuNode, error) {
	if !model.IsValidLocation(string(location)) {
		return model.Menu{}, nil, &ValidationError{Fields: map[string]string{"location": "unknown location"}}
	}

	row, err := s.queries.GetActiveMenuByLocation(ctx, string(location))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Menu{}, nil, fmt.Errorf("%s menu: %w", location, ErrNotFound)
	}
	if err != nil {
		return model.Menu{}, nil, fmt.Errorf("loading %s menu: %w", location, err)
	}

	items, err := s.items(ctx, row.ID)
	if err != nil {
		return model.Menu{}, nil, err
	}
	return menuFromRow(row), BuildForest(items), nil
}

// CacheStats returns menu cache statistics, or false when caching is off.
func (s *MenuService) CacheStats() (cache.Stats, bool) {
	if s.menuCache == nil {
		return cache.Stats{}, false
	}
	return s.menuCache.Stats(), true
}

func validateMenuFields(errs fieldErrors, name string, location model.Location) {
	if name == "" {
		errs.add("name", "is required")
	} else if len(name) > 255 {
		errs.add("name", "must be at most 255 characters")
	}
	if !model.IsValidLocation(string(location)) {
		errs.add("location", "must be one of header, footer, sidebar, mobile")
	}
}

func (s *MenuService) checkSlugFree(ctx context.Context, slug string, excludeID int64) error {
	n, err := s.queries.MenuSlugExistsExcluding(ctx, store.MenuSlugExistsExcludingParams{
		Slug: slug,
		ID:   excludeID,
	})
	if err != nil {
		return fmt.Errorf("checking slug: %w", err)
	}
	if n != 0 {
		return fmt.Errorf("%q: %w", slug, ErrSlugTaken)
	}
	return nil
}

func (s *MenuService) invalidate(ctx context.Context, menuID int64) {
	if s.menuCache == nil {
		return
	}
	if err := s.menuCache.Invalidate(ctx, menuID); err != nil {
		slog.Warn("failed to invalidate menu cache", "category", model.EventCategoryCache,
			"menu_id", menuID, "error", err)
	}
}

func (s *MenuService) audit(ctx context.Context, message string, metadata map[string]any) {
	if s.events == nil {
		return
	}
	if err := s.events.LogMenuEvent(ctx, message, metadata); err != nil {
		slog.Error("failed to record menu event", "message", message, "error", err)
	}
}
