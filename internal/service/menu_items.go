// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/scholarcms/internal/model"
	"github.com/olegiv/scholarcms/internal/store"
	"github.com/olegiv/scholarcms/internal/util"
)

// ItemInput holds the fields of a new menu item. A nil Order appends the
// item to the end of its sibling group.
type ItemInput struct {
	MenuID   int64
	ParentID *int64
	Title    string
	Target   model.Target
	Order    *int
}

// ItemPatch holds a partial item update. ParentID is only read when
// SetParent is true, so a nil ParentID with SetParent moves the item to
// the root level.
type ItemPatch struct {
	Title     *string
	Target    model.Target
	SetParent bool
	ParentID  *int64
	Order     *int
}

// ListItems returns the flat item list of a menu.
func (s *MenuService) ListItems(ctx context.Context, menuID int64) ([]model.MenuItem, error) {
	if _, err := s.getMenuRow(ctx, menuID); err != nil {
		return nil, err
	}
	return s.items(ctx, menuID)
}

// Tree returns the display forest of a menu.
func (s *MenuService) Tree(ctx context.Context, menuID int64) ([]model.MenuNode, error) {
	items, err := s.ListItems(ctx, menuID)
	if err != nil {
		return nil, err
	}
	return BuildForest(items), nil
}

// GetItem returns one menu item.
func (s *MenuService) GetItem(ctx context.Context, id int64) (model.MenuItem, error) {
	row, err := s.getItemRow(ctx, id)
	if err != nil {
		return model.MenuItem{}, err
	}
	return itemFromRow(row)
}

// CreateItem validates and stores a new menu item.
func (s *MenuService) CreateItem(ctx context.Context, in ItemInput) (model.MenuItem, error) {
	in.Title = strings.TrimSpace(in.Title)

	errs := fieldErrors{}
	validateItemFields(errs, in.Title, in.Target)
	if in.Order != nil && *in.Order < 0 {
		errs.add("order", "must not be negative")
	}
	if err := errs.err(); err != nil {
		return model.MenuItem{}, err
	}

	if _, err := s.getMenuRow(ctx, in.MenuID); err != nil {
		return model.MenuItem{}, err
	}

	parent := util.NullInt64FromPtr(in.ParentID)
	if parent.Valid {
		items, err := s.freshItems(ctx, in.MenuID)
		if err != nil {
			return model.MenuItem{}, err
		}
		if !containsItem(items, parent.Int64) {
			return model.MenuItem{}, fmt.Errorf("parent %d not in menu %d: %w", parent.Int64, in.MenuID, ErrInvalidParent)
		}
	}

	position, err := s.nextPosition(ctx, in.MenuID, parent, in.Order)
	if err != nil {
		return model.MenuItem{}, err
	}

	cols := columnsFor(in.Target)
	now := time.Now()
	row, err := s.queries.CreateMenuItem(ctx, store.CreateMenuItemParams{
		MenuID:      in.MenuID,
		ParentID:    parent,
		Title:       in.Title,
		Type:        cols.Type,
		Url:         cols.URL,
		RefID:       cols.RefID,
		TargetBlank: cols.TargetBlank,
		Position:    position,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.MenuItem{}, fmt.Errorf("creating menu item: %w", err)
	}

	s.invalidate(ctx, in.MenuID)
	s.audit(ctx, "Menu item created", map[string]any{"menu_id": in.MenuID, "item_id": row.ID})
	return itemFromRow(row)
}

// UpdateItem applies a partial update. A re-parented item is appended to
// its new sibling group unless Order is given. Parents outside the menu
// and parents that would create a cycle are rejected with ErrInvalidParent.
func (s *MenuService) UpdateItem(ctx context.Context, id int64, p ItemPatch) (model.MenuItem, error) {
	row, err := s.getItemRow(ctx, id)
	if err != nil {
		return model.MenuItem{}, err
	}
	current, err := itemFromRow(row)
	if err != nil {
		return model.MenuItem{}, err
	}

	title := current.Title
	if p.Title != nil {
		title = strings.TrimSpace(*p.Title)
	}
	target := current.Target
	if p.Target != nil {
		target = p.Target
	}

	errs := fieldErrors{}
	validateItemFields(errs, title, target)
	if p.Order != nil && *p.Order < 0 {
		errs.add("order", "must not be negative")
	}
	if err := errs.err(); err != nil {
		return model.MenuItem{}, err
	}

	parent := row.ParentID
	position := row.Position
	if p.SetParent {
		parent = util.NullInt64FromPtr(p.ParentID)
	}
	if parent != row.ParentID {
		if parent.Valid {
			items, err := s.freshItems(ctx, row.MenuID)
			if err != nil {
				return model.MenuItem{}, err
			}
			if !containsItem(items, parent.Int64) {
				return model.MenuItem{}, fmt.Errorf("parent %d not in menu %d: %w", parent.Int64, row.MenuID, ErrInvalidParent)
			}
			if WouldCycle(items, id, parent.Int64) {
				return model.MenuItem{}, fmt.Errorf("item %d under %d would create a cycle: %w", id, parent.Int64, ErrInvalidParent)
			}
		}
		position, err = s.nextPosition(ctx, row.MenuID, parent, nil)
		if err != nil {
			return model.MenuItem{}, err
		}
	}
	if p.Order != nil {
		position = int64(*p.Order)
	}

	cols := columnsFor(target)
	updated, err := s.queries.UpdateMenuItem(ctx, store.UpdateMenuItemParams{
		ID:          id,
		ParentID:    parent,
		Title:       title,
		Type:        cols.Type,
		Url:         cols.URL,
		RefID:       cols.RefID,
		TargetBlank: cols.TargetBlank,
		Position:    position,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		return model.MenuItem{}, fmt.Errorf("updating menu item %d: %w", id, err)
	}

	s.invalidate(ctx, row.MenuID)
	s.audit(ctx, "Menu item updated", map[string]any{"menu_id": row.MenuID, "item_id": id})
	return itemFromRow(updated)
}

// DeleteItem removes an item. Without cascade its children keep pointing
// at the removed id and drop out of the built tree; with cascade all
// descendants are removed in the same transaction. It returns the ids
// that were deleted.
func (s *MenuService) DeleteItem(ctx context.Context, id int64, cascade bool) ([]int64, error) {
	row, err := s.getItemRow(ctx, id)
	if err != nil {
		return nil, err
	}

	ids := []int64{id}
	if cascade {
		items, err := s.freshItems(ctx, row.MenuID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, Descendants(items, id)...)
	}

	err = store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		for _, del := range ids {
			if err := q.DeleteMenuItem(ctx, del); err != nil {
				return fmt.Errorf("deleting menu item %d: %w", del, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, row.MenuID)
	s.audit(ctx, "Menu item deleted", map[string]any{
		"menu_id": row.MenuID, "item_id": id, "cascade": cascade, "deleted": len(ids),
	})
	return ids, nil
}

// Reorder moves one item within its sibling group and persists the new
// orders. Only items whose order changed are written, all in one
// transaction; on failure nothing is changed.
func (s *MenuService) Reorder(ctx context.Context, menuID int64, m Move) (ReorderPlan, error) {
	if _, err := s.getMenuRow(ctx, menuID); err != nil {
		return ReorderPlan{}, err
	}

	items, err := s.freshItems(ctx, menuID)
	if err != nil {
		return ReorderPlan{}, err
	}
	if m.ParentID != nil && !containsItem(items, *m.ParentID) {
		return ReorderPlan{}, fmt.Errorf("parent %d not in menu %d: %w", *m.ParentID, menuID, ErrInvalidParent)
	}

	plan, err := PlanReorder(items, m)
	if err != nil {
		return ReorderPlan{}, err
	}
	if len(plan.Changed) == 0 {
		return plan, nil
	}

	now := time.Now()
	err = store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		for _, item := range plan.Changed {
			if err := q.UpdateMenuItemPosition(ctx, store.UpdateMenuItemPositionParams{
				ID:        item.ID,
				Position:  int64(item.Order),
				UpdatedAt: now,
			}); err != nil {
				return fmt.Errorf("updating position of item %d: %w", item.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return ReorderPlan{}, err
	}

	changed := make([]int64, 0, len(plan.Changed))
	for _, item := range plan.Changed {
		changed = append(changed, item.ID)
	}
	s.invalidate(ctx, menuID)
	s.audit(ctx, "Menu items reordered", map[string]any{
		"menu_id": menuID,
		"batch":   uuid.NewString(),
		"from":    m.From,
		"to":      m.To,
		"changed": changed,
	})
	return plan, nil
}

// items returns a menu's items, through the cache when configured.
func (s *MenuService) items(ctx context.Context, menuID int64) ([]model.MenuItem, error) {
	if s.menuCache == nil {
		return s.freshItems(ctx, menuID)
	}
	rows, err := s.menuCache.Items(ctx, menuID, s.queries.ListMenuItems)
	if err != nil {
		return nil, fmt.Errorf("loading items of menu %d: %w", menuID, err)
	}
	return itemsFromRows(rows)
}

// freshItems bypasses the cache. Write paths validate against it.
func (s *MenuService) freshItems(ctx context.Context, menuID int64) ([]model.MenuItem, error) {
	rows, err := s.queries.ListMenuItems(ctx, menuID)
	if err != nil {
		return nil, fmt.Errorf("loading items of menu %d: %w", menuID, err)
	}
	return itemsFromRows(rows)
}

func (s *MenuService) getItemRow(ctx context.Context, id int64) (store.MenuItem, error) {
	row, err := s.queries.GetMenuItemByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.MenuItem{}, fmt.Errorf("menu item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return store.MenuItem{}, fmt.Errorf("loading menu item %d: %w", id, err)
	}
	return row, nil
}

func (s *MenuService) nextPosition(ctx context.Context, menuID int64, parent sql.NullInt64, order *int) (int64, error) {
	if order != nil {
		return int64(*order), nil
	}
	n, err := s.queries.CountMenuItemSiblings(ctx, store.CountMenuItemSiblingsParams{
		MenuID:   menuID,
		ParentID: parent,
	})
	if err != nil {
		return 0, fmt.Errorf("counting siblings: %w", err)
	}
	return n, nil
}

func validateItemFields(errs fieldErrors, title string, target model.Target) {
	if title == "" {
		errs.add("title", "is required")
	} else if len(title) > 255 {
		errs.add("title", "must be at most 255 characters")
	}
	if target == nil {
		errs.add("type", "is required")
	}
}

func containsItem(items []model.MenuItem, id int64) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}
