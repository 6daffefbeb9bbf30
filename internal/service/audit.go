// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"

	"github.com/olegiv/scholarcms/internal/model"
)

// OrphanReport lists, per menu, items that built trees leave out: items
// whose parent no longer exists, everything below them and members of
// parent cycles. DanglingIDs is the subset whose own parent is missing.
type OrphanReport struct {
	MenuID      int64
	MenuSlug    string
	ItemIDs     []int64
	DanglingIDs []int64
}

// FindOrphans scans every menu for items no tree can reach.
func (s *MenuService) FindOrphans(ctx context.Context) ([]OrphanReport, error) {
	menus, err := s.queries.ListMenus(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing menus: %w", err)
	}

	var reports []OrphanReport
	for _, menu := range menus {
		items, err := s.freshItems(ctx, menu.ID)
		if err != nil {
			return nil, err
		}
		lost := UnreachableItems(items)
		if len(lost) == 0 {
			continue
		}
		reports = append(reports, OrphanReport{
			MenuID:      menu.ID,
			MenuSlug:    menu.Slug,
			ItemIDs:     itemIDs(lost),
			DanglingIDs: itemIDs(DanglingItems(items)),
		})
	}
	return reports, nil
}

func itemIDs(items []model.MenuItem) []int64 {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}
