// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"database/sql"
	"fmt"

	"github.com/olegiv/scholarcms/internal/model"
	"github.com/olegiv/scholarcms/internal/store"
	"github.com/olegiv/scholarcms/internal/util"
)

func menuFromRow(r store.Menu) model.Menu {
	return model.Menu{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Location:    model.Location(r.Location),
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func itemFromRow(r store.MenuItem) (model.MenuItem, error) {
	target, err := model.NewTarget(model.ItemType(r.Type), r.Url.String, r.RefID.Int64, r.TargetBlank)
	if err != nil {
		return model.MenuItem{}, fmt.Errorf("menu item %d: %w", r.ID, err)
	}
	return model.MenuItem{
		ID:        r.ID,
		MenuID:    r.MenuID,
		ParentID:  r.ParentID,
		Title:     r.Title,
		Target:    target,
		Order:     int(r.Position),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func itemsFromRows(rows []store.MenuItem) ([]model.MenuItem, error) {
	items := make([]model.MenuItem, 0, len(rows))
	for _, r := range rows {
		item, err := itemFromRow(r)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// targetColumns flattens a Target into its table columns.
type targetColumns struct {
	Type        string
	URL         sql.NullString
	RefID       sql.NullInt64
	TargetBlank bool
}

func columnsFor(t model.Target) targetColumns {
	return targetColumns{
		Type:        string(t.Type()),
		URL:         util.NullStringFromValue(model.TargetURL(t)),
		RefID:       util.NullInt64FromPositive(t.RefID()),
		TargetBlank: model.TargetBlank(t),
	}
}
