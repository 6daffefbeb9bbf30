// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types shared by the store, service and API layers.
package model

import (
	"database/sql"
	"time"
)

// Location is where a menu is rendered on the storefront.
type Location string

// Menu locations
const (
	LocationHeader  Location = "header"
	LocationFooter  Location = "footer"
	LocationSidebar Location = "sidebar"
	LocationMobile  Location = "mobile"
)

// ValidLocations contains all valid menu locations.
var ValidLocations = []Location{LocationHeader, LocationFooter, LocationSidebar, LocationMobile}

// Menu is a named, located container of menu items.
type Menu struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	Location    Location
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MenuItem is one navigable entry of a menu, optionally nested under
// another item of the same menu via ParentID.
type MenuItem struct {
	ID        int64
	MenuID    int64
	ParentID  sql.NullInt64
	Title     string
	Target    Target
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Type returns the item's type tag, derived from its target.
func (i MenuItem) Type() ItemType {
	if i.Target == nil {
		return ""
	}
	return i.Target.Type()
}

// IsRoot reports whether the item has no parent.
func (i MenuItem) IsRoot() bool {
	return !i.ParentID.Valid
}

// HasParent reports whether the item's parent is the given one.
// A nil parentID selects root items.
func (i MenuItem) HasParent(parentID *int64) bool {
	if parentID == nil {
		return !i.ParentID.Valid
	}
	return i.ParentID.Valid && i.ParentID.Int64 == *parentID
}

// MenuNode is a menu item with its children for tree display.
type MenuNode struct {
	MenuItem
	Children []MenuNode
}

// IsValidLocation checks if a location value is valid.
func IsValidLocation(location string) bool {
	for _, l := range ValidLocations {
		if string(l) == location {
			return true
		}
	}
	return false
}
