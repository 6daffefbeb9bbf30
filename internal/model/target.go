// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
	"strings"
)

// ItemType tags what a menu item points at.
type ItemType string

// Menu item types
const (
	ItemTypeLink        ItemType = "link"
	ItemTypePage        ItemType = "page"
	ItemTypeCategory    ItemType = "category"
	ItemTypeLevel       ItemType = "level"
	ItemTypeCountry     ItemType = "country"
	ItemTypeScholarship ItemType = "scholarship"
	ItemTypePost        ItemType = "post"
)

// ValidItemTypes contains all valid menu item types.
var ValidItemTypes = []ItemType{
	ItemTypeLink,
	ItemTypePage,
	ItemTypeCategory,
	ItemTypeLevel,
	ItemTypeCountry,
	ItemTypeScholarship,
	ItemTypePost,
}

// Target errors
var (
	ErrUnknownItemType = errors.New("unknown menu item type")
	ErrMissingURL      = errors.New("link items require a url")
	ErrMissingRef      = errors.New("item type requires a positive reference id")
)

// Target is the type-specific payload of a menu item. Exactly one variant
// is active per item, so the "which field is valid for which type" rule
// is carried by the Go type instead of by convention.
type Target interface {
	Type() ItemType
	// RefID returns the referenced entity id, or 0 for links.
	RefID() int64
	isTarget()
}

// Link points at an arbitrary URL.
type Link struct {
	URL         string
	TargetBlank bool
}

// PageRef points at a CMS page.
type PageRef struct{ PageID int64 }

// CategoryRef points at a scholarship category listing.
type CategoryRef struct{ CategoryID int64 }

// LevelRef points at a study level listing.
type LevelRef struct{ LevelID int64 }

// CountryRef points at a country listing.
type CountryRef struct{ CountryID int64 }

// ScholarshipRef points at a single scholarship.
type ScholarshipRef struct{ ScholarshipID int64 }

// PostRef points at a blog post.
type PostRef struct{ PostID int64 }

func (Link) Type() ItemType           { return ItemTypeLink }
func (PageRef) Type() ItemType        { return ItemTypePage }
func (CategoryRef) Type() ItemType    { return ItemTypeCategory }
func (LevelRef) Type() ItemType       { return ItemTypeLevel }
func (CountryRef) Type() ItemType     { return ItemTypeCountry }
func (ScholarshipRef) Type() ItemType { return ItemTypeScholarship }
func (PostRef) Type() ItemType        { return ItemTypePost }

func (Link) RefID() int64             { return 0 }
func (t PageRef) RefID() int64        { return t.PageID }
func (t CategoryRef) RefID() int64    { return t.CategoryID }
func (t LevelRef) RefID() int64       { return t.LevelID }
func (t CountryRef) RefID() int64     { return t.CountryID }
func (t ScholarshipRef) RefID() int64 { return t.ScholarshipID }
func (t PostRef) RefID() int64        { return t.PostID }

func (Link) isTarget()           {}
func (PageRef) isTarget()        {}
func (CategoryRef) isTarget()    {}
func (LevelRef) isTarget()       {}
func (CountryRef) isTarget()     {}
func (ScholarshipRef) isTarget() {}
func (PostRef) isTarget()        {}

// NewTarget builds the variant for itemType from its flat representation.
// url and targetBlank are only read for links, refID only for the others.
func NewTarget(itemType ItemType, url string, refID int64, targetBlank bool) (Target, error) {
	if itemType == ItemTypeLink {
		url = strings.TrimSpace(url)
		if url == "" {
			return nil, ErrMissingURL
		}
		return Link{URL: url, TargetBlank: targetBlank}, nil
	}

	if !IsValidItemType(string(itemType)) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownItemType, itemType)
	}
	if refID <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingRef, itemType)
	}

	switch itemType {
	case ItemTypePage:
		return PageRef{PageID: refID}, nil
	case ItemTypeCategory:
		return CategoryRef{CategoryID: refID}, nil
	case ItemTypeLevel:
		return LevelRef{LevelID: refID}, nil
	case ItemTypeCountry:
		return CountryRef{CountryID: refID}, nil
	case ItemTypeScholarship:
		return ScholarshipRef{ScholarshipID: refID}, nil
	default:
		return PostRef{PostID: refID}, nil
	}
}

// TargetURL returns the link URL, or "" for reference targets.
func TargetURL(t Target) string {
	if l, ok := t.(Link); ok {
		return l.URL
	}
	return ""
}

// TargetBlank reports whether a link target opens in a new window.
func TargetBlank(t Target) bool {
	if l, ok := t.(Link); ok {
		return l.TargetBlank
	}
	return false
}

// IsValidItemType checks if an item type value is valid.
func IsValidItemType(itemType string) bool {
	for _, t := range ValidItemTypes {
		if string(t) == itemType {
			return true
		}
	}
	return false
}
