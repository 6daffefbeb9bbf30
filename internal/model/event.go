package model

import (
	"slices"
	"time"
)

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryMenu   = "menu"
	EventCategorySEO    = "seo"
	EventCategoryCache  = "cache"
	EventCategorySystem = "system"
)

// Event represents an audit log entry.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  string // JSON string
	CreatedAt time.Time
}

// EventCategories lists every category the event log records.
var EventCategories = []string{
	EventCategoryMenu,
	EventCategorySEO,
	EventCategoryCache,
	EventCategorySystem,
}

// IsValidEventCategory reports whether c is a known event category.
func IsValidEventCategory(c string) bool {
	return slices.Contains(EventCategories, c)
}
