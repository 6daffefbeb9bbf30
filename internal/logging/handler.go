// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that mirrors WARN and ERROR
// records into the events table.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/scholarcms/internal/model"
	"github.com/olegiv/scholarcms/internal/store"
)

// CategoryKey is the attribute that selects an event's category.
const CategoryKey = "category"

const writeTimeout = 2 * time.Second

// EventLogHandler is a slog.Handler that wraps another handler and also
// writes records at or above its level to the event log.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level

	// attrs from WithAttrs, keys already prefixed with their groups
	attrs  []slog.Attr
	groups []string
}

// NewEventLogHandler creates a new EventLogHandler that wraps the given
// handler and records WARN and above.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return NewEventLogHandlerWithLevel(inner, db, slog.LevelWarn)
}

// NewEventLogHandlerWithLevel creates a new EventLogHandler with a custom minimum level.
func NewEventLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level || h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.inner.Enabled(ctx, r.Level) {
		if err := h.inner.Handle(ctx, r); err != nil {
			return err
		}
	}

	if r.Level >= h.level {
		h.writeToEventLog(ctx, r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	clone.inner = h.inner.WithAttrs(attrs)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, h.qualify(a))
	}
	return clone
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := h.clone()
	clone.inner = h.inner.WithGroup(name)
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *EventLogHandler) clone() *EventLogHandler {
	return &EventLogHandler{
		inner:   h.inner,
		queries: h.queries,
		level:   h.level,
		attrs:   append([]slog.Attr(nil), h.attrs...),
		groups:  append([]string(nil), h.groups...),
	}
}

// qualify prefixes an attribute key with the open groups.
func (h *EventLogHandler) qualify(a slog.Attr) slog.Attr {
	if len(h.groups) == 0 {
		return a
	}
	return slog.Attr{Key: strings.Join(h.groups, ".") + "." + a.Key, Value: a.Value}
}

// writeToEventLog stores the record. It runs detached from the caller's
// cancellation so events survive a cancelled request, and write failures
// are dropped: logging them would recurse into this handler.
func (h *EventLogHandler) writeToEventLog(ctx context.Context, r slog.Record) {
	attrs := append([]slog.Attr(nil), h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.qualify(a))
		return true
	})

	category, metadata := splitCategory(attrs)
	if category == "" {
		category = inferCategory(r.Message)
	}

	created := r.Time
	if created.IsZero() {
		created = time.Now()
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()
	_, _ = h.queries.CreateEvent(writeCtx, store.CreateEventParams{
		Level:     eventLevel(r.Level),
		Category:  category,
		Message:   r.Message,
		Metadata:  encodeMetadata(metadata),
		CreatedAt: created,
	})
}

// eventLevel converts a slog.Level to an event level.
func eventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// splitCategory removes the category attribute; the last one wins.
func splitCategory(attrs []slog.Attr) (string, []slog.Attr) {
	var category string
	rest := attrs[:0:0]
	for _, a := range attrs {
		if a.Key == CategoryKey {
			category = a.Value.String()
			continue
		}
		rest = append(rest, a)
	}
	return category, rest
}

// inferCategory guesses a category from the message when none was given.
func inferCategory(message string) string {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "menu"), strings.Contains(msg, "navigation"), strings.Contains(msg, "orphan"):
		return model.EventCategoryMenu
	case strings.Contains(msg, "seo"), strings.Contains(msg, "score"):
		return model.EventCategorySEO
	case strings.Contains(msg, "cache"), strings.Contains(msg, "redis"):
		return model.EventCategoryCache
	default:
		return model.EventCategorySystem
	}
}

// encodeMetadata renders attributes as a JSON object. Groups become
// nested objects; errors and other non-JSON values use their string form.
func encodeMetadata(attrs []slog.Attr) string {
	if len(attrs) == 0 {
		return "{}"
	}
	b, err := json.Marshal(attrMap(attrs))
	if err != nil {
		return "{}"
	}
	return string(b)
}

func attrMap(attrs []slog.Attr) map[string]any {
	m := make(map[string]any, len(attrs))
	for _, a := range attrs {
		v := a.Value.Resolve()
		if v.Kind() == slog.KindGroup {
			if group := v.Group(); len(group) > 0 {
				m[a.Key] = attrMap(group)
			}
			continue
		}
		m[a.Key] = jsonValue(v)
	}
	return m
}

func jsonValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		return v.Bool()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	}

	switch x := v.Any().(type) {
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	case json.Marshaler, []int64, []string, map[string]any:
		return x
	default:
		return fmt.Sprint(x)
	}
}
