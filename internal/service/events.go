// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the business logic of scholarcms: menu and menu
// item management on top of the store and cache, the pure tree and
// reorder functions, and the audit event log.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/olegiv/scholarcms/internal/model"
	"github.com/olegiv/scholarcms/internal/store"
)

// EventService writes and reads the audit event log.
type EventService struct {
	queries *store.Queries
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{
		queries: store.New(db),
	}
}

// LogEvent creates a new event log entry. metadata is stored as JSON.
func (s *EventService) LogEvent(ctx context.Context, level, category, message string, metadata map[string]any) error {
	metadataJSON := "{}"
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(b)
		}
	}

	_, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		Metadata:  metadataJSON,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("creating event: %w", err)
	}
	return nil
}

// LogInfo logs an info-level event.
func (s *EventService) LogInfo(ctx context.Context, category, message string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, category, message, metadata)
}

// LogWarning logs a warning-level event.
func (s *EventService) LogWarning(ctx context.Context, category, message string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelWarning, category, message, metadata)
}

// LogMenuEvent logs a menu-related info event.
func (s *EventService) LogMenuEvent(ctx context.Context, message string, metadata map[string]any) error {
	return s.LogInfo(ctx, model.EventCategoryMenu, message, metadata)
}

// List returns events newest first, optionally filtered by category, and
// the total count for that filter.
func (s *EventService) List(ctx context.Context, category string, limit, offset int) ([]model.Event, int64, error) {
	var (
		rows  []store.Event
		total int64
		err   error
	)
	if category == "" {
		rows, err = s.queries.ListEvents(ctx, store.ListEventsParams{Limit: int64(limit), Offset: int64(offset)})
		if err == nil {
			total, err = s.queries.CountEvents(ctx)
		}
	} else {
		rows, err = s.queries.ListEventsByCategory(ctx, store.ListEventsByCategoryParams{
			Category: category, Limit: int64(limit), Offset: int64(offset),
		})
		if err == nil {
			total, err = s.queries.CountEventsByCategory(ctx, category)
		}
	}
	if err != nil {
		return nil, 0, fmt.Errorf("listing events: %w", err)
	}

	events := make([]model.Event, 0, len(rows))
	for _, r := range rows {
		events = append(events, model.Event{
			ID:        r.ID,
			Level:     r.Level,
			Category:  r.Category,
			Message:   r.Message,
			Metadata:  r.Metadata,
			CreatedAt: r.CreatedAt,
		})
	}
	return events, total, nil
}

// DeleteOldEvents removes events older than the specified duration.
func (s *EventService) DeleteOldEvents(ctx context.Context, olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	return s.queries.DeleteOldEvents(ctx, cutoff)
}
