// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/olegiv/scholarcms/internal/handler"
	"github.com/olegiv/scholarcms/internal/model"
)

// EventAPIResponse represents an audit event in API responses.
type EventAPIResponse struct {
	ID        int64           `json:"id"`
	Level     string          `json:"level"`
	Category  string          `json:"category"`
	Message   string          `json:"message"`
	Metadata  json.RawMessage `json:"metadata"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ListEvents handles GET /api/v1/events
// Optional ?category= filter with page/per_page pagination, newest first.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	if h.events == nil {
		WriteNotFound(w, "Event log not enabled")
		return
	}

	page := handler.ParsePageParam(r)
	perPage := handler.ParsePerPageParam(r, 50, 200)
	category := r.URL.Query().Get("category")
	if category != "" && !model.IsValidEventCategory(category) {
		WriteValidationError(w, map[string]string{"category": "must be one of menu, seo, cache, system"})
		return
	}

	events, total, err := h.events.List(r.Context(), category, perPage, (page-1)*perPage)
	if err != nil {
		writeServiceError(w, err, "event", "list events")
		return
	}

	// A page past the end shows the last page.
	clamped, pages := handler.NormalizePagination(page, int(total), perPage)
	if clamped != page {
		page = clamped
		events, total, err = h.events.List(r.Context(), category, perPage, (page-1)*perPage)
		if err != nil {
			writeServiceError(w, err, "event", "list events")
			return
		}
	}

	responses := make([]EventAPIResponse, 0, len(events))
	for _, e := range events {
		meta := json.RawMessage(e.Metadata)
		if !json.Valid(meta) {
			meta = json.RawMessage("{}")
		}
		responses = append(responses, EventAPIResponse{
			ID:        e.ID,
			Level:     e.Level,
			Category:  e.Category,
			Message:   e.Message,
			Metadata:  meta,
			CreatedAt: e.CreatedAt,
		})
	}

	WriteSuccess(w, responses, &Meta{
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pages,
	})
}

// CacheStats handles GET /api/v1/cache/stats
func (h *Handler) CacheStats(w http.ResponseWriter, _ *http.Request) {
	stats, ok := h.menus.CacheStats()
	if !ok {
		WriteSuccess(w, map[string]bool{"enabled": false}, nil)
		return
	}
	WriteSuccess(w, stats, nil)
}
