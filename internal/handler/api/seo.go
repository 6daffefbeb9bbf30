// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/scholarcms/internal/model"
	"github.com/olegiv/scholarcms/internal/seo"
)

// ScoreRequest represents the request body for scoring content.
type ScoreRequest struct {
	Content     string `json:"content"`
	Format      string `json:"format" validate:"omitempty,oneof=html markdown"`
	Keyword     string `json:"keyword" validate:"max=255"`
	Title       string `json:"title" validate:"max=255"`
	Description string `json:"description" validate:"max=1000"`
}

// ScoreContent handles POST /api/v1/seo/score
func (h *Handler) ScoreContent(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result := seo.Score(seo.Input{
		Content:     req.Content,
		Format:      req.Format,
		Keyword:     req.Keyword,
		Title:       req.Title,
		Description: req.Description,
	})

	slog.Debug("content scored", "category", model.EventCategorySEO,
		"score", result.Score, "words", result.WordCount)
	WriteSuccess(w, result, nil)
}
