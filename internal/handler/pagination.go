// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains HTTP helpers shared by the API handlers.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ErrMissingParam is returned when a required URL parameter is empty.
var ErrMissingParam = errors.New("missing parameter")

// CalculateTotalPages returns the number of pages needed for totalItems.
// There is always at least one page.
func CalculateTotalPages(totalItems, perPage int) int {
	if perPage <= 0 || totalItems <= 0 {
		return 1
	}
	return (totalItems + perPage - 1) / perPage
}

// ClampPage keeps page within [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages >= 1 && page > totalPages {
		return totalPages
	}
	return page
}

// NormalizePagination returns the clamped page and the total page count.
func NormalizePagination(page, totalItems, perPage int) (int, int) {
	totalPages := CalculateTotalPages(totalItems, perPage)
	return ClampPage(page, totalPages), totalPages
}

// ParsePageParam reads the "page" query parameter, defaulting to 1.
func ParsePageParam(r *http.Request) int {
	return ParseIntParam(r, "page", 1, 1, 0)
}

// ParsePerPageParam reads the "per_page" query parameter.
// Values outside [1, maxVal] fall back to defaultVal.
func ParsePerPageParam(r *http.Request, defaultVal, maxVal int) int {
	return ParseIntParam(r, "per_page", defaultVal, 1, maxVal)
}

// ParseIntParam reads an integer query parameter. Missing, malformed or
// out-of-range values return defaultVal. A maxVal of 0 disables the upper bound.
func ParseIntParam(r *http.Request, name string, defaultVal, minVal, maxVal int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}
	if v < minVal {
		return defaultVal
	}
	if maxVal > 0 && v > maxVal {
		return defaultVal
	}
	return v
}

// ParseBoolQuery reports whether the query parameter is "true" or "1".
func ParseBoolQuery(r *http.Request, name string) bool {
	switch strings.ToLower(r.URL.Query().Get(name)) {
	case "true", "1":
		return true
	}
	return false
}

// ParseIDParam parses the chi "id" URL parameter.
func ParseIDParam(r *http.Request) (int64, error) {
	return ParseURLParamInt64(r, "id")
}

// ParseURLParamInt64 parses a chi URL parameter as int64.
func ParseURLParamInt64(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, ErrMissingParam
	}
	return strconv.ParseInt(raw, 10, 64)
}
