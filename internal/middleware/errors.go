// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides the HTTP middleware of the scholarcms API:
// request timeouts, trailing slash handling, security and cache headers,
// and per-client rate limiting.
package middleware

import (
	"encoding/json"
	"net/http"
)

// errorBody mirrors the API error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeError writes a JSON error response in the API envelope.
func writeError(w http.ResponseWriter, statusCode int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
