// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/scholarcms/internal/model"
	"github.com/olegiv/scholarcms/internal/service"
)

// assertStatusCode checks that the response has the expected status code.
func assertStatusCode(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("expected status %d, got %d (body: %s)", expected, w.Code, w.Body.String())
	}
}

// assertErrorResponse unmarshals and validates an error response.
func assertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error.Code != expectedCode {
		t.Errorf("expected code '%s', got %s", expectedCode, resp.Error.Code)
	}
	return resp
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	data := map[string]string{"key": "value"}
	WriteJSON(w, http.StatusOK, data)

	assertStatusCode(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type 'application/json', got %s", ct)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp["key"] != "value" {
		t.Errorf("expected key 'value', got %s", resp["key"])
	}
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()

	WriteSuccess(w, map[string]string{"name": "test"}, &Meta{Total: 100, Page: 1, PerPage: 20})

	assertStatusCode(t, w, http.StatusOK)

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if _, ok := resp["data"]; !ok {
		t.Error("expected data key")
	}

	var meta map[string]any
	if err := json.Unmarshal(resp["meta"], &meta); err != nil {
		t.Fatalf("failed to unmarshal meta: %v", err)
	}
	if meta["perPage"] != float64(20) {
		t.Errorf("expected meta.perPage 20, got %v", meta["perPage"])
	}
}

func TestWriteSuccessEmptyListKeepsData(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, []int{}, nil)

	if got := w.Body.String(); got != "{\"data\":[]}\n" {
		t.Errorf("body = %q", got)
	}
}

func TestWriteCreated(t *testing.T) {
	w := httptest.NewRecorder()
	WriteCreated(w, map[string]string{"id": "123"})
	assertStatusCode(t, w, http.StatusCreated)
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, http.StatusBadRequest, "validation_error", "Invalid input", map[string]string{
		"field": "name",
	})

	assertStatusCode(t, w, http.StatusBadRequest)
	resp := assertErrorResponse(t, w, "validation_error")

	if resp.Error.Message != "Invalid input" {
		t.Errorf("expected message 'Invalid input', got %s", resp.Error.Message)
	}
	if resp.Error.Details["field"] != "name" {
		t.Errorf("expected details.field 'name', got %s", resp.Error.Details["field"])
	}
}

func TestWriteHelpers(t *testing.T) {
	tests := []struct {
		name  string
		write func(w http.ResponseWriter)
		code  int
		want  string
	}{
		{"bad request", func(w http.ResponseWriter) { WriteBadRequest(w, "Bad input", nil) }, http.StatusBadRequest, "bad_request"},
		{"not found", func(w http.ResponseWriter) { WriteNotFound(w, "Resource not found") }, http.StatusNotFound, "not_found"},
		{"conflict", func(w http.ResponseWriter) { WriteConflict(w, "Taken", nil) }, http.StatusConflict, "conflict"},
		{"internal", func(w http.ResponseWriter) { WriteInternalError(w, "Something went wrong") }, http.StatusInternalServerError, "internal_error"},
		{"validation", func(w http.ResponseWriter) { WriteValidationError(w, map[string]string{"name": "is required"}) }, http.StatusUnprocessableEntity, "validation_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)
			assertStatusCode(t, w, tt.code)
			assertErrorResponse(t, w, tt.want)
		})
	}
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{"validation", &service.ValidationError{Fields: map[string]string{"title": "is required"}}, http.StatusUnprocessableEntity, "validation_error", "title"},
		{"not found", fmt.Errorf("menu 7: %w", service.ErrNotFound), http.StatusNotFound, "not_found", ""},
		{"slug taken", fmt.Errorf("%q: %w", "main", service.ErrSlugTaken), http.StatusConflict, "conflict", "slug"},
		{"invalid parent", fmt.Errorf("cycle: %w", service.ErrInvalidParent), http.StatusUnprocessableEntity, "validation_error", "parentId"},
		{"index out of range", service.ErrIndexOutOfRange, http.StatusUnprocessableEntity, "validation_error", "destinationIndex"},
		{"source index out of range", &service.IndexError{Field: service.FieldSourceIndex, Index: 4, Size: 2}, http.StatusUnprocessableEntity, "validation_error", "sourceIndex"},
		{"wrapped destination index", fmt.Errorf("reorder: %w", &service.IndexError{Field: service.FieldDestinationIndex, Index: 9, Size: 2}), http.StatusUnprocessableEntity, "validation_error", "destinationIndex"},
		{"missing url", model.ErrMissingURL, http.StatusUnprocessableEntity, "validation_error", "url"},
		{"missing ref", fmt.Errorf("%w: page", model.ErrMissingRef), http.StatusUnprocessableEntity, "validation_error", "type"},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, "internal_error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeServiceError(w, tt.err, "menu", "update menu")

			assertStatusCode(t, w, tt.wantStatus)
			resp := assertErrorResponse(t, w, tt.wantCode)
			if tt.wantField != "" {
				if _, ok := resp.Error.Details[tt.wantField]; !ok {
					t.Errorf("details = %v, want key %q", resp.Error.Details, tt.wantField)
				}
			}
		})
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	w := httptest.NewRecorder()
	writeServiceError(w, errors.New("secret dsn"), "menu", "list menus")

	resp := assertErrorResponse(t, w, "internal_error")
	if resp.Error.Message != "Failed to list menus" {
		t.Errorf("message = %q", resp.Error.Message)
	}
}

func TestValidationFieldsUseJSONNames(t *testing.T) {
	v := newValidator()
	err := v.Struct(CreateMenuRequest{Location: "attic"})

	fields := validationFields(err)
	if fields["name"] != "is required" {
		t.Errorf("name = %q, want 'is required'", fields["name"])
	}
	if fields["location"] != "must be one of header, footer, sidebar, mobile" {
		t.Errorf("location = %q", fields["location"])
	}
}

func TestValidationFieldsNonValidatorError(t *testing.T) {
	if got := validationFields(errors.New("boom")); got != nil {
		t.Errorf("validationFields = %v, want nil", got)
	}
}

func TestCapitalizeFirst(t *testing.T) {
	tests := map[string]string{"": "", "menu": "Menu", "menu item": "Menu item"}
	for in, want := range tests {
		if got := capitalizeFirst(in); got != want {
			t.Errorf("capitalizeFirst(%q) = %q, want %q", in, got, want)
		}
	}
}
