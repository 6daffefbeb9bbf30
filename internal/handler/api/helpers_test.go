// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/scholarcms/internal/cache"
	"github.com/olegiv/scholarcms/internal/model"
	"github.com/olegiv/scholarcms/internal/service"
	"github.com/olegiv/scholarcms/internal/testutil"
)

// testEnv bundles an API handler with the services behind it.
type testEnv struct {
	db     *sql.DB
	h      *Handler
	menus  *service.MenuService
	events *service.EventService
}

// testSetup creates an in-memory database, a memory-cached menu service
// and an API handler on top of it.
func testSetup(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.TestMemoryDB(t)
	backend := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = backend.Close() })

	events := service.NewEventService(db)
	menus := service.NewMenuService(db, cache.NewMenuCache(backend, time.Minute), events)

	return &testEnv{
		db:     db,
		h:      NewHandler(menus, events),
		menus:  menus,
		events: events,
	}
}

// createTestMenu creates a menu through the service layer.
func createTestMenu(t *testing.T, env *testEnv, name string, location model.Location) model.Menu {
	t.Helper()
	menu, err := env.menus.CreateMenu(context.Background(), service.MenuInput{
		Name:     name,
		Location: location,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("failed to create test menu: %v", err)
	}
	return menu
}

// createTestLink creates a link item through the service layer.
func createTestLink(t *testing.T, env *testEnv, menuID int64, parentID *int64, title string) model.MenuItem {
	t.Helper()
	item, err := env.menus.CreateItem(context.Background(), service.ItemInput{
		MenuID:   menuID,
		ParentID: parentID,
		Title:    title,
		Target:   model.Link{URL: "/" + strings.ToLower(title)},
	})
	if err != nil {
		t.Fatalf("failed to create test item %q: %v", title, err)
	}
	return item
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// newJSONRequest creates an HTTP request with JSON body and optional URL params.
func newJSONRequest(t *testing.T, method, path string, body string, params map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if len(params) > 0 {
		req = requestWithURLParams(req, params)
	}
	return req
}

// newGetRequest creates an HTTP GET request with optional URL params.
func newGetRequest(t *testing.T, path string, params map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if len(params) > 0 {
		req = requestWithURLParams(req, params)
	}
	return req
}

// newDeleteRequest creates an HTTP DELETE request with optional URL params.
func newDeleteRequest(t *testing.T, path string, params map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	if len(params) > 0 {
		req = requestWithURLParams(req, params)
	}
	return req
}

// dataResponse is a generic wrapper for API responses with a "data" field.
type dataResponse[T any] struct {
	Data T `json:"data"`
}

// listResponse is a generic wrapper for API list responses with data and meta.
type listResponse[T any] struct {
	Data []T   `json:"data"`
	Meta *Meta `json:"meta"`
}

// unmarshalData unmarshals a JSON response body into the specified type.
func unmarshalData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp dataResponse[T]
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return resp.Data
}

// unmarshalList unmarshals a JSON list response body into the specified type.
func unmarshalList[T any](t *testing.T, w *httptest.ResponseRecorder) ([]T, *Meta) {
	t.Helper()
	var resp listResponse[T]
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return resp.Data, resp.Meta
}

// executeHandler executes a handler and returns the response recorder.
func executeHandler(t *testing.T, handler func(http.ResponseWriter, *http.Request), req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}
