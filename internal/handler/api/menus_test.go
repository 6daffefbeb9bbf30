// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/olegiv/scholarcms/internal/model"
)

func idParam(id int64) map[string]string {
	return map[string]string{"id": strconv.FormatInt(id, 10)}
}

func TestCreateMenu(t *testing.T) {
	env := testSetup(t)

	req := newJSONRequest(t, http.MethodPost, "/api/v1/menus",
		`{"name":"Main Navigation","description":"Top bar","location":"header"}`, nil)
	w := executeHandler(t, env.h.CreateMenu, req)

	assertStatusCode(t, w, http.StatusCreated)
	menu := unmarshalData[MenuAPIResponse](t, w)
	if menu.ID == 0 {
		t.Error("expected id to be set")
	}
	if menu.Slug != "main-navigation" {
		t.Errorf("Slug = %q, want main-navigation", menu.Slug)
	}
	if !menu.IsActive {
		t.Error("isActive should default to true")
	}
	if menu.Location != "header" {
		t.Errorf("Location = %q, want header", menu.Location)
	}
}

func TestCreateMenuValidation(t *testing.T) {
	env := testSetup(t)

	tests := []struct {
		name      string
		body      string
		wantCode  int
		wantField string
	}{
		{"missing name", `{"location":"header"}`, http.StatusUnprocessableEntity, "name"},
		{"unknown location", `{"name":"X","location":"attic"}`, http.StatusUnprocessableEntity, "location"},
		{"bad slug", `{"name":"X","slug":"Not A Slug","location":"footer"}`, http.StatusUnprocessableEntity, "slug"},
		{"malformed json", `{"name":`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(t, http.MethodPost, "/api/v1/menus", tt.body, nil)
			w := executeHandler(t, env.h.CreateMenu, req)

			assertStatusCode(t, w, tt.wantCode)
			if tt.wantField != "" {
				resp := assertErrorResponse(t, w, "validation_error")
				if _, ok := resp.Error.Details[tt.wantField]; !ok {
					t.Errorf("details = %v, want key %q", resp.Error.Details, tt.wantField)
				}
			}
		})
	}
}

func TestCreateMenuDuplicateSlug(t *testing.T) {
	env := testSetup(t)
	createTestMenu(t, env, "Main", model.LocationHeader)

	req := newJSONRequest(t, http.MethodPost, "/api/v1/menus",
		`{"name":"Other","slug":"main","location":"footer"}`, nil)
	w := executeHandler(t, env.h.CreateMenu, req)

	assertStatusCode(t, w, http.StatusConflict)
	assertErrorResponse(t, w, "conflict")
}

func TestListMenus(t *testing.T) {
	env := testSetup(t)
	createTestMenu(t, env, "Header", model.LocationHeader)
	createTestMenu(t, env, "Footer", model.LocationFooter)

	w := executeHandler(t, env.h.ListMenus, newGetRequest(t, "/api/v1/menus", nil))
	assertStatusCode(t, w, http.StatusOK)
	menus, meta := unmarshalList[MenuAPIResponse](t, w)
	if len(menus) != 2 || meta.Total != 2 {
		t.Fatalf("got %d menus (total %d), want 2", len(menus), meta.Total)
	}

	w = executeHandler(t, env.h.ListMenus, newGetRequest(t, "/api/v1/menus?location=footer", nil))
	menus, _ = unmarshalList[MenuAPIResponse](t, w)
	if len(menus) != 1 || menus[0].Name != "Footer" {
		t.Errorf("location filter returned %+v", menus)
	}

	w = executeHandler(t, env.h.ListMenus, newGetRequest(t, "/api/v1/menus?location=attic", nil))
	assertStatusCode(t, w, http.StatusUnprocessableEntity)
}

func TestGetMenu(t *testing.T) {
	env := testSetup(t)
	menu := createTestMenu(t, env, "Header", model.LocationHeader)

	w := executeHandler(t, env.h.GetMenu, newGetRequest(t, "/api/v1/menus/1", idParam(menu.ID)))
	assertStatusCode(t, w, http.StatusOK)
	if got := unmarshalData[MenuAPIResponse](t, w); got.Name != "Header" {
		t.Errorf("Name = %q, want Header", got.Name)
	}

	w = executeHandler(t, env.h.GetMenu, newGetRequest(t, "/api/v1/menus/999", idParam(999)))
	assertStatusCode(t, w, http.StatusNotFound)
	resp := assertErrorResponse(t, w, "not_found")
	if resp.Error.Message != "Menu not found" {
		t.Errorf("message = %q", resp.Error.Message)
	}

	w = executeHandler(t, env.h.GetMenu, newGetRequest(t, "/api/v1/menus/abc", map[string]string{"id": "abc"}))
	assertStatusCode(t, w, http.StatusBadRequest)
}

func TestUpdateMenu(t *testing.T) {
	env := testSetup(t)
	menu := createTestMenu(t, env, "Header", model.LocationHeader)

	req := newJSONRequest(t, http.MethodPatch, "/api/v1/menus/1",
		`{"name":"Primary","isActive":false}`, idParam(menu.ID))
	w := executeHandler(t, env.h.UpdateMenu, req)

	assertStatusCode(t, w, http.StatusOK)
	got := unmarshalData[MenuAPIResponse](t, w)
	if got.Name != "Primary" {
		t.Errorf("Name = %q, want Primary", got.Name)
	}
	if got.IsActive {
		t.Error("isActive should be false")
	}
	if got.Slug != menu.Slug {
		t.Errorf("Slug changed to %q", got.Slug)
	}
}

func TestUpdateMenuInvalidLocation(t *testing.T) {
	env := testSetup(t)
	menu := createTestMenu(t, env, "Header", model.LocationHeader)

	req := newJSONRequest(t, http.MethodPatch, "/api/v1/menus/1", `{"location":"roof"}`, idParam(menu.ID))
	w := executeHandler(t, env.h.UpdateMenu, req)
	assertStatusCode(t, w, http.StatusUnprocessableEntity)
}

func TestDeleteMenu(t *testing.T) {
	env := testSetup(t)
	menu := createTestMenu(t, env, "Header", model.LocationHeader)
	createTestLink(t, env, menu.ID, nil, "Home")

	w := executeHandler(t, env.h.DeleteMenu, newDeleteRequest(t, "/api/v1/menus/1", idParam(menu.ID)))
	assertStatusCode(t, w, http.StatusNoContent)

	if _, err := env.menus.GetMenu(context.Background(), menu.ID); err == nil {
		t.Error("menu should be gone")
	}

	w = executeHandler(t, env.h.DeleteMenu, newDeleteRequest(t, "/api/v1/menus/1", idParam(menu.ID)))
	assertStatusCode(t, w, http.StatusNotFound)
}

func TestGetMenuTree(t *testing.T) {
	env := testSetup(t)
	menu := createTestMenu(t, env, "Header", model.LocationHeader)
	home := createTestLink(t, env, menu.ID, nil, "Home")
	createTestLink(t, env, menu.ID, nil, "About")
	createTestLink(t, env, menu.ID, &home.ID, "Sub")

	w := executeHandler(t, env.h.GetMenuTree, newGetRequest(t, "/api/v1/menus/1/tree", idParam(menu.ID)))
	assertStatusCode(t, w, http.StatusOK)

	roots := unmarshalData[[]MenuNodeAPIResponse](t, w)
	if len(roots) != 2 {
		t.Fatalf("got %d roots, want 2", len(roots))
	}
	if roots[0].Title != "Home" || roots[1].Title != "About" {
		t.Errorf("roots = %q, %q; want Home, About", roots[0].Title, roots[1].Title)
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].Title != "Sub" {
		t.Errorf("Home children = %+v, want [Sub]", roots[0].Children)
	}
	if roots[1].Children == nil {
		t.Error("leaf children should encode as an empty list")
	}

	w = executeHandler(t, env.h.GetMenuTree, newGetRequest(t, "/api/v1/menus/999/tree", idParam(999)))
	assertStatusCode(t, w, http.StatusNotFound)
}

func TestGetNavigation(t *testing.T) {
	env := testSetup(t)
	menu := createTestMenu(t, env, "Footer", model.LocationFooter)
	createTestLink(t, env, menu.ID, nil, "Contact")

	req := newGetRequest(t, "/api/v1/navigation/footer", map[string]string{"location": "footer"})
	w := executeHandler(t, env.h.GetNavigation, req)
	assertStatusCode(t, w, http.StatusOK)

	nav := unmarshalData[NavigationAPIResponse](t, w)
	if nav.Menu.ID != menu.ID {
		t.Errorf("menu id = %d, want %d", nav.Menu.ID, menu.ID)
	}
	if len(nav.Items) != 1 || nav.Items[0].Title != "Contact" {
		t.Errorf("items = %+v", nav.Items)
	}

	req = newGetRequest(t, "/api/v1/navigation/sidebar", map[string]string{"location": "sidebar"})
	w = executeHandler(t, env.h.GetNavigation, req)
	assertStatusCode(t, w, http.StatusNotFound)

	req = newGetRequest(t, "/api/v1/navigation/attic", map[string]string{"location": "attic"})
	w = executeHandler(t, env.h.GetNavigation, req)
	assertStatusCode(t, w, http.StatusUnprocessableEntity)
}
