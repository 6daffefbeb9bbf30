// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/scholarcms/internal/model"
	"github.com/olegiv/scholarcms/internal/service"
)

// MenuAPIResponse represents a menu in API responses.
type MenuAPIResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NavigationAPIResponse is a menu together with its built tree.
type NavigationAPIResponse struct {
	Menu  MenuAPIResponse       `json:"menu"`
	Items []MenuNodeAPIResponse `json:"items"`
}

// CreateMenuRequest represents the request body for creating a menu.
type CreateMenuRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Slug        string `json:"slug" validate:"max=255"`
	Description string `json:"description" validate:"max=1000"`
	Location    string `json:"location" validate:"required,oneof=header footer sidebar mobile"`
	IsActive    *bool  `json:"isActive"`
}

// UpdateMenuRequest represents the request body for updating a menu.
type UpdateMenuRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Slug        *string `json:"slug,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Location    *string `json:"location,omitempty" validate:"omitempty,oneof=header footer sidebar mobile"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

func menuToResponse(m model.Menu) MenuAPIResponse {
	return MenuAPIResponse{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Location:    string(m.Location),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func menuInput(req CreateMenuRequest, isActive bool) service.MenuInput {
	return service.MenuInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Location:    model.Location(req.Location),
		IsActive:    isActive,
	}
}

func menuPatch(req UpdateMenuRequest) service.MenuPatch {
	p := service.MenuPatch{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
	if req.Location != nil {
		loc := model.Location(*req.Location)
		p.Location = &loc
	}
	return p
}

// ListMenus handles GET /api/v1/menus
// Optional ?location= filter.
func (h *Handler) ListMenus(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location != "" && !model.IsValidLocation(location) {
		WriteValidationError(w, map[string]string{"location": "must be one of header, footer, sidebar, mobile"})
		return
	}

	menus, err := h.menus.ListMenus(r.Context(), model.Location(location))
	if err != nil {
		writeServiceError(w, err, "menu", "list menus")
		return
	}

	responses := make([]MenuAPIResponse, 0, len(menus))
	for _, m := range menus {
		responses = append(responses, menuToResponse(m))
	}
	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// GetMenu handles GET /api/v1/menus/{id}
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "menu")
	if !ok {
		return
	}

	menu, err := h.menus.GetMenu(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "menu", "retrieve menu")
		return
	}
	WriteSuccess(w, menuToResponse(menu), nil)
}

// CreateMenu handles POST /api/v1/menus
func (h *Handler) CreateMenu(w http.ResponseWriter, r *http.Request) {
	var req CreateMenuRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	menu, err := h.menus.CreateMenu(r.Context(), menuInput(req, isActive))
	if err != nil {
		writeServiceError(w, err, "menu", "create menu")
		return
	}
	WriteCreated(w, menuToResponse(menu))
}

// UpdateMenu handles PATCH /api/v1/menus/{id}
func (h *Handler) UpdateMenu(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "menu")
	if !ok {
		return
	}

	var req UpdateMenuRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	menu, err := h.menus.UpdateMenu(r.Context(), id, menuPatch(req))
	if err != nil {
		writeServiceError(w, err, "menu", "update menu")
		return
	}
	WriteSuccess(w, menuToResponse(menu), nil)
}

// DeleteMenu handles DELETE /api/v1/menus/{id}
// The menu's items are removed with it.
func (h *Handler) DeleteMenu(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "menu")
	if !ok {
		return
	}

	if err := h.menus.DeleteMenu(r.Context(), id); err != nil {
		writeServiceError(w, err, "menu", "delete menu")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetMenuTree handles GET /api/v1/menus/{id}/tree
func (h *Handler) GetMenuTree(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "menu")
	if !ok {
		return
	}

	if _, err := h.menus.GetMenu(r.Context(), id); err != nil {
		writeServiceError(w, err, "menu", "retrieve menu")
		return
	}

	forest, err := h.menus.Tree(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "menu", "build menu tree")
		return
	}
	WriteSuccess(w, nodesToResponse(forest), nil)
}

// GetNavigation handles GET /api/v1/navigation/{location}
// Public storefront endpoint: the first active menu at the location.
func (h *Handler) GetNavigation(w http.ResponseWriter, r *http.Request) {
	location := chi.URLParam(r, "location")

	menu, forest, err := h.menus.Navigation(r.Context(), model.Location(location))
	if err != nil {
		writeServiceError(w, err, "menu", "load navigation")
		return
	}
	WriteSuccess(w, NavigationAPIResponse{
		Menu:  menuToResponse(menu),
		Items: nodesToResponse(forest),
	}, nil)
}
