// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/olegiv/scholarcms/internal/handler"
	"github.com/olegiv/scholarcms/internal/model"
	"github.com/olegiv/scholarcms/internal/service"
	"github.com/olegiv/scholarcms/internal/util"
)

// MenuItemAPIResponse represents a menu item in API responses. Only the
// reference field matching Type is set.
type MenuItemAPIResponse struct {
	ID            int64     `json:"id"`
	MenuID        int64     `json:"menuId"`
	ParentID      *int64    `json:"parentId"`
	Title         string    `json:"title"`
	Type          string    `json:"type"`
	URL           string    `json:"url,omitempty"`
	PageID        *int64    `json:"pageId,omitempty"`
	CategoryID    *int64    `json:"categoryId,omitempty"`
	LevelID       *int64    `json:"levelId,omitempty"`
	CountryID     *int64    `json:"countryId,omitempty"`
	ScholarshipID *int64    `json:"scholarshipId,omitempty"`
	PostID        *int64    `json:"postId,omitempty"`
	TargetBlank   bool      `json:"targetBlank"`
	Order         int       `json:"order"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// MenuNodeAPIResponse is a menu item with its nested children.
type MenuNodeAPIResponse struct {
	MenuItemAPIResponse
	Children []MenuNodeAPIResponse `json:"children"`
}

// targetFields is the flat wire form of a menu item target.
type targetFields struct {
	Type          string `json:"type" validate:"omitempty,oneof=link page category level country scholarship post"`
	URL           string `json:"url" validate:"max=2048"`
	PageID        *int64 `json:"pageId" validate:"omitempty,gt=0"`
	CategoryID    *int64 `json:"categoryId" validate:"omitempty,gt=0"`
	LevelID       *int64 `json:"levelId" validate:"omitempty,gt=0"`
	CountryID     *int64 `json:"countryId" validate:"omitempty,gt=0"`
	ScholarshipID *int64 `json:"scholarshipId" validate:"omitempty,gt=0"`
	PostID        *int64 `json:"postId" validate:"omitempty,gt=0"`
	TargetBlank   bool   `json:"targetBlank"`
}

// refFor returns the reference id matching the item type.
func (f targetFields) refFor(t model.ItemType) *int64 {
	switch t {
	case model.ItemTypePage:
		return f.PageID
	case model.ItemTypeCategory:
		return f.CategoryID
	case model.ItemTypeLevel:
		return f.LevelID
	case model.ItemTypeCountry:
		return f.CountryID
	case model.ItemTypeScholarship:
		return f.ScholarshipID
	case model.ItemTypePost:
		return f.PostID
	}
	return nil
}

func (f targetFields) target() (model.Target, error) {
	t := model.ItemType(f.Type)
	var ref int64
	if p := f.refFor(t); p != nil {
		ref = *p
	}
	return model.NewTarget(t, f.URL, ref, f.TargetBlank)
}

// CreateMenuItemRequest represents the request body for creating a menu item.
type CreateMenuItemRequest struct {
	MenuID   int64  `json:"menuId" validate:"required,gt=0"`
	ParentID *int64 `json:"parentId" validate:"omitempty,gt=0"`
	Title    string `json:"title" validate:"required,max=255"`
	Order    *int   `json:"order" validate:"omitempty,gte=0"`
	targetFields
}

// UpdateMenuItemRequest represents the request body for updating a menu item.
// ParentID distinguishes an absent key from an explicit null (move to root).
type UpdateMenuItemRequest struct {
	ParentID      optionalID `json:"parentId"`
	Title         *string    `json:"title" validate:"omitempty,max=255"`
	Order         *int       `json:"order" validate:"omitempty,gte=0"`
	Type          *string    `json:"type" validate:"omitempty,oneof=link page category level country scholarship post"`
	URL           *string    `json:"url" validate:"omitempty,max=2048"`
	PageID        *int64     `json:"pageId" validate:"omitempty,gt=0"`
	CategoryID    *int64     `json:"categoryId" validate:"omitempty,gt=0"`
	LevelID       *int64     `json:"levelId" validate:"omitempty,gt=0"`
	CountryID     *int64     `json:"countryId" validate:"omitempty,gt=0"`
	ScholarshipID *int64     `json:"scholarshipId" validate:"omitempty,gt=0"`
	PostID        *int64     `json:"postId" validate:"omitempty,gt=0"`
	TargetBlank   *bool      `json:"targetBlank"`
}

func (req UpdateMenuItemRequest) touchesTarget() bool {
	return req.Type != nil || req.URL != nil || req.TargetBlank != nil ||
		req.PageID != nil || req.CategoryID != nil || req.LevelID != nil ||
		req.CountryID != nil || req.ScholarshipID != nil || req.PostID != nil
}

// mergeTarget overlays the request's target fields on the current target.
func (req UpdateMenuItemRequest) mergeTarget(current model.Target) targetFields {
	f := fieldsFromTarget(current)
	if req.Type != nil && *req.Type != f.Type {
		// switching type drops the old reference
		f = targetFields{Type: *req.Type, TargetBlank: f.TargetBlank}
	}
	if req.URL != nil {
		f.URL = *req.URL
	}
	if req.TargetBlank != nil {
		f.TargetBlank = *req.TargetBlank
	}
	for _, p := range []struct{ src, dst **int64 }{
		{&req.PageID, &f.PageID},
		{&req.CategoryID, &f.CategoryID},
		{&req.LevelID, &f.LevelID},
		{&req.CountryID, &f.CountryID},
		{&req.ScholarshipID, &f.ScholarshipID},
		{&req.PostID, &f.PostID},
	} {
		if *p.src != nil {
			*p.dst = *p.src
		}
	}
	return f
}

// ReorderRequest moves one item within its sibling group.
type ReorderRequest struct {
	MenuID           int64  `json:"menuId" validate:"required,gt=0"`
	ParentID         *int64 `json:"parentId" validate:"omitempty,gt=0"`
	SourceIndex      *int   `json:"sourceIndex" validate:"required,gte=0"`
	DestinationIndex *int   `json:"destinationIndex" validate:"required,gte=0"`
}

// ReorderAPIResponse is the sibling group after a move.
type ReorderAPIResponse struct {
	Siblings []MenuItemAPIResponse `json:"siblings"`
	Changed  []int64               `json:"changed"`
}

// optionalID is a JSON id field where null and absent mean different things.
type optionalID struct {
	Set   bool
	Value *int64
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *optionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func fieldsFromTarget(t model.Target) targetFields {
	if t == nil {
		return targetFields{}
	}
	f := targetFields{
		Type:        string(t.Type()),
		URL:         model.TargetURL(t),
		TargetBlank: model.TargetBlank(t),
	}
	if ref := t.RefID(); ref > 0 {
		switch t.(type) {
		case model.PageRef:
			f.PageID = &ref
		case model.CategoryRef:
			f.CategoryID = &ref
		case model.LevelRef:
			f.LevelID = &ref
		case model.CountryRef:
			f.CountryID = &ref
		case model.ScholarshipRef:
			f.ScholarshipID = &ref
		case model.PostRef:
			f.PostID = &ref
		}
	}
	return f
}

func itemToResponse(item model.MenuItem) MenuItemAPIResponse {
	f := fieldsFromTarget(item.Target)
	return MenuItemAPIResponse{
		ID:            item.ID,
		MenuID:        item.MenuID,
		ParentID:      util.PtrFromNullInt64(item.ParentID),
		Title:         item.Title,
		Type:          f.Type,
		URL:           f.URL,
		PageID:        f.PageID,
		CategoryID:    f.CategoryID,
		LevelID:       f.LevelID,
		CountryID:     f.CountryID,
		ScholarshipID: f.ScholarshipID,
		PostID:        f.PostID,
		TargetBlank:   f.TargetBlank,
		Order:         item.Order,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

func itemsToResponse(items []model.MenuItem) []MenuItemAPIResponse {
	out := make([]MenuItemAPIResponse, 0, len(items))
	for _, item := range items {
		out = append(out, itemToResponse(item))
	}
	return out
}

func nodesToResponse(nodes []model.MenuNode) []MenuNodeAPIResponse {
	out := make([]MenuNodeAPIResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, MenuNodeAPIResponse{
			MenuItemAPIResponse: itemToResponse(n.MenuItem),
			Children:            nodesToResponse(n.Children),
		})
	}
	return out
}

// ListMenuItems handles GET /api/v1/menu-items?menuId={id}
// Returns the flat list ordered by position.
func (h *Handler) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	menuID, err := strconv.ParseInt(r.URL.Query().Get("menuId"), 10, 64)
	if err != nil || menuID <= 0 {
		WriteBadRequest(w, "menuId query parameter is required", map[string]string{"menuId": "is required"})
		return
	}

	if _, err := h.menus.GetMenu(r.Context(), menuID); err != nil {
		writeServiceError(w, err, "menu", "retrieve menu")
		return
	}

	items, err := h.menus.ListItems(r.Context(), menuID)
	if err != nil {
		writeServiceError(w, err, "menu item", "list menu items")
		return
	}
	WriteSuccess(w, itemsToResponse(items), &Meta{Total: int64(len(items))})
}

// GetMenuItem handles GET /api/v1/menu-items/{id}
func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "menu item")
	if !ok {
		return
	}

	item, err := h.menus.GetItem(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "menu item", "retrieve menu item")
		return
	}
	WriteSuccess(w, itemToResponse(item), nil)
}

// CreateMenuItem handles POST /api/v1/menu-items
func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req CreateMenuItemRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Type == "" {
		WriteValidationError(w, map[string]string{"type": "is required"})
		return
	}

	target, err := req.target()
	if err != nil {
		writeServiceError(w, err, "menu item", "create menu item")
		return
	}

	item, err := h.menus.CreateItem(r.Context(), service.ItemInput{
		MenuID:   req.MenuID,
		ParentID: req.ParentID,
		Title:    req.Title,
		Target:   target,
		Order:    req.Order,
	})
	if err != nil {
		writeServiceError(w, err, "menu", "create menu item")
		return
	}
	WriteCreated(w, itemToResponse(item))
}

// UpdateMenuItem handles PATCH /api/v1/menu-items/{id}
// Every field except id and menuId may be changed; a new parentId moves
// the item to the end of its new sibling group.
func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "menu item")
	if !ok {
		return
	}

	var req UpdateMenuItemRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.ParentID.Value != nil && *req.ParentID.Value <= 0 {
		WriteValidationError(w, map[string]string{"parentId": "must be greater than 0"})
		return
	}

	patch := service.ItemPatch{
		Title:     req.Title,
		SetParent: req.ParentID.Set,
		ParentID:  req.ParentID.Value,
		Order:     req.Order,
	}

	if req.touchesTarget() {
		current, err := h.menus.GetItem(r.Context(), id)
		if err != nil {
			writeServiceError(w, err, "menu item", "retrieve menu item")
			return
		}
		target, err := req.mergeTarget(current.Target).target()
		if err != nil {
			writeServiceError(w, err, "menu item", "update menu item")
			return
		}
		patch.Target = target
	}

	item, err := h.menus.UpdateItem(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err, "menu item", "update menu item")
		return
	}
	WriteSuccess(w, itemToResponse(item), nil)
}

// DeleteMenuItem handles DELETE /api/v1/menu-items/{id}
// Children are left in place unless ?cascade=true.
func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "menu item")
	if !ok {
		return
	}

	deleted, err := h.menus.DeleteItem(r.Context(), id, handler.ParseBoolQuery(r, "cascade"))
	if err != nil {
		writeServiceError(w, err, "menu item", "delete menu item")
		return
	}
	WriteSuccess(w, map[string][]int64{"deleted": deleted}, nil)
}

// ReorderMenuItems handles POST /api/v1/menu-items/reorder
// The move is applied atomically; only items whose order changed are written.
func (h *Handler) ReorderMenuItems(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	plan, err := h.menus.Reorder(r.Context(), req.MenuID, service.Move{
		ParentID: req.ParentID,
		From:     *req.SourceIndex,
		To:       *req.DestinationIndex,
	})
	if err != nil {
		writeServiceError(w, err, "menu", "reorder menu items")
		return
	}

	changed := make([]int64, 0, len(plan.Changed))
	for _, item := range plan.Changed {
		changed = append(changed, item.ID)
	}
	WriteSuccess(w, ReorderAPIResponse{
		Siblings: itemsToResponse(plan.Siblings),
		Changed:  changed,
	}, nil)
}
