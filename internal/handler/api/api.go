// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST API handlers for menus, menu items and
// content scoring.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/olegiv/scholarcms/internal/handler"
	"github.com/olegiv/scholarcms/internal/model"
	"github.com/olegiv/scholarcms/internal/service"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	menus    *service.MenuService
	events   *service.EventService
	validate *validator.Validate
}

// NewHandler creates a new API handler. events may be nil.
func NewHandler(menus *service.MenuService, events *service.EventService) *Handler {
	return &Handler{
		menus:    menus,
		events:   events,
		validate: newValidator(),
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination and other metadata.
type Meta struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page,omitempty"`
	PerPage int   `json:"perPage,omitempty"`
	Pages   int   `json:"pages,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set(handler.HeaderContentType, "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteConflict writes a 409 Conflict response.
func WriteConflict(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusConflict, "conflict", message, details)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Validation failed", fieldErrors)
}

// writeServiceError maps service and model errors to HTTP responses.
// action describes the failed operation for 500 messages, e.g. "update menu".
func writeServiceError(w http.ResponseWriter, err error, entity, action string) {
	var verr *service.ValidationError
	var ierr *service.IndexError
	switch {
	case errors.As(err, &verr):
		WriteValidationError(w, verr.Fields)
	case errors.As(err, &ierr):
		WriteValidationError(w, map[string]string{ierr.Field: "out of range for sibling group"})
	case errors.Is(err, service.ErrNotFound):
		WriteNotFound(w, capitalizeFirst(entity)+" not found")
	case errors.Is(err, service.ErrSlugTaken):
		WriteConflict(w, "Slug already exists", map[string]string{"slug": "already exists"})
	case errors.Is(err, service.ErrInvalidParent):
		WriteValidationError(w, map[string]string{"parentId": err.Error()})
	case errors.Is(err, service.ErrIndexOutOfRange):
		WriteValidationError(w, map[string]string{"destinationIndex": err.Error()})
	case errors.Is(err, model.ErrMissingURL):
		WriteValidationError(w, map[string]string{"url": "is required for link items"})
	case errors.Is(err, model.ErrMissingRef), errors.Is(err, model.ErrUnknownItemType):
		WriteValidationError(w, map[string]string{"type": err.Error()})
	default:
		slog.Error("api request failed", "action", action, "error", err)
		WriteInternalError(w, "Failed to "+action)
	}
}

// decodeJSON reads a size-limited JSON body into dst and validates it.
// It writes the error response and returns false on failure.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "Request body too large", nil)
			return false
		}
		WriteBadRequest(w, "Invalid JSON body", nil)
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		if fields := validationFields(err); fields != nil {
			WriteValidationError(w, fields)
			return false
		}
		WriteBadRequest(w, "Invalid request", nil)
		return false
	}
	return true
}

// requireID parses the {id} URL parameter, writing 400 on failure.
func requireID(w http.ResponseWriter, r *http.Request, entity string) (int64, bool) {
	id, err := handler.ParseIDParam(r)
	if err != nil || id <= 0 {
		WriteBadRequest(w, "Invalid "+entity+" ID", nil)
		return 0, false
	}
	return id, true
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationFields converts validator errors to a json-field keyed map.
func validationFields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}

// capitalizeFirst returns s with the first letter capitalized.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
