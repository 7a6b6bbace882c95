// Copyright (c) 2026 Quill Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the versioned REST API handlers.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/quillcms/quill/internal/service"
	"github.com/quillcms/quill/internal/version"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db    *sql.DB
	posts *service.PostService
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB) *Handler {
	return &Handler{
		db:    db,
		posts: service.NewPostService(db),
	}
}

// ErrorResponse is the standard API error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine code, a human message and, for
// validation failures, the per-field issues in input order.
type ErrorDetail struct {
	Code    string               `json:"code"`
	Message string               `json:"message"`
	Details []service.FieldIssue `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details []service.FieldIssue) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteValidationError writes a 400 response carrying field issues.
func WriteValidationError(w http.ResponseWriter, message string, details []service.FieldIssue) {
	WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "NOT_FOUND", message, nil)
}

// WriteConflict writes a 409 Conflict response.
func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, "CONFLICT", message, nil)
}

// WriteInternalError writes a 500 response with a generic message.
// Internal detail goes to the log, never to the caller.
func WriteInternalError(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Unexpected error", nil)
}

// writeServiceError maps service-layer failures to API responses. message is
// used as the validation summary when the failure carries field issues.
func writeServiceError(w http.ResponseWriter, r *http.Request, message string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteValidationError(w, message, verr.Issues)
	case errors.Is(err, service.ErrNotFound):
		WriteNotFound(w, "Post not found")
	case errors.Is(err, service.ErrConflict):
		WriteConflict(w, "Slug already exists")
	default:
		slog.Error("api request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		WriteInternalError(w)
	}
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Status returns the API status and build version.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, StatusResponse{
		Status:  "ok",
		Version: version.Version,
	})
}
