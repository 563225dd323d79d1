// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the REST API handlers for the site and the
// admin back office.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/mangotour/mtour-go/internal/app"
	"github.com/mangotour/mtour-go/internal/backup"
	"github.com/mangotour/mtour-go/internal/fault"
	"github.com/mangotour/mtour-go/internal/logging"
	"github.com/mangotour/mtour-go/internal/upload"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	state    *app.State
	uploads  *upload.Pipeline
	backup   *backup.Manager
	sessions *scs.SessionManager
	events   *logging.EventRingHandler
	logger   *slog.Logger
}

// New creates the handler set. events may be nil when no ring handler
// is installed.
func New(state *app.State, uploads *upload.Pipeline, bkp *backup.Manager,
	sessions *scs.SessionManager, events *logging.EventRingHandler, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		state:    state,
		uploads:  uploads,
		backup:   bkp,
		sessions: sessions,
		events:   events,
		logger:   logger,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any `json:"data,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Response{Data: data})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message)
}

// WriteFault maps a classified fault onto an HTTP error response. The
// message is the fault's human-readable text; the code is its kind.
func WriteFault(w http.ResponseWriter, err error) {
	kind := fault.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case fault.KindValidationFailure:
		status = http.StatusBadRequest
	case fault.KindAuthorizationDenied:
		status = http.StatusForbidden
	case fault.KindConfigurationMissing:
		status = http.StatusServiceUnavailable
	case fault.KindQuotaOrSizeExceeded:
		status = http.StatusRequestEntityTooLarge
	case fault.KindUnreachable:
		status = http.StatusBadGateway
	}

	var f *fault.Fault
	if errors.As(err, &f) {
		WriteError(w, status, string(kind), f.Message)
		return
	}
	WriteError(w, status, string(kind), err.Error())
}

// decodeJSON reads a JSON request body into dst with a size cap.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return false
	}
	return true
}
