// Package httpapi provides the REST HTTP adapter for the `/todos` collection
// endpoint.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hylla/syssla/internal/adapters/server/common"
	"github.com/hylla/syssla/internal/domain"
)

// maxRequestBodyBytes limits decoded JSON payload size for fail-closed request handling.
const maxRequestBodyBytes int64 = 1 << 20

// errMalformedBody marks request bodies that fail strict JSON decoding.
var errMalformedBody = errors.New("malformed request body")

// Handler serves the `/todos` collection routes.
type Handler struct {
	todos common.TodoService
	idGen func() string
}

// APIError represents one structured API failure response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorEnvelope wraps one structured API error.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// NewHandler constructs the REST adapter. idGen assigns ids to created items
// that arrive without one.
func NewHandler(todos common.TodoService, idGen func() string) *Handler {
	if idGen == nil {
		idGen = func() string { return "" }
	}
	return &Handler{
		todos: todos,
		idGen: idGen,
	}
}

// ServeHTTP routes one request to the matching collection handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := normalizePath(r.URL.Path)
	switch {
	case path == "todos":
		switch r.Method {
		case http.MethodGet:
			h.handleList(w)
		case http.MethodPost:
			h.handleCreate(w, r)
		default:
			writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	default:
		id, ok := resolveTodoID(path)
		if !ok {
			writeJSONError(w, http.StatusNotFound, APIError{
				Code:    "not_found",
				Message: "endpoint not found",
			})
			return
		}
		switch r.Method {
		case http.MethodPost:
			h.handleUpdate(w, r, id)
		case http.MethodDelete:
			h.handleDelete(w, r, id)
		default:
			writeMethodNotAllowed(w, http.MethodPost, http.MethodDelete)
		}
	}
}

// handleList serves GET `/todos` with the full ordered collection.
func (h *Handler) handleList(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, h.todos.Items())
}

// handleCreate serves POST `/todos`. The stored item is returned and may
// differ from the candidate (server-assigned id for items arriving without
// one).
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var item domain.Item
	if err := decodeJSONBody(r.Context(), w, r, &item); err != nil {
		writeJSONError(w, http.StatusBadRequest, APIError{
			Code:    "invalid_request",
			Message: err.Error(),
		})
		return
	}
	if strings.TrimSpace(item.ID) == "" {
		item.ID = h.idGen()
	}

	stored, err := h.todos.Update(r.Context(), item)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, APIError{
			Code:    "invalid_request",
			Message: err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

// handleUpdate serves POST `/todos/{id}` with upsert semantics. The path id
// wins over any id in the body.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var item domain.Item
	if err := decodeJSONBody(r.Context(), w, r, &item); err != nil {
		writeJSONError(w, http.StatusBadRequest, APIError{
			Code:    "invalid_request",
			Message: err.Error(),
		})
		return
	}
	item.ID = id

	stored, err := h.todos.Update(r.Context(), item)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, APIError{
			Code:    "invalid_request",
			Message: err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

// handleDelete serves DELETE `/todos/{id}` and echoes the deleted resource.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	deleted, ok := h.todos.Get(id)
	if !ok {
		writeJSONError(w, http.StatusNotFound, APIError{
			Code:    "not_found",
			Message: fmt.Sprintf("todo %q not found", id),
		})
		return
	}
	if err := h.todos.Remove(r.Context(), id); err != nil {
		writeJSONError(w, http.StatusInternalServerError, APIError{
			Code:    "internal_error",
			Message: err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}

// resolveTodoID parses `todos/{id}` and returns `{id}`.
func resolveTodoID(path string) (string, bool) {
	const prefix = "todos/"
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	id := strings.TrimSpace(strings.TrimPrefix(path, prefix))
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

// normalizePath canonicalizes one request path for route matching.
func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	path = strings.Trim(path, "/")
	return path
}

// writeMethodNotAllowed writes a structured 405 response with `Allow` headers.
func writeMethodNotAllowed(w http.ResponseWriter, methods ...string) {
	if len(methods) > 0 {
		w.Header().Set("Allow", strings.Join(methods, ", "))
	}
	writeJSONError(w, http.StatusMethodNotAllowed, APIError{
		Code:    "method_not_allowed",
		Message: "method not allowed",
	})
}

// writeJSONError writes one structured error envelope.
func writeJSONError(w http.ResponseWriter, statusCode int, apiErr APIError) {
	writeJSON(w, statusCode, ErrorEnvelope{Error: apiErr})
}

// writeJSON writes one JSON response.
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, fmt.Sprintf(`{"error":{"code":"encode_error","message":"%s"}}`, err.Error()), http.StatusInternalServerError)
	}
}

// decodeJSONBody decodes one required JSON request body with strict shape checks.
func decodeJSONBody(ctx context.Context, w http.ResponseWriter, r *http.Request, out any) error {
	reader := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	defer reader.Close()

	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("decode request body: %w", errors.Join(errMalformedBody, err))
	}
	// Reject trailing payloads so malformed JSON bodies fail closed.
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode request body: trailing content: %w", errMalformedBody)
	}
	select {
	case <-ctx.Done():
		return fmt.Errorf("request canceled: %w", ctx.Err())
	default:
		return nil
	}
}
