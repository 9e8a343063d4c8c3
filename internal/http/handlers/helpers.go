package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/role-ladder/internal/apperr"
)

// maxBodyBytes bounds request bodies. A full match with ten entries is well
// under a kilobyte.
const maxBodyBytes = 64 << 10

// Client codes produced by the HTTP layer itself.
const (
	CodeInvalidID   = "INVALID_ID"
	CodeInvalidBody = "INVALID_BODY"
	CodeInvalidSort = "INVALID_SORT"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

// RequestIDKey carries the id assigned by the request logger.
const RequestIDKey ContextKey = "requestID"

// RequestIDFromContext returns the request id, or "" outside a logged request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type successResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, id int64) {
	writeJSON(w, http.StatusOK, successResponse{Success: true, ID: id})
}

func badRequest(w http.ResponseWriter, code string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: code})
}

// writeError maps an error to its HTTP status and body. Domain outcomes
// answer 200 with the code in the body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperr.CodeOf(err)
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindConstraint, apperr.KindAuth:
		writeJSON(w, http.StatusOK, errorResponse{Error: code})
	case apperr.KindTimestamp:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: code})
	case apperr.KindNotFound:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: code})
	default:
		log.Error("Request failed", "method", r.Method, "path", r.URL.Path, "requestID", RequestIDFromContext(r.Context()), "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "STORE_UNAVAILABLE", Detail: err.Error()})
	}
}

// pathID parses the {id} path value as a positive integer.
func pathID(r *http.Request) (int64, bool) {
	return parsePositive(r.PathValue("id"))
}

func parsePositive(v string) (int64, bool) {
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
