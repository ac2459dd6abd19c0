package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/panda-market/internal/domain"
	"github.com/pkordes/panda-market/internal/httpx"
)

// writeError translates a service error into an HTTP response. Domain
// sentinels map to their status codes; anything unrecognized becomes a
// generic 500 so driver and infrastructure details never reach clients.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httpx.Error(w, http.StatusBadRequest, "ValidationError", userMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrUnauthorized):
		httpx.Error(w, http.StatusUnauthorized, "Unauthorized", userMessage(err, domain.ErrUnauthorized))
	case errors.Is(err, domain.ErrForbidden):
		httpx.Error(w, http.StatusForbidden, "Forbidden", userMessage(err, domain.ErrForbidden))
	case errors.Is(err, domain.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "NotFound", userMessage(err, domain.ErrNotFound))
	case errors.Is(err, domain.ErrConflict):
		httpx.Error(w, http.StatusConflict, "Conflict", userMessage(err, domain.ErrConflict))
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		httpx.Error(w, http.StatusInternalServerError, "InternalError", "internal server error")
	}
}

// userMessage strips the wrap chain down to the part after the sentinel,
// e.g. "validation error: name is required" -> "name is required". When the
// error is the bare sentinel its own text is returned.
func userMessage(err error, sentinel error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, sentinel.Error()+": "); i >= 0 {
		return msg[i+len(sentinel.Error())+2:]
	}
	return sentinel.Error()
}
