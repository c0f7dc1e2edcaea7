package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"internmatch-engine/internal/logger"
	"internmatch-engine/internal/matching"
	"internmatch-engine/internal/service"
	"internmatch-engine/internal/store"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// writeServiceError maps engine and store errors onto API errors. Anything
// unexpected is logged and hidden behind a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteError(w, r, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, store.ErrAlreadyApplied):
		WriteError(w, r, http.StatusConflict, "already_applied", err.Error())
	case errors.Is(err, service.ErrInternshipClosed):
		WriteError(w, r, http.StatusConflict, "internship_closed", err.Error())
	case errors.Is(err, service.ErrUnknownVersion):
		WriteError(w, r, http.StatusBadRequest, "unknown_version", err.Error())
	case errors.Is(err, matching.ErrInvalidInput):
		WriteError(w, r, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		WriteError(w, r, http.StatusServiceUnavailable, "canceled", "request canceled")
	default:
		log.Error("request failed",
			"request_id", RequestIDFrom(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		WriteError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
