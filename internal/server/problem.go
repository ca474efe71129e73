package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/thenoetrevino/boardsync/internal/logging"
	"github.com/thenoetrevino/boardsync/internal/models"
)

// ProblemResponse is an RFC 9457 Problem Details body.
type ProblemResponse struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// writeProblem writes err as application/problem+json with the status its
// sentinel maps to.
func writeProblem(w http.ResponseWriter, r *http.Request, err error) {
	status := errorToStatus(err)
	resp := ProblemResponse{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   err.Error(),
		Instance: r.RequestURI,
	}

	if status >= http.StatusInternalServerError {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "request failed", "error", err)
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "failed to encode error response", "error", encErr)
	}
}

// errorToStatus maps store sentinel errors to HTTP status codes.
func errorToStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
