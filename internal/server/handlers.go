package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thenoetrevino/boardsync/internal/logging"
	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/remote"
)

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

// Handler serves the board routes over a durable store.
type Handler struct {
	store remote.FullStore
}

// NewHandler creates a Handler over store
func NewHandler(store remote.FullStore) *Handler {
	return &Handler{store: store}
}

// HealthResponse is the body of a successful health check
type HealthResponse struct {
	Status string `json:"status"`
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Health(r.Context()); err != nil {
		writeProblem(w, r, fmt.Errorf("%w: %w", models.ErrUnavailable, err))
		return
	}
	writeJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}

// ============================================================================
// COLUMNS
// ============================================================================

// ListColumns handles GET /api/columns.
func (h *Handler) ListColumns(w http.ResponseWriter, r *http.Request) {
	columns, err := h.store.ListColumns(r.Context())
	if err != nil {
		writeProblem(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, nonNil(columns))
}

// GetColumn handles GET /api/columns/{id}.
func (h *Handler) GetColumn(w http.ResponseWriter, r *http.Request) {
	col, err := h.store.GetColumn(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeProblem(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, col)
}

// CreateColumn handles POST /api/columns.
func (h *Handler) CreateColumn(w http.ResponseWriter, r *http.Request) {
	var req remote.CreateColumnRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	col, err := h.store.CreateColumn(r.Context(), req)
	if err != nil {
		writeProblem(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, col)
}

// UpdateColumn handles PATCH /api/columns/{id}.
func (h *Handler) UpdateColumn(w http.ResponseWriter, r *http.Request) {
	var patch remote.ColumnPatch
	if !decodeJSONBody(w, r, &patch) {
		return
	}

	col, err := h.store.UpdateColumn(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeProblem(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, col)
}

// DeleteColumn handles DELETE /api/columns/{id}.
func (h *Handler) DeleteColumn(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteColumn(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeProblem(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ============================================================================
// CARDS
// ============================================================================

// ListCards handles GET /api/cards, optionally filtered by ?column=.
func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	var (
		cards []models.Card
		err   error
	)
	if columnID := r.URL.Query().Get("column"); columnID != "" {
		cards, err = h.store.ListCardsByColumn(r.Context(), columnID)
	} else {
		cards, err = h.store.ListCards(r.Context())
	}
	if err != nil {
		writeProblem(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, nonNil(cards))
}

// GetCard handles GET /api/cards/{id}.
func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.store.GetCard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeProblem(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

// CreateCard handles POST /api/cards.
func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req remote.CreateCardRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	card, err := h.store.CreateCard(r.Context(), req)
	if err != nil {
		writeProblem(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, card)
}

// UpdateCard handles PATCH /api/cards/{id}.
func (h *Handler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	var patch remote.CardPatch
	if !decodeJSONBody(w, r, &patch) {
		return
	}

	card, err := h.store.UpdateCard(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeProblem(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

// DeleteCard handles DELETE /api/cards/{id}.
func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteCard(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeProblem(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ============================================================================
// HELPERS
// ============================================================================

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}

// decodeJSONBody decodes the body into dst, limited to maxJSONBodyBytes.
// On failure it writes a 400 problem and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, r, fmt.Errorf("invalid JSON body: %w", models.ErrValidation))
		return false
	}
	return true
}

// nonNil keeps empty lists encoding as [] rather than null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
