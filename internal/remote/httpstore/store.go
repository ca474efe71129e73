package httpstore

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/thenoetrevino/boardsync/internal/config"
	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/remote"
)

var _ remote.FullStore = (*Store)(nil)

// Store is a remote.FullStore backed by the REST API served by boardd.
type Store struct {
	client *Client
	req    *requester
}

// New creates a Store from the remote section of the config.
func New(cfg config.RemoteConfig, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	client := NewClient(cfg, logger)
	return &Store{
		client: client,
		req:    &requester{client: client, logger: logger},
	}
}

// Client exposes the underlying client, e.g. to report breaker state
func (s *Store) Client() *Client {
	return s.client
}

func columnPath(id string) string {
	return "/api/columns/" + url.PathEscape(id)
}

func cardPath(id string) string {
	return "/api/cards/" + url.PathEscape(id)
}

// ============================================================================
// COLUMNS
// ============================================================================

// ListColumns returns every column ordered by rank
func (s *Store) ListColumns(ctx context.Context) ([]models.Column, error) {
	var columns []models.Column
	if err := s.req.do(ctx, http.MethodGet, "/api/columns", http.StatusOK, nil, &columns); err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	return columns, nil
}

// GetColumn returns a single column
func (s *Store) GetColumn(ctx context.Context, id string) (*models.Column, error) {
	var col models.Column
	if err := s.req.do(ctx, http.MethodGet, columnPath(id), http.StatusOK, nil, &col); err != nil {
		return nil, fmt.Errorf("failed to get column %s: %w", id, err)
	}
	return &col, nil
}

// CreateColumn creates a column and returns the stored record
func (s *Store) CreateColumn(ctx context.Context, req remote.CreateColumnRequest) (*models.Column, error) {
	var col models.Column
	if err := s.req.do(ctx, http.MethodPost, "/api/columns", http.StatusCreated, req, &col); err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}
	return &col, nil
}

// UpdateColumn applies a partial update
func (s *Store) UpdateColumn(ctx context.Context, id string, patch remote.ColumnPatch) (*models.Column, error) {
	var col models.Column
	if err := s.req.do(ctx, http.MethodPatch, columnPath(id), http.StatusOK, patch, &col); err != nil {
		return nil, fmt.Errorf("failed to update column %s: %w", id, err)
	}
	return &col, nil
}

// DeleteColumn deletes a column; the server cascades to its cards
func (s *Store) DeleteColumn(ctx context.Context, id string) error {
	if err := s.req.do(ctx, http.MethodDelete, columnPath(id), http.StatusNoContent, nil, nil); err != nil {
		return fmt.Errorf("failed to delete column %s: %w", id, err)
	}
	return nil
}

// ============================================================================
// CARDS
// ============================================================================

// ListCards returns every card on the board
func (s *Store) ListCards(ctx context.Context) ([]models.Card, error) {
	var cards []models.Card
	if err := s.req.do(ctx, http.MethodGet, "/api/cards", http.StatusOK, nil, &cards); err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// ListCardsByColumn returns the cards of one column ordered by rank
func (s *Store) ListCardsByColumn(ctx context.Context, columnID string) ([]models.Card, error) {
	path := "/api/cards?" + url.Values{"column": {columnID}}.Encode()

	var cards []models.Card
	if err := s.req.do(ctx, http.MethodGet, path, http.StatusOK, nil, &cards); err != nil {
		return nil, fmt.Errorf("failed to list cards of column %s: %w", columnID, err)
	}
	return cards, nil
}

// GetCard returns a single card
func (s *Store) GetCard(ctx context.Context, id string) (*models.Card, error) {
	var card models.Card
	if err := s.req.do(ctx, http.MethodGet, cardPath(id), http.StatusOK, nil, &card); err != nil {
		return nil, fmt.Errorf("failed to get card %s: %w", id, err)
	}
	return &card, nil
}

// CreateCard creates a card and returns the stored record
func (s *Store) CreateCard(ctx context.Context, req remote.CreateCardRequest) (*models.Card, error) {
	var card models.Card
	if err := s.req.do(ctx, http.MethodPost, "/api/cards", http.StatusCreated, req, &card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	return &card, nil
}

// UpdateCard applies a partial update, including moves between columns
func (s *Store) UpdateCard(ctx context.Context, id string, patch remote.CardPatch) (*models.Card, error) {
	var card models.Card
	if err := s.req.do(ctx, http.MethodPatch, cardPath(id), http.StatusOK, patch, &card); err != nil {
		return nil, fmt.Errorf("failed to update card %s: %w", id, err)
	}
	return &card, nil
}

// DeleteCard deletes a card
func (s *Store) DeleteCard(ctx context.Context, id string) error {
	if err := s.req.do(ctx, http.MethodDelete, cardPath(id), http.StatusNoContent, nil, nil); err != nil {
		return fmt.Errorf("failed to delete card %s: %w", id, err)
	}
	return nil
}

// ============================================================================
// HEALTH
// ============================================================================

// Health probes the server, which in turn pings its database
func (s *Store) Health(ctx context.Context) error {
	if err := s.req.do(ctx, http.MethodGet, "/api/health", http.StatusOK, nil, nil); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}
