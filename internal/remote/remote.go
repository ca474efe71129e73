// Package remote defines the boundary to the durable store. The sqlite
// repository and the HTTP client both implement it.
package remote

import (
	"context"

	"github.com/thenoetrevino/boardsync/internal/models"
)

// CreateColumnRequest holds the fields for a new column
type CreateColumnRequest struct {
	Title string `json:"title"`
	Order int    `json:"order"`
}

// ColumnPatch is a partial column update; nil fields are left unchanged
type ColumnPatch struct {
	Title *string `json:"title,omitempty"`
	Order *int    `json:"order,omitempty"`
}

// CreateCardRequest holds the fields for a new card
type CreateCardRequest struct {
	Title    string `json:"title"`
	ColumnID string `json:"column_id"`
	Order    int    `json:"order"`
}

// CardPatch is a partial card update; nil fields are left unchanged
type CardPatch struct {
	Title    *string `json:"title,omitempty"`
	ColumnID *string `json:"column_id,omitempty"`
	Order    *int    `json:"order,omitempty"`
}

// ColumnReader defines read operations for columns.
type ColumnReader interface {
	ListColumns(ctx context.Context) ([]models.Column, error)
}

// ColumnWriter defines write operations for columns.
type ColumnWriter interface {
	CreateColumn(ctx context.Context, req CreateColumnRequest) (*models.Column, error)
	UpdateColumn(ctx context.Context, id string, patch ColumnPatch) (*models.Column, error)
	DeleteColumn(ctx context.Context, id string) error
}

// CardReader defines read operations for cards.
type CardReader interface {
	ListCards(ctx context.Context) ([]models.Card, error)
}

// CardWriter defines write operations for cards.
type CardWriter interface {
	CreateCard(ctx context.Context, req CreateCardRequest) (*models.Card, error)
	UpdateCard(ctx context.Context, id string, patch CardPatch) (*models.Card, error)
	DeleteCard(ctx context.Context, id string) error
}

// Store is everything the sync coordinator needs from the durable store.
// Every call is independently fallible; implementations map failures onto
// models.ErrNotFound, models.ErrValidation and models.ErrUnavailable.
type Store interface {
	ColumnReader
	ColumnWriter
	CardReader
	CardWriter
}

// Getter offers single-entity and per-column lookups
type Getter interface {
	GetColumn(ctx context.Context, id string) (*models.Column, error)
	GetCard(ctx context.Context, id string) (*models.Card, error)
	ListCardsByColumn(ctx context.Context, columnID string) ([]models.Card, error)
}

// HealthChecker is implemented by stores that can be probed before a fetch
type HealthChecker interface {
	Health(ctx context.Context) error
}

// FullStore is a Store that also supports lookups and health checks
type FullStore interface {
	Store
	Getter
	HealthChecker
}

// Title returns a pointer for use in patches
func Title(s string) *string {
	return &s
}

// Order returns a pointer for use in patches
func Order(n int) *int {
	return &n
}

// ColumnID returns a pointer for use in patches
func ColumnID(id string) *string {
	return &id
}
