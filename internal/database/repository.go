package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/boardsync/internal/remote"
)

var _ remote.FullStore = (*Repository)(nil)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*ColumnRepo
	*CardRepo
	db *sql.DB
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		ColumnRepo: &ColumnRepo{db: db},
		CardRepo:   &CardRepo{db: db},
		db:         db,
	}
}

// Health pings the database
func (r *Repository) Health(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// DB exposes the connection for seeding and shutdown
func (r *Repository) DB() *sql.DB {
	return r.db
}
