package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/boardsync/internal/models"
)

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// notFound wraps models.ErrNotFound with the entity kind and id
func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, models.ErrNotFound)
}

// mapNoRows converts sql.ErrNoRows into models.ErrNotFound
func mapNoRows(err error, kind, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(kind, id)
	}
	return err
}

// checkOrder rejects negative ranks
func checkOrder(order int) error {
	if order < 0 {
		return fmt.Errorf("order must be non-negative, got %d: %w", order, models.ErrValidation)
	}
	return nil
}

// setClause builds "a = ?, b = ?" for partial updates, always touching updated_at
type setClause struct {
	parts []string
	args  []any
}

func (s *setClause) add(column string, value any) {
	s.parts = append(s.parts, column+" = ?")
	s.args = append(s.args, value)
}

func (s *setClause) String() string {
	return strings.Join(append(s.parts, "updated_at = CURRENT_TIMESTAMP"), ", ")
}
