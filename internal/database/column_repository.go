package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/remote"
)

// ColumnRepo handles all column-related database operations.
type ColumnRepo struct {
	db *sql.DB
}

// ListColumns returns every column ordered by position, insertion order on ties
func (r *ColumnRepo) ListColumns(ctx context.Context) ([]models.Column, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, position FROM columns ORDER BY position, rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying columns: %w", err)
	}
	defer rows.Close()

	columns := []models.Column{}
	for rows.Next() {
		var col models.Column
		if err := rows.Scan(&col.ID, &col.Title, &col.Order); err != nil {
			return nil, fmt.Errorf("scanning column row: %w", err)
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating column rows: %w", err)
	}
	return columns, nil
}

// GetColumn retrieves a column by its ID
func (r *ColumnRepo) GetColumn(ctx context.Context, id string) (*models.Column, error) {
	return getColumn(ctx, r.db, id)
}

// CreateColumn inserts a new column with a store-assigned id
func (r *ColumnRepo) CreateColumn(ctx context.Context, req remote.CreateColumnRequest) (*models.Column, error) {
	title, err := models.NormalizeTitle(req.Title)
	if err != nil {
		return nil, err
	}
	if err := checkOrder(req.Order); err != nil {
		return nil, err
	}

	col := &models.Column{ID: uuid.NewString(), Title: title, Order: req.Order}
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO columns (id, title, position) VALUES (?, ?, ?)`,
		col.ID, col.Title, col.Order,
	); err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}
	return col, nil
}

// UpdateColumn applies a partial update and returns the stored column
func (r *ColumnRepo) UpdateColumn(ctx context.Context, id string, patch remote.ColumnPatch) (*models.Column, error) {
	var set setClause
	if patch.Title != nil {
		title, err := models.NormalizeTitle(*patch.Title)
		if err != nil {
			return nil, err
		}
		set.add("title", title)
	}
	if patch.Order != nil {
		if err := checkOrder(*patch.Order); err != nil {
			return nil, err
		}
		set.add("position", *patch.Order)
	}

	var updated *models.Column
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE columns SET `+set.String()+` WHERE id = ?`,
			append(set.args, id)...,
		)
		if err != nil {
			return fmt.Errorf("failed to update column %s: %w", id, err)
		}
		if n, err := result.RowsAffected(); err == nil && n == 0 {
			return notFound("column", id)
		}
		updated, err = getColumn(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteColumn removes a column; its cards go with it via ON DELETE CASCADE
func (r *ColumnRepo) DeleteColumn(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM columns WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete column %s: %w", id, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return notFound("column", id)
	}
	return nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getColumn(ctx context.Context, q queryer, id string) (*models.Column, error) {
	col := &models.Column{}
	err := q.QueryRowContext(ctx,
		`SELECT id, title, position FROM columns WHERE id = ?`, id,
	).Scan(&col.ID, &col.Title, &col.Order)
	if err != nil {
		return nil, mapNoRows(err, "column", id)
	}
	return col, nil
}
