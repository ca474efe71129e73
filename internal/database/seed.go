package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// DefaultColumns are created when the board is empty
var DefaultColumns = []string{"To Do", "In Progress", "Done"}

// sampleCards maps a default column index to example card titles
var sampleCards = map[int][]string{
	0: {"Sample task 1", "Sample task 2"},
	1: {"Task in progress"},
	2: {"Finished task"},
}

// SeedDefaultColumns inserts the default columns if the columns table is empty.
// It reports whether anything was inserted.
func SeedDefaultColumns(ctx context.Context, db *sql.DB) (bool, error) {
	seeded := false
	err := withTx(ctx, db, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM columns").Scan(&count); err != nil {
			return fmt.Errorf("failed to count columns: %w", err)
		}
		if count > 0 {
			return nil
		}

		for position, title := range DefaultColumns {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO columns (id, title, position) VALUES (?, ?, ?)",
				uuid.NewString(), title, position,
			); err != nil {
				return fmt.Errorf("failed to seed column %q: %w", title, err)
			}
		}
		seeded = true
		return nil
	})
	if seeded {
		slog.Info("seeded default columns", "count", len(DefaultColumns))
	}
	return seeded, err
}

// SeedSampleCards adds example cards to the first columns of an otherwise
// empty board. Columns that already hold cards are skipped.
func SeedSampleCards(ctx context.Context, db *sql.DB) (int, error) {
	added := 0
	err := withTx(ctx, db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, "SELECT id FROM columns ORDER BY position, rowid")
		if err != nil {
			return fmt.Errorf("failed to list columns: %w", err)
		}
		var columnIDs []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan column: %w", err)
			}
			columnIDs = append(columnIDs, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for i, columnID := range columnIDs {
			var existing int
			if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM cards WHERE column_id = ?", columnID).Scan(&existing); err != nil {
				return fmt.Errorf("failed to count cards: %w", err)
			}
			if existing > 0 {
				continue
			}
			for position, title := range sampleCards[i] {
				if _, err := tx.ExecContext(ctx,
					"INSERT INTO cards (id, title, column_id, position) VALUES (?, ?, ?, ?)",
					uuid.NewString(), title, columnID, position,
				); err != nil {
					return fmt.Errorf("failed to seed card %q: %w", title, err)
				}
				added++
			}
		}
		return nil
	})
	return added, err
}
