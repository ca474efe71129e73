package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/remote"
)

// CardRepo handles all card-related database operations.
type CardRepo struct {
	db *sql.DB
}

const cardColumns = `id, title, column_id, position`

// ListCards returns every card on the board
func (r *CardRepo) ListCards(ctx context.Context) ([]models.Card, error) {
	return queryCards(ctx, r.db,
		`SELECT `+cardColumns+` FROM cards ORDER BY position, rowid`)
}

// ListCardsByColumn returns the cards of one column ordered by position
func (r *CardRepo) ListCardsByColumn(ctx context.Context, columnID string) ([]models.Card, error) {
	return queryCards(ctx, r.db,
		`SELECT `+cardColumns+` FROM cards WHERE column_id = ? ORDER BY position, rowid`, columnID)
}

// GetCard retrieves a card by its ID
func (r *CardRepo) GetCard(ctx context.Context, id string) (*models.Card, error) {
	return getCard(ctx, r.db, id)
}

// CreateCard inserts a card into an existing column
func (r *CardRepo) CreateCard(ctx context.Context, req remote.CreateCardRequest) (*models.Card, error) {
	title, err := models.NormalizeTitle(req.Title)
	if err != nil {
		return nil, err
	}
	if err := checkOrder(req.Order); err != nil {
		return nil, err
	}

	card := &models.Card{ID: uuid.NewString(), Title: title, ColumnID: req.ColumnID, Order: req.Order}
	err = withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := getColumn(ctx, tx, req.ColumnID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cards (id, title, column_id, position) VALUES (?, ?, ?, ?)`,
			card.ID, card.Title, card.ColumnID, card.Order,
		); err != nil {
			return fmt.Errorf("failed to create card: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// UpdateCard applies a partial update (title, column, order) and returns the stored card
func (r *CardRepo) UpdateCard(ctx context.Context, id string, patch remote.CardPatch) (*models.Card, error) {
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
	if patch.ColumnID != nil {
		set.add("column_id", *patch.ColumnID)
	}

	var updated *models.Card
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if patch.ColumnID != nil {
			if _, err := getColumn(ctx, tx, *patch.ColumnID); err != nil {
				return err
			}
		}
		result, err := tx.ExecContext(ctx,
			`UPDATE cards SET `+set.String()+` WHERE id = ?`,
			append(set.args, id)...,
		)
		if err != nil {
			return fmt.Errorf("failed to update card %s: %w", id, err)
		}
		if n, err := result.RowsAffected(); err == nil && n == 0 {
			return notFound("card", id)
		}
		updated, err = getCard(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteCard removes a card
func (r *CardRepo) DeleteCard(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete card %s: %w", id, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return notFound("card", id)
	}
	return nil
}

func getCard(ctx context.Context, q queryer, id string) (*models.Card, error) {
	card := &models.Card{}
	err := q.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE id = ?`, id,
	).Scan(&card.ID, &card.Title, &card.ColumnID, &card.Order)
	if err != nil {
		return nil, mapNoRows(err, "card", id)
	}
	return card, nil
}

func queryCards(ctx context.Context, db *sql.DB, query string, args ...any) ([]models.Card, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying cards: %w", err)
	}
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		var card models.Card
		if err := rows.Scan(&card.ID, &card.Title, &card.ColumnID, &card.Order); err != nil {
			return nil, fmt.Errorf("scanning card row: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating card rows: %w", err)
	}
	return cards, nil
}
