package coordinator

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/remote"
	"github.com/thenoetrevino/boardsync/internal/reorder"
)

// ============================================================================
// CREATE
// ============================================================================

// CreateColumn appends a column. The store assigns the id, so nothing is
// shown locally until it answers.
func (c *Coordinator) CreateColumn(ctx context.Context, title string) (models.Column, error) {
	title, err := models.NormalizeTitle(title)
	if err != nil {
		return models.Column{}, err
	}

	unlock, err := c.locks.Lock(ctx, models.ColumnScope)
	if err != nil {
		return models.Column{}, err
	}
	defer unlock()

	col, err := c.remote.CreateColumn(ctx, remote.CreateColumnRequest{
		Title: title,
		Order: c.board.CountColumns(),
	})
	if err != nil {
		c.logger.Error("failed to create column", "operation", "create_column", "error", err)
		return models.Column{}, fmt.Errorf("failed to create column: %w", err)
	}

	c.mu.Lock()
	c.board.AddColumn(*col)
	changes := c.board.ApplyReassignment(reorder.AfterColumnInsert(c.board.Snapshot(), col.ID))
	c.mu.Unlock()

	created, _ := c.board.Column(col.ID)
	if failed := c.persist(ctx, "create_column", changes); failed > 0 {
		return created, c.reconcile(ctx, fmt.Errorf("failed to re-sequence %d column(s) after create: %w", failed, models.ErrUnavailable))
	}
	return created, nil
}

// CreateCard appends a card to the end of columnID once the store confirms it
func (c *Coordinator) CreateCard(ctx context.Context, columnID, title string) (models.Card, error) {
	title, err := models.NormalizeTitle(title)
	if err != nil {
		return models.Card{}, err
	}
	if _, ok := c.board.Column(columnID); !ok {
		return models.Card{}, fmt.Errorf("column %s: %w", columnID, models.ErrNotFound)
	}

	unlock, err := c.locks.Lock(ctx, models.CardScope(columnID))
	if err != nil {
		return models.Card{}, err
	}
	defer unlock()

	card, err := c.remote.CreateCard(ctx, remote.CreateCardRequest{
		Title:    title,
		ColumnID: columnID,
		Order:    c.board.CountCards(columnID),
	})
	if err != nil {
		c.logger.Error("failed to create card", "operation", "create_card", "column_id", columnID, "error", err)
		return models.Card{}, fmt.Errorf("failed to create card: %w", err)
	}

	// A drop staged into this column while the create was in flight may
	// already hold the echoed order.
	c.mu.Lock()
	c.board.AddCard(*card)
	changes := c.board.ApplyReassignment(reorder.AfterCardInsert(c.board.Snapshot(), card.ID))
	c.mu.Unlock()

	created, _ := c.board.Card(card.ID)
	if failed := c.persist(ctx, "create_card", changes); failed > 0 {
		return created, c.reconcile(ctx, fmt.Errorf("failed to re-sequence %d card(s) after create: %w", failed, models.ErrUnavailable))
	}
	return created, nil
}

// ============================================================================
// RENAME
// ============================================================================

// RenameColumn shows the new title immediately and reverts it if the store
// rejects the write.
func (c *Coordinator) RenameColumn(ctx context.Context, id, title string) error {
	title, err := models.NormalizeTitle(title)
	if err != nil {
		return err
	}

	c.mu.Lock()
	prev, ok := c.board.SetColumnTitle(id, title)
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("column %s: %w", id, models.ErrNotFound)
	}
	if prev == title {
		return nil
	}

	if _, err := c.remote.UpdateColumn(ctx, id, remote.ColumnPatch{Title: remote.Title(title)}); err != nil {
		c.mu.Lock()
		if c.board.RevertColumnTitle(id, title, prev) {
			c.metrics.Reverts.Add(1)
		}
		c.mu.Unlock()
		c.logger.Error("failed to rename column", "operation", "rename_column", "column_id", id, "error", err)
		return fmt.Errorf("failed to rename column: %w", err)
	}
	return nil
}

// RenameCard is the card counterpart of RenameColumn
func (c *Coordinator) RenameCard(ctx context.Context, id, title string) error {
	title, err := models.NormalizeTitle(title)
	if err != nil {
		return err
	}

	c.mu.Lock()
	prev, ok := c.board.SetCardTitle(id, title)
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("card %s: %w", id, models.ErrNotFound)
	}
	if prev == title {
		return nil
	}

	if _, err := c.remote.UpdateCard(ctx, id, remote.CardPatch{Title: remote.Title(title)}); err != nil {
		c.mu.Lock()
		if c.board.RevertCardTitle(id, title, prev) {
			c.metrics.Reverts.Add(1)
		}
		c.mu.Unlock()
		c.logger.Error("failed to rename card", "operation", "rename_card", "card_id", id, "error", err)
		return fmt.Errorf("failed to rename card: %w", err)
	}
	return nil
}

// ============================================================================
// DELETE
// ============================================================================

// DeleteCard removes the card and closes the gap it leaves. If the store
// refuses the delete, the card and its siblings' ranks are put back.
// A card the store no longer has counts as deleted.
func (c *Coordinator) DeleteCard(ctx context.Context, id string) error {
	c.mu.Lock()
	before := c.board.Snapshot()
	card, ok := before.Card(id)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("card %s: %w", id, models.ErrNotFound)
	}
	resequence := reorder.AfterCardRemoval(before, id)
	c.board.RemoveCard(id)
	changes := c.board.ApplyReassignment(resequence)
	c.mu.Unlock()

	unlock, err := c.locks.Lock(ctx, models.CardScope(card.ColumnID))
	if err != nil {
		return err
	}
	defer unlock()

	if err := c.remote.DeleteCard(ctx, id); err != nil && !errors.Is(err, models.ErrNotFound) {
		c.mu.Lock()
		c.board.RestoreCard(card)
		c.board.ApplyReassignment(priorPlacements(before, changes))
		c.mu.Unlock()
		c.metrics.Reverts.Add(1)
		c.logger.Error("failed to delete card", "operation", "delete_card", "card_id", id, "error", err)
		return fmt.Errorf("failed to delete card: %w", err)
	}

	if failed := c.persist(ctx, "delete_card", changes); failed > 0 {
		return c.reconcile(ctx, fmt.Errorf("failed to re-sequence %d card(s) after delete: %w", failed, models.ErrUnavailable))
	}
	return nil
}

// DeleteColumn removes a column together with its cards. The cards are
// deleted first, then the column, then the surviving columns are
// re-sequenced. The steps are not atomic; any failure ends with a Reload.
func (c *Coordinator) DeleteColumn(ctx context.Context, id string) error {
	c.mu.Lock()
	before := c.board.Snapshot()
	if _, ok := before.Column(id); !ok {
		c.mu.Unlock()
		return fmt.Errorf("column %s: %w", id, models.ErrNotFound)
	}
	resequence := reorder.AfterColumnRemoval(before, id)
	_, cards, _ := c.board.RemoveColumn(id)
	changes := c.board.ApplyReassignment(resequence)
	c.mu.Unlock()

	unlock, err := c.locks.Lock(ctx, models.ColumnScope, models.CardScope(id))
	if err != nil {
		return err
	}
	defer unlock()

	if err := c.deleteCards(ctx, cards); err != nil {
		c.logger.Error("failed to delete column cards", "operation", "delete_column", "column_id", id, "error", err)
		cause := fmt.Errorf("failed to delete cards of column %s: %w", id, err)
		if err := c.Reload(ctx); err != nil {
			return errors.Join(cause, err)
		}
		// The surviving cards keep the gaps the deleted ones left
		c.mu.Lock()
		changes := c.board.ApplyReassignment(reorder.Compact(c.board.Snapshot(), id))
		c.mu.Unlock()
		if failed := c.persist(ctx, "delete_column", changes); failed > 0 {
			return c.reconcile(ctx, cause)
		}
		return cause
	}

	if err := c.remote.DeleteColumn(ctx, id); err != nil && !errors.Is(err, models.ErrNotFound) {
		c.logger.Error("failed to delete column", "operation", "delete_column", "column_id", id, "error", err)
		return c.reconcile(ctx, fmt.Errorf("failed to delete column: %w", err))
	}

	if failed := c.persist(ctx, "delete_column", changes); failed > 0 {
		return c.reconcile(ctx, fmt.Errorf("failed to re-sequence %d column(s) after delete: %w", failed, models.ErrUnavailable))
	}
	return nil
}

func (c *Coordinator) deleteCards(ctx context.Context, cards []models.Card) error {
	var g errgroup.Group
	g.SetLimit(c.maxWrites)
	for _, card := range cards {
		g.Go(func() error {
			if err := c.remote.DeleteCard(ctx, card.ID); err != nil && !errors.Is(err, models.ErrNotFound) {
				return fmt.Errorf("card %s: %w", card.ID, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// priorPlacements builds the reassignment that restores the ranks changes
// overwrote, using the board as it was before.
func priorPlacements(before models.Board, changes []models.Change) models.Reassignment {
	var r models.Reassignment
	for _, ch := range changes {
		switch ch.Ref.Kind {
		case models.KindColumn:
			if col, ok := before.Column(ch.Ref.ID); ok {
				r.Columns = append(r.Columns, models.ColumnPlacement{ID: col.ID, Order: col.Order})
			}
		case models.KindCard:
			if card, ok := before.Card(ch.Ref.ID); ok {
				r.Cards = append(r.Cards, models.CardPlacement{
					ID:           card.ID,
					ColumnID:     card.ColumnID,
					Order:        card.Order,
					FromColumnID: ch.ColumnID,
				})
			}
		}
	}
	return r
}
