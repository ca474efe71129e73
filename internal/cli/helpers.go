package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/boardsync/internal/coordinator"
	"github.com/thenoetrevino/boardsync/internal/models"
)

// Confirm asks a yes/no question on the command's streams. Anything but
// y or yes is a no.
func Confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s (y/N): ", prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	response := strings.ToLower(strings.TrimSpace(line))
	return response == "y" || response == "yes"
}

// RequireColumn resolves a column id against the loaded board
func RequireColumn(b models.Board, id string) (models.Column, error) {
	col, ok := b.Column(id)
	if !ok {
		return models.Column{}, fmt.Errorf("column %s: %w", id, models.ErrNotFound)
	}
	return col, nil
}

// RequireCard resolves a card id against the loaded board
func RequireCard(b models.Board, id string) (models.Card, error) {
	card, ok := b.Card(id)
	if !ok {
		return models.Card{}, fmt.Errorf("card %s: %w", id, models.ErrNotFound)
	}
	return card, nil
}

// Drop runs a move through the coordinator, exactly as a finished drag in
// the board view would. Failed position writes are reported as an error
// after the board has been reconciled.
func (c *CLI) Drop(dragged, target models.Ref) (coordinator.Result, error) {
	result, err := c.App.Coordinator.Drop(c.ctx, dragged, &target)
	if err != nil {
		return result, err
	}
	if result.WritesFailed > 0 {
		return result, fmt.Errorf("%d write(s) failed; board reloaded from the store: %w",
			result.WritesFailed, models.ErrUnavailable)
	}
	return result, nil
}

// MoveResult is the JSON shape of a finished move
type MoveResult struct {
	ID         string `json:"id"`
	ColumnID   string `json:"column_id,omitempty"`
	Order      int    `json:"order"`
	NoOp       bool   `json:"no_op"`
	Changed    int    `json:"changed"`
	Reconciled bool   `json:"reconciled"`
}

// GetID returns the moved entity's id
func (m MoveResult) GetID() string {
	return m.ID
}
