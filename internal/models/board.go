package models

import (
	"fmt"
	"slices"
)

// Board is a point-in-time copy of every column and card.
// Slices keep fetch order so that sorting by Order can fall back to it on ties.
type Board struct {
	Columns []Column `json:"columns" yaml:"columns"`
	Cards   []Card   `json:"cards" yaml:"cards"`
}

// Clone returns a deep copy of the board
func (b Board) Clone() Board {
	return Board{
		Columns: slices.Clone(b.Columns),
		Cards:   slices.Clone(b.Cards),
	}
}

// Column looks up a column by id
func (b Board) Column(id string) (Column, bool) {
	for _, col := range b.Columns {
		if col.ID == id {
			return col, true
		}
	}
	return Column{}, false
}

// Card looks up a card by id
func (b Board) Card(id string) (Card, bool) {
	for _, card := range b.Cards {
		if card.ID == id {
			return card, true
		}
	}
	return Card{}, false
}

// SortedColumns returns the columns sorted by Order, ties broken by fetch order
func (b Board) SortedColumns() []Column {
	cols := slices.Clone(b.Columns)
	slices.SortStableFunc(cols, func(a, c Column) int {
		return a.Order - c.Order
	})
	return cols
}

// CardsIn returns the cards of one column sorted by Order, ties broken by fetch order
func (b Board) CardsIn(columnID string) []Card {
	var cards []Card
	for _, card := range b.Cards {
		if card.ColumnID == columnID {
			cards = append(cards, card)
		}
	}
	slices.SortStableFunc(cards, func(a, c Card) int {
		return a.Order - c.Order
	})
	return cards
}

// Validate checks the ordering invariants: dense column ranks, dense card
// ranks per column, and no card pointing at a missing column.
func (b Board) Validate() error {
	columnIDs := make(map[string]bool, len(b.Columns))
	seen := make([]bool, len(b.Columns))
	for _, col := range b.Columns {
		if columnIDs[col.ID] {
			return fmt.Errorf("duplicate column id %q", col.ID)
		}
		columnIDs[col.ID] = true
		if col.Order < 0 || col.Order >= len(b.Columns) || seen[col.Order] {
			return fmt.Errorf("column %q has order %d outside dense range 0..%d", col.ID, col.Order, len(b.Columns)-1)
		}
		seen[col.Order] = true
	}

	perColumn := make(map[string][]int)
	cardIDs := make(map[string]bool, len(b.Cards))
	for _, card := range b.Cards {
		if cardIDs[card.ID] {
			return fmt.Errorf("duplicate card id %q", card.ID)
		}
		cardIDs[card.ID] = true
		if !columnIDs[card.ColumnID] {
			return fmt.Errorf("card %q references missing column %q", card.ID, card.ColumnID)
		}
		perColumn[card.ColumnID] = append(perColumn[card.ColumnID], card.Order)
	}

	for columnID, orders := range perColumn {
		slices.Sort(orders)
		for i, order := range orders {
			if order != i {
				return fmt.Errorf("column %q card orders %v are not dense 0..%d", columnID, orders, len(orders)-1)
			}
		}
	}
	return nil
}
