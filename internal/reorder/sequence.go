package reorder

import (
	"slices"

	"github.com/thenoetrevino/boardsync/internal/models"
)

// move removes the item at from and re-inserts it at to. The input is not modified.
func move[T any](items []T, from, to int) []T {
	out := slices.Clone(items)
	item := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, item)
}

func indexOf[T any](items []T, match func(T) bool) int {
	return slices.IndexFunc(items, match)
}

// resequenceColumns assigns dense ranks 0..N-1 in slice order
func resequenceColumns(cols []models.Column) []models.ColumnPlacement {
	placements := make([]models.ColumnPlacement, len(cols))
	for i, col := range cols {
		placements[i] = models.ColumnPlacement{ID: col.ID, Order: i}
	}
	return placements
}

// resequenceCards assigns dense ranks 0..M-1 in slice order and places every
// card in columnID. FromColumnID keeps the column each card had before.
func resequenceCards(cards []models.Card, columnID string) []models.CardPlacement {
	placements := make([]models.CardPlacement, len(cards))
	for i, card := range cards {
		placements[i] = models.CardPlacement{
			ID:           card.ID,
			ColumnID:     columnID,
			Order:        i,
			FromColumnID: card.ColumnID,
		}
	}
	return placements
}

// Apply returns a copy of b with the reassignment applied
func Apply(b models.Board, r models.Reassignment) models.Board {
	out := b.Clone()
	for _, p := range r.Columns {
		for i := range out.Columns {
			if out.Columns[i].ID == p.ID {
				out.Columns[i].Order = p.Order
			}
		}
	}
	for _, p := range r.Cards {
		for i := range out.Cards {
			if out.Cards[i].ID == p.ID {
				out.Cards[i].Order = p.Order
				out.Cards[i].ColumnID = p.ColumnID
			}
		}
	}
	return out
}
