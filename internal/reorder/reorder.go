// Package reorder turns a finished drag into the new dense ordering of every
// collection it touches. Everything here is pure: the board is read, never
// mutated.
package reorder

import (
	"slices"

	"github.com/thenoetrevino/boardsync/internal/models"
)

// Compute returns the reassignment produced by dropping dragged onto hover.
// A nil hover, a hover equal to the dragged entity, or ids missing from the
// board all produce an empty reassignment.
func Compute(dragged models.Ref, hover *models.Ref, b models.Board) models.Reassignment {
	if hover == nil || *hover == dragged {
		return models.Reassignment{}
	}

	switch dragged.Kind {
	case models.KindColumn:
		return computeColumnMove(dragged.ID, *hover, b)
	case models.KindCard:
		return computeCardMove(dragged.ID, *hover, b)
	default:
		return models.Reassignment{}
	}
}

// Preview returns the column a dragged card should be shown in while it
// hovers over target. Only the column changes; ranks are left alone until drop.
// ok is false when the card would stay where it is.
func Preview(dragged models.Ref, hover *models.Ref, b models.Board) (columnID string, ok bool) {
	if dragged.Kind != models.KindCard || hover == nil {
		return "", false
	}
	card, found := b.Card(dragged.ID)
	if !found {
		return "", false
	}
	target, found := hoverColumn(*hover, b)
	if !found || target == card.ColumnID {
		return "", false
	}
	return target, true
}

// AfterCardRemoval re-sequences the siblings of a card that is being deleted
func AfterCardRemoval(b models.Board, cardID string) models.Reassignment {
	card, ok := b.Card(cardID)
	if !ok {
		return models.Reassignment{}
	}
	siblings := slices.DeleteFunc(b.CardsIn(card.ColumnID), func(c models.Card) bool {
		return c.ID == cardID
	})
	return models.Reassignment{Cards: resequenceCards(siblings, card.ColumnID)}
}

// AfterColumnRemoval re-sequences the columns that survive a column delete
func AfterColumnRemoval(b models.Board, columnID string) models.Reassignment {
	if _, ok := b.Column(columnID); !ok {
		return models.Reassignment{}
	}
	survivors := slices.DeleteFunc(b.SortedColumns(), func(c models.Column) bool {
		return c.ID == columnID
	})
	return models.Reassignment{Columns: resequenceColumns(survivors)}
}

// AfterCardInsert puts a newly created card at the end of its column and
// re-sequences the column around it. Orders assigned while the create was in
// flight may collide with the one the store echoed.
func AfterCardInsert(b models.Board, cardID string) models.Reassignment {
	card, ok := b.Card(cardID)
	if !ok {
		return models.Reassignment{}
	}
	siblings := slices.DeleteFunc(b.CardsIn(card.ColumnID), func(c models.Card) bool {
		return c.ID == cardID
	})
	return models.Reassignment{Cards: resequenceCards(append(siblings, card), card.ColumnID)}
}

// AfterColumnInsert is the column counterpart of AfterCardInsert
func AfterColumnInsert(b models.Board, columnID string) models.Reassignment {
	col, ok := b.Column(columnID)
	if !ok {
		return models.Reassignment{}
	}
	others := slices.DeleteFunc(b.SortedColumns(), func(c models.Column) bool {
		return c.ID == columnID
	})
	return models.Reassignment{Columns: resequenceColumns(append(others, col))}
}

// Compact closes any gaps in a column's card orders, keeping their relative
// order.
func Compact(b models.Board, columnID string) models.Reassignment {
	if _, ok := b.Column(columnID); !ok {
		return models.Reassignment{}
	}
	return models.Reassignment{Cards: resequenceCards(b.CardsIn(columnID), columnID)}
}

func computeColumnMove(columnID string, hover models.Ref, b models.Board) models.Reassignment {
	target, ok := hoverColumn(hover, b)
	if !ok {
		return models.Reassignment{}
	}

	cols := b.SortedColumns()
	from := indexOf(cols, func(c models.Column) bool { return c.ID == columnID })
	to := indexOf(cols, func(c models.Column) bool { return c.ID == target })
	if from < 0 || to < 0 || from == to {
		return models.Reassignment{}
	}

	return models.Reassignment{Columns: resequenceColumns(move(cols, from, to))}
}

func computeCardMove(cardID string, hover models.Ref, b models.Board) models.Reassignment {
	card, ok := b.Card(cardID)
	if !ok {
		return models.Reassignment{}
	}

	switch hover.Kind {
	case models.KindCard:
		target, ok := b.Card(hover.ID)
		if !ok {
			return models.Reassignment{}
		}
		dest := b.CardsIn(target.ColumnID)
		at := indexOf(dest, func(c models.Card) bool { return c.ID == target.ID })
		if target.ColumnID == card.ColumnID {
			return reorderWithinColumn(card, at, dest)
		}
		return moveAcrossColumns(card, target.ColumnID, at, b)

	case models.KindColumn:
		if _, ok := b.Column(hover.ID); !ok || hover.ID == card.ColumnID {
			return models.Reassignment{}
		}
		return moveAcrossColumns(card, hover.ID, len(b.CardsIn(hover.ID)), b)

	default:
		return models.Reassignment{}
	}
}

func reorderWithinColumn(card models.Card, to int, siblings []models.Card) models.Reassignment {
	from := indexOf(siblings, func(c models.Card) bool { return c.ID == card.ID })
	if from < 0 || to < 0 || from == to {
		return models.Reassignment{}
	}
	return models.Reassignment{Cards: resequenceCards(move(siblings, from, to), card.ColumnID)}
}

// moveAcrossColumns inserts card at index at of the destination column and
// closes the gap it leaves in its source column.
func moveAcrossColumns(card models.Card, destID string, at int, b models.Board) models.Reassignment {
	source := slices.DeleteFunc(b.CardsIn(card.ColumnID), func(c models.Card) bool {
		return c.ID == card.ID
	})
	dest := b.CardsIn(destID)
	at = min(max(at, 0), len(dest))
	dest = slices.Insert(dest, at, card)

	placements := resequenceCards(source, card.ColumnID)
	placements = append(placements, resequenceCards(dest, destID)...)
	return models.Reassignment{Cards: placements}
}

// hoverColumn resolves a hover target to a column id; a card resolves to the
// column that owns it.
func hoverColumn(hover models.Ref, b models.Board) (string, bool) {
	switch hover.Kind {
	case models.KindColumn:
		if _, ok := b.Column(hover.ID); ok {
			return hover.ID, true
		}
	case models.KindCard:
		if card, ok := b.Card(hover.ID); ok {
			return card.ColumnID, true
		}
	}
	return "", false
}
