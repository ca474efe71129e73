package tui

import (
	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/tui/state"
)

// Screen rows, from the top: the title line, a blank line, the board, then
// the status bar.
const (
	boardTop     = 2
	statusHeight = 1

	// Inside a column box: top border, title line, scroll indicator, then
	// cards. A last line holds the lower scroll indicator.
	columnBorderLines = 2
	columnHeaderLines = 2
	columnFooterLines = 1
)

// layout is the board geometry for the current terminal size
type layout struct {
	geom           geometry
	columnHeight   int // outer height of a column box
	visibleCards   int // cards that fit in one column
	visibleColumns int
}

func newLayout(g geometry, ui *state.UIState) layout {
	minHeight := columnBorderLines + columnHeaderLines + g.cardHeight + columnFooterLines
	columnHeight := max(ui.Height()-boardTop-statusHeight, minHeight)
	cardRoom := columnHeight - columnBorderLines - columnHeaderLines - columnFooterLines
	return layout{
		geom:           g,
		columnHeight:   columnHeight,
		visibleCards:   max(cardRoom/g.cardHeight, 1),
		visibleColumns: ui.ViewportSize(),
	}
}

// columnX is the left edge of the column at viewport slot v
func (l layout) columnX(v int) int {
	return state.BoardMargin + v*(l.geom.columnWidth+state.ColumnGap)
}

// cardsTop is the first screen row of the first visible card
func (l layout) cardsTop() int {
	return boardTop + 1 + columnHeaderLines
}

// scrollOffset clamps a stored card scroll offset to the cards present
func (l layout) scrollOffset(offset, count int) int {
	return max(0, min(offset, count-l.visibleCards))
}

// hitTest maps a screen cell to the entity drawn there. Empty space inside a
// column, including the column header, resolves to the column itself.
// Anything outside the columns resolves to nil.
func hitTest(x, y int, l layout, ui *state.UIState, b models.Board) *models.Ref {
	if y < boardTop || y >= boardTop+l.columnHeight || x < state.BoardMargin {
		return nil
	}

	stride := l.geom.columnWidth + state.ColumnGap
	rel := x - state.BoardMargin
	slot := rel / stride
	if rel%stride >= l.geom.columnWidth || slot >= l.visibleColumns {
		return nil
	}

	cols := b.SortedColumns()
	idx := ui.ViewportOffset() + slot
	if idx >= len(cols) {
		return nil
	}
	col := cols[idx]

	if y >= l.cardsTop() {
		row := (y - l.cardsTop()) / l.geom.cardHeight
		if row < l.visibleCards {
			cards := b.CardsIn(col.ID)
			i := l.scrollOffset(ui.CardScrollOffset(col.ID), len(cards)) + row
			if i < len(cards) {
				ref := models.CardRef(cards[i].ID)
				return &ref
			}
		}
	}

	ref := models.ColumnRef(col.ID)
	return &ref
}

// locate finds the selection indices of an entity on the board
func locate(ref models.Ref, b models.Board) (column, card int, ok bool) {
	cols := b.SortedColumns()
	switch ref.Kind {
	case models.KindColumn:
		for i, col := range cols {
			if col.ID == ref.ID {
				return i, state.NoCard, true
			}
		}
	case models.KindCard:
		c, found := b.Card(ref.ID)
		if !found {
			return 0, state.NoCard, false
		}
		for i, col := range cols {
			if col.ID != c.ColumnID {
				continue
			}
			for j, sibling := range b.CardsIn(col.ID) {
				if sibling.ID == ref.ID {
					return i, j, true
				}
			}
		}
	}
	return 0, state.NoCard, false
}
