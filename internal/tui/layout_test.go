package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/tui/state"
)

func TestHitTest(t *testing.T) {
	m, _ := newTestModel(t)
	l := m.layout()
	require.GreaterOrEqual(t, l.visibleColumns, 3)

	col := func(id string) *models.Ref { r := models.ColumnRef(id); return &r }
	card := func(id string) *models.Ref { r := models.CardRef(id); return &r }

	tests := []struct {
		name string
		x, y int
		want *models.Ref
	}{
		{"title line", l.columnX(0) + 2, 0, nil},
		{"left margin", 0, l.cardsTop(), nil},
		{"column border", l.columnX(1), boardTop, col("c1")},
		{"column header", l.columnX(1) + 4, boardTop + 1, col("c1")},
		{"gap between columns", l.columnX(1) - 1, l.cardsTop(), nil},
		{"first card top edge", l.columnX(0) + 2, l.cardsTop(), card("c0-k0")},
		{"second card", l.columnX(0) + 2, l.cardsTop() + l.geom.cardHeight, card("c0-k1")},
		{"third card last row", l.columnX(0) + 2, l.cardsTop() + 3*l.geom.cardHeight - 1, card("c0-k2")},
		{"below last card", l.columnX(0) + 2, l.cardsTop() + 3*l.geom.cardHeight, col("c0")},
		{"empty column", l.columnX(2) + 2, l.cardsTop() + 1, col("c2")},
		{"below board", l.columnX(0) + 2, boardTop + l.columnHeight, nil},
		{"past last column", l.columnX(3) + 2, l.cardsTop(), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.HitTest(tt.x, tt.y))
		})
	}
}

func TestHitTest_FollowsViewportAndCardScroll(t *testing.T) {
	b := testBoard()
	ui := state.NewUIState()
	ui.SetSize(40, 12) // one column, one card visible
	g := geometry{columnWidth: 32, cardHeight: 3}
	l := newLayout(g, ui)
	require.Equal(t, 1, l.visibleColumns)
	require.Equal(t, 1, l.visibleCards)

	ui.SetSelectedColumn(1)
	ui.EnsureSelectionVisible()
	got := hitTest(state.BoardMargin+1, l.cardsTop(), l, ui, b)
	assert.Equal(t, models.CardRef("c1-k0"), *got)

	ui.SetSelectedColumn(0)
	ui.EnsureSelectionVisible()
	ui.EnsureCardVisible("c0", 2, l.visibleCards)
	got = hitTest(state.BoardMargin+1, l.cardsTop(), l, ui, b)
	assert.Equal(t, models.CardRef("c0-k2"), *got)
}

func TestLayout_MinimumHeightKeepsOneCard(t *testing.T) {
	ui := state.NewUIState()
	ui.SetSize(80, 3)
	l := newLayout(geometry{columnWidth: 32, cardHeight: 3}, ui)

	assert.Equal(t, 1, l.visibleCards)
	assert.Equal(t, columnBorderLines+columnHeaderLines+3+columnFooterLines, l.columnHeight)
}

func TestLocate(t *testing.T) {
	b := testBoard()

	col, card, ok := locate(models.CardRef("c0-k2"), b)
	assert.True(t, ok)
	assert.Equal(t, [2]int{0, 2}, [2]int{col, card})

	col, card, ok = locate(models.ColumnRef("c2"), b)
	assert.True(t, ok)
	assert.Equal(t, [2]int{2, state.NoCard}, [2]int{col, card})

	_, _, ok = locate(models.CardRef("missing"), b)
	assert.False(t, ok)
}
