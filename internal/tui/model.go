// Package tui is the interactive board. It renders the board store, turns
// pointer and keyboard gestures into drag session events, and hands drops
// and edits to the sync coordinator.
package tui

import (
	"context"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/boardsync/internal/config"
	"github.com/thenoetrevino/boardsync/internal/coordinator"
	"github.com/thenoetrevino/boardsync/internal/drag"
	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/tui/state"
)

// Model is the bubbletea model for the board
type Model struct {
	ctx   context.Context
	coord *coordinator.Coordinator

	keys   keyMap
	styles styles
	geom   geometry
	help   help.Model

	ui       *state.UIState
	input    *state.InputState
	notes    *state.NotificationState
	errState *state.ErrorState

	// drag is the active gesture; it is replaced on every transition
	drag drag.Session

	// press is a mouse press that has not moved far enough to start a drag
	press *pointerPress

	// pendingDelete is the entity awaiting confirmation
	pendingDelete models.Ref

	loaded bool
}

// pointerPress remembers where the left button went down
type pointerPress struct {
	ref  models.Ref
	x, y int
}

// New creates the board model. The board is fetched by Init.
func New(ctx context.Context, coord *coordinator.Coordinator, cfg *config.Config) Model {
	s := newStyles(cfg.ColorScheme)
	g := measure(s)

	ui := state.NewUIState()
	ui.SetColumnWidth(g.columnWidth)

	return Model{
		ctx:      ctx,
		coord:    coord,
		keys:     newKeyMap(cfg.KeyMappings),
		styles:   s,
		geom:     g,
		help:     help.New(),
		ui:       ui,
		input:    state.NewInputState(),
		notes:    state.NewNotificationState(),
		errState: state.NewErrorState(),
	}
}

// Init fetches the board
func (m Model) Init() tea.Cmd {
	return loadCmd(m.ctx, m.coord, false)
}

// board returns a snapshot of the local board
func (m Model) board() models.Board {
	return m.coord.Board().Snapshot()
}

func (m Model) layout() layout {
	return newLayout(m.geom, m.ui)
}

// cursor returns the entity under the keyboard selection
func (m Model) cursor() (models.Ref, bool) {
	b := m.board()
	cols := b.SortedColumns()
	if len(cols) == 0 {
		return models.Ref{}, false
	}
	col := cols[min(m.ui.SelectedColumn(), len(cols)-1)]
	if m.ui.SelectedCard() == state.NoCard {
		return models.ColumnRef(col.ID), true
	}
	cards := b.CardsIn(col.ID)
	if m.ui.SelectedCard() >= len(cards) {
		return models.ColumnRef(col.ID), true
	}
	return models.CardRef(cards[m.ui.SelectedCard()].ID), true
}

// selectedColumn returns the column under the keyboard selection
func (m Model) selectedColumn() (models.Column, bool) {
	cols := m.board().SortedColumns()
	if len(cols) == 0 {
		return models.Column{}, false
	}
	return cols[min(m.ui.SelectedColumn(), len(cols)-1)], true
}

// clampSelection keeps the selection valid after the board changed
func (m Model) clampSelection() {
	b := m.board()
	cols := b.SortedColumns()
	m.ui.ClampSelection(len(cols), func(i int) int {
		return len(b.CardsIn(cols[i].ID))
	})
	m.scrollToSelection()
}

// selectRef moves the keyboard selection onto ref, if it is on the board
func (m Model) selectRef(ref models.Ref) {
	col, card, ok := locate(ref, m.board())
	if !ok {
		return
	}
	m.ui.SetSelectedColumn(col)
	m.ui.SetSelectedCard(card)
	m.ui.EnsureSelectionVisible()
	m.scrollToSelection()
}

func (m Model) scrollToSelection() {
	if col, ok := m.selectedColumn(); ok {
		m.ui.EnsureCardVisible(col.ID, m.ui.SelectedCard(), m.layout().visibleCards)
	}
}

// notify shows a transient message and schedules its removal
func (m Model) notify(level state.NotificationLevel, msg string) tea.Cmd {
	return expireCmd(m.notes.Add(level, msg))
}

// Dragging reports whether a drag gesture is in progress
func (m Model) Dragging() bool {
	return m.drag.Dragging()
}
