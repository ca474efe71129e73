package tui

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/boardsync/internal/drag"
	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/tui/state"
)

// Update handles every message. Drag transitions and staged drops are
// applied synchronously here; only persistence runs in commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui.SetSize(msg.Width, msg.Height)
		m.clampSelection()
		return m, nil

	case boardLoadedMsg:
		return m.handleLoaded(msg)

	case dropDoneMsg:
		return m, m.handleDropDone(msg)

	case opDoneMsg:
		return m, m.handleOpDone(msg)

	case notificationExpiredMsg:
		m.notes.Remove(msg.id)
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseClickMsg:
		return m.handleMouseDown(msg.Mouse())

	case tea.MouseMotionMsg:
		return m.handleMouseMotion(msg.Mouse())

	case tea.MouseReleaseMsg:
		return m.handleMouseUp(msg.Mouse())
	}

	if m.inputMode() {
		return m, m.input.Update(msg)
	}
	return m, nil
}

// ============================================================================
// COORDINATOR RESULTS
// ============================================================================

func (m Model) handleLoaded(msg boardLoadedMsg) (Model, tea.Cmd) {
	m.loaded = true
	if msg.err != nil {
		m.errState.Set(msg.err.Error())
		return m, nil
	}
	m.errState.Clear()
	m.clampSelection()
	return m, nil
}

func (m Model) handleDropDone(msg dropDoneMsg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case msg.err != nil && models.IsFetchError(msg.err):
		m.errState.Set(msg.err.Error())
	case msg.err != nil:
		cmd = m.notify(state.LevelError, "Move failed: "+msg.err.Error())
	case msg.result.WritesFailed > 0:
		cmd = m.notify(state.LevelError,
			fmt.Sprintf("%d write(s) failed; board reloaded from the store", msg.result.WritesFailed))
	}

	if !m.drag.Dragging() {
		m.selectRef(msg.dragged)
	}
	m.clampSelection()
	return cmd
}

func (m Model) handleOpDone(msg opDoneMsg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case msg.err != nil && models.IsFetchError(msg.err):
		m.errState.Set(msg.err.Error())
	case msg.err != nil:
		cmd = m.notify(state.LevelError, fmt.Sprintf("Failed to %s: %v", msg.action, msg.err))
	case !msg.ref.IsZero() && !m.drag.Dragging():
		m.selectRef(msg.ref)
	}
	m.clampSelection()
	return cmd
}

// ============================================================================
// KEYBOARD
// ============================================================================

func (m Model) handleKey(msg tea.KeyPressMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.errState.HasError() {
		return m.handleErrorKey(msg)
	}
	if !m.loaded {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.ui.Mode() {
	case state.AddColumnMode, state.AddCardMode, state.RenameMode:
		return m.handleInputKey(msg)
	case state.DeleteConfirmMode:
		return m.handleDeleteKey(msg)
	case state.HelpMode:
		m.ui.SetMode(state.NormalMode)
		return m, nil
	}

	if m.drag.Dragging() {
		return m.handleDragKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m Model) handleErrorKey(msg tea.KeyPressMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Retry):
		if m.errState.Retrying() {
			return m, nil
		}
		m.errState.SetRetrying(true)
		return m, loadCmd(m.ctx, m.coord, true)
	}
	return m, nil
}

func (m Model) handleNormalKey(msg tea.KeyPressMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PrevColumn):
		m.moveColumn(-1)
	case key.Matches(msg, m.keys.NextColumn):
		m.moveColumn(1)
	case key.Matches(msg, m.keys.PrevCard):
		m.moveCard(-1)
	case key.Matches(msg, m.keys.NextCard):
		m.moveCard(1)

	case key.Matches(msg, m.keys.Grab):
		if ref, ok := m.cursor(); ok {
			m.drag, _ = drag.Reduce(m.drag, drag.Start{ID: ref.ID}, m.board())
			m.press = nil
		}

	case key.Matches(msg, m.keys.AddColumn):
		m.ui.SetMode(state.AddColumnMode)
		return m, m.input.Open("New column title:", models.Ref{}, "")

	case key.Matches(msg, m.keys.AddCard):
		col, ok := m.selectedColumn()
		if !ok {
			return m, m.notify(state.LevelError, "Add a column first")
		}
		m.ui.SetMode(state.AddCardMode)
		return m, m.input.Open(fmt.Sprintf("New card in %q:", col.Title), models.ColumnRef(col.ID), "")

	case key.Matches(msg, m.keys.Rename):
		ref, ok := m.cursor()
		if !ok {
			return m, nil
		}
		m.ui.SetMode(state.RenameMode)
		return m, m.input.Open("Rename "+ref.Kind.String()+":", ref, m.title(ref))

	case key.Matches(msg, m.keys.Delete):
		ref, ok := m.cursor()
		if !ok {
			return m, nil
		}
		m.pendingDelete = ref
		m.ui.SetMode(state.DeleteConfirmMode)

	case key.Matches(msg, m.keys.Reload):
		return m, loadCmd(m.ctx, m.coord, true)

	case key.Matches(msg, m.keys.Help):
		m.ui.SetMode(state.HelpMode)

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

// handleDragKey drives a keyboard drag: the selection is the hover target.
func (m Model) handleDragKey(msg tea.KeyPressMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		dragged := m.drag.Active()
		m.drag, _ = drag.Reduce(m.drag, drag.Cancel{}, m.board())
		m.selectRef(dragged)
		return m, nil

	case key.Matches(msg, m.keys.Drop), key.Matches(msg, m.keys.Grab):
		return m.finishDrag()

	case key.Matches(msg, m.keys.PrevColumn):
		m.moveColumn(-1)
	case key.Matches(msg, m.keys.NextColumn):
		m.moveColumn(1)
	case key.Matches(msg, m.keys.PrevCard):
		m.moveCard(-1)
	case key.Matches(msg, m.keys.NextCard):
		m.moveCard(1)

	case key.Matches(msg, m.keys.Quit):
		m.drag, _ = drag.Reduce(m.drag, drag.Cancel{}, m.board())
		return m, tea.Quit

	default:
		return m, nil
	}

	if ref, ok := m.cursor(); ok {
		return m.hover(&ref), nil
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyPressMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Close()
		m.ui.SetMode(state.NormalMode)
		return m, nil

	case "enter":
		mode := m.ui.Mode()
		title, target, changed := m.input.Value(), m.input.Target, m.input.Changed()
		m.input.Close()
		m.ui.SetMode(state.NormalMode)

		switch mode {
		case state.AddColumnMode:
			return m, createColumnCmd(m.ctx, m.coord, title)
		case state.AddCardMode:
			return m, createCardCmd(m.ctx, m.coord, target.ID, title)
		case state.RenameMode:
			if !changed {
				return m, nil
			}
			return m, renameCmd(m.ctx, m.coord, target, title)
		}
		return m, nil
	}

	return m, m.input.Update(msg)
}

func (m Model) handleDeleteKey(msg tea.KeyPressMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		ref := m.pendingDelete
		m.pendingDelete = models.Ref{}
		m.ui.SetMode(state.NormalMode)
		return m, deleteCmd(m.ctx, m.coord, ref)
	case key.Matches(msg, m.keys.Deny):
		m.pendingDelete = models.Ref{}
		m.ui.SetMode(state.NormalMode)
	}
	return m, nil
}

// ============================================================================
// DRAG
// ============================================================================

// hover moves the drag's hover target. A nil target clears it.
func (m Model) hover(target *models.Ref) Model {
	m.drag, _ = drag.Reduce(m.drag, drag.Over{Target: target}, m.board())
	return m
}

// finishDrag ends the drag, applies the new ordering to the board at once
// and persists it in the background.
func (m Model) finishDrag() (Model, tea.Cmd) {
	var eff drag.Effect
	m.drag, eff = drag.Reduce(m.drag, drag.Drop{}, m.board())
	m.press = nil
	if eff.Kind != drag.EffectCommit {
		return m, nil
	}

	staged := m.coord.Stage(eff.Dragged, eff.Hover)
	m.selectRef(eff.Dragged)
	return m, commitCmd(m.ctx, m.coord, eff.Dragged, staged)
}

// ============================================================================
// NAVIGATION
// ============================================================================

func (m Model) moveColumn(delta int) {
	b := m.board()
	cols := b.SortedColumns()
	if len(cols) == 0 {
		return
	}
	next := min(max(m.ui.SelectedColumn()+delta, 0), len(cols)-1)
	m.ui.SetSelectedColumn(next)

	if m.drag.State() == drag.DraggingColumn {
		m.ui.SetSelectedCard(state.NoCard)
	} else if m.ui.SelectedCard() != state.NoCard {
		m.ui.SetSelectedCard(min(m.ui.SelectedCard(), len(b.CardsIn(cols[next].ID))-1))
	}
	m.ui.EnsureSelectionVisible()
	m.scrollToSelection()
}

// moveCard moves the selection within a column. Index NoCard is the header.
func (m Model) moveCard(delta int) {
	if m.drag.State() == drag.DraggingColumn {
		return
	}
	col, ok := m.selectedColumn()
	if !ok {
		return
	}
	count := m.coord.Board().CountCards(col.ID)
	next := min(max(m.ui.SelectedCard()+delta, state.NoCard), count-1)
	m.ui.SetSelectedCard(next)
	m.scrollToSelection()
}

// title returns the current title of a column or card
func (m Model) title(ref models.Ref) string {
	b := m.board()
	if ref.Kind == models.KindColumn {
		col, _ := b.Column(ref.ID)
		return col.Title
	}
	card, _ := b.Card(ref.ID)
	return card.Title
}

func (m Model) inputMode() bool {
	switch m.ui.Mode() {
	case state.AddColumnMode, state.AddCardMode, state.RenameMode:
		return true
	}
	return false
}
