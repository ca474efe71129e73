package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/boardsync/internal/drag"
	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/tui/state"
)

// dragActivationDistance is how far, in cells, the pointer must travel
// with the button held before a press becomes a drag. Shorter gestures are
// plain clicks that only move the selection.
const dragActivationDistance = 1

// HitTest returns the entity drawn at a screen cell, or nil
func (m Model) HitTest(x, y int) *models.Ref {
	return hitTest(x, y, m.layout(), m.ui, m.board())
}

func (m Model) pointerEnabled() bool {
	return m.loaded && !m.errState.HasError() && m.ui.Mode() == state.NormalMode
}

func (m Model) handleMouseDown(mouse tea.Mouse) (Model, tea.Cmd) {
	if mouse.Button != tea.MouseLeft || !m.pointerEnabled() || m.drag.Dragging() {
		return m, nil
	}

	ref := m.HitTest(mouse.X, mouse.Y)
	if ref == nil {
		m.press = nil
		return m, nil
	}
	m.selectRef(*ref)
	m.press = &pointerPress{ref: *ref, x: mouse.X, y: mouse.Y}
	return m, nil
}

func (m Model) handleMouseMotion(mouse tea.Mouse) (Model, tea.Cmd) {
	if m.press == nil || !m.pointerEnabled() {
		return m, nil
	}

	if !m.drag.Dragging() {
		if distance(m.press.x, m.press.y, mouse.X, mouse.Y) < dragActivationDistance {
			return m, nil
		}
		m.drag, _ = drag.Reduce(m.drag, drag.Start{ID: m.press.ref.ID}, m.board())
		if !m.drag.Dragging() {
			m.press = nil
			return m, nil
		}
	}
	return m.hover(m.HitTest(mouse.X, mouse.Y)), nil
}

func (m Model) handleMouseUp(mouse tea.Mouse) (Model, tea.Cmd) {
	press := m.press
	m.press = nil
	if press == nil || !m.drag.Dragging() {
		return m, nil
	}

	m = m.hover(m.HitTest(mouse.X, mouse.Y))
	return m.finishDrag()
}

// distance is the Chebyshev distance between two cells
func distance(x1, y1, x2, y2 int) int {
	return max(abs(x2-x1), abs(y2-y1))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
