// Package drag models a single pointer or keyboard drag as an explicit state
// machine driven by a synchronous reducer.
package drag

import (
	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/reorder"
)

// State is the dragged-entity state of a session
type State int

const (
	Idle State = iota
	DraggingColumn
	DraggingCard
)

func (s State) String() string {
	switch s {
	case DraggingColumn:
		return "dragging-column"
	case DraggingCard:
		return "dragging-card"
	default:
		return "idle"
	}
}

// Session is the drag state. The zero value is Idle.
type Session struct {
	state  State
	active string

	// hover is tracked independently of the state
	hover *models.Ref

	// previewColumn is where a dragged card is shown while hovering another column
	previewColumn string
}

// State returns the current state
func (s Session) State() State {
	return s.state
}

// Active returns the dragged entity, or a zero Ref when idle
func (s Session) Active() models.Ref {
	switch s.state {
	case DraggingColumn:
		return models.ColumnRef(s.active)
	case DraggingCard:
		return models.CardRef(s.active)
	default:
		return models.Ref{}
	}
}

// Dragging reports whether a drag is in progress
func (s Session) Dragging() bool {
	return s.state != Idle
}

// Hover returns the current hover target
func (s Session) Hover() (models.Ref, bool) {
	if s.hover == nil {
		return models.Ref{}, false
	}
	return *s.hover, true
}

// PreviewColumn returns the column a dragged card should be drawn in, if it differs
// from the card's own column.
func (s Session) PreviewColumn() (string, bool) {
	return s.previewColumn, s.previewColumn != ""
}

// Event is an input to Reduce
type Event interface {
	isEvent()
}

// Start begins a drag on the entity with ID
type Start struct{ ID string }

// Over updates the hover target; a nil Target clears it
type Over struct{ Target *models.Ref }

// Drop ends the drag and asks for the result to be committed
type Drop struct{}

// Cancel aborts the drag without any writes
type Cancel struct{}

func (Start) isEvent()  {}
func (Over) isEvent()   {}
func (Drop) isEvent()   {}
func (Cancel) isEvent() {}

// EffectKind tells the caller what to do after a transition
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectPreview
	EffectCommit
)

// Effect is the side effect requested by a transition
type Effect struct {
	Kind    EffectKind
	Dragged models.Ref
	Hover   *models.Ref
}

// Reduce applies ev to s. The board is only read, to resolve what a grabbed
// id refers to and to compute the hover preview.
func Reduce(s Session, ev Event, b models.Board) (Session, Effect) {
	switch ev := ev.(type) {
	case Start:
		if s.Dragging() {
			return s, Effect{}
		}
		if _, ok := b.Column(ev.ID); ok {
			return Session{state: DraggingColumn, active: ev.ID}, Effect{}
		}
		if _, ok := b.Card(ev.ID); ok {
			return Session{state: DraggingCard, active: ev.ID}, Effect{}
		}
		return s, Effect{}

	case Over:
		if !s.Dragging() {
			return s, Effect{}
		}
		next := s
		next.hover = nil
		if ev.Target != nil {
			target := *ev.Target
			next.hover = &target
		}
		next.previewColumn, _ = reorder.Preview(s.Active(), next.hover, b)
		if next.previewColumn != s.previewColumn {
			return next, Effect{Kind: EffectPreview, Dragged: s.Active()}
		}
		return next, Effect{}

	case Drop:
		if !s.Dragging() {
			return Session{}, Effect{}
		}
		return Session{}, Effect{Kind: EffectCommit, Dragged: s.Active(), Hover: s.hover}

	case Cancel:
		return Session{}, Effect{}
	}
	return s, Effect{}
}
