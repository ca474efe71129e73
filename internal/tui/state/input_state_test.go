package state

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/boardsync/internal/models"
)

func TestInputState_OpenAndType(t *testing.T) {
	s := NewInputState()
	s.Open("Rename column:", models.ColumnRef("c1"), "Todo")

	if s.Value() != "Todo" {
		t.Errorf("Value() = %q, want %q", s.Value(), "Todo")
	}
	if s.Changed() {
		t.Error("Changed() should be false before typing")
	}

	s.Update(tea.KeyPressMsg(tea.Key{Text: "s", Code: 's'}))

	if s.Value() != "Todos" {
		t.Errorf("Value() after typing = %q, want %q", s.Value(), "Todos")
	}
	if !s.Changed() {
		t.Error("Changed() should be true after typing")
	}
	if s.Target != models.ColumnRef("c1") {
		t.Errorf("Target = %v, want column c1", s.Target)
	}
}

func TestInputState_Close(t *testing.T) {
	s := NewInputState()
	s.Open("New card:", models.ColumnRef("c1"), "")
	s.Close()

	if s.Value() != "" || s.Prompt != "" || !s.Target.IsZero() {
		t.Errorf("Close() left state behind: value=%q prompt=%q target=%v", s.Value(), s.Prompt, s.Target)
	}
}
