package state

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/boardsync/internal/models"
)

// InputState manages the single-line title prompt used to add and rename
// columns and cards.
type InputState struct {
	// Prompt is the text displayed above the input (e.g., "New column title:")
	Prompt string

	// Target is the entity being renamed, or the column a card is added to
	Target models.Ref

	// Initial is the value the prompt opened with, for change detection
	Initial string

	input textinput.Model
}

// NewInputState creates a new InputState with empty values.
func NewInputState() *InputState {
	ti := textinput.New()
	ti.CharLimit = models.MaxTitleLength
	ti.Prompt = "> "
	return &InputState{input: ti}
}

// Open resets the input to value, focuses it and remembers target.
func (s *InputState) Open(prompt string, target models.Ref, value string) tea.Cmd {
	s.Prompt = prompt
	s.Target = target
	s.Initial = value
	s.input.SetValue(value)
	s.input.CursorEnd()
	return s.input.Focus()
}

// Close blurs the input and clears it.
func (s *InputState) Close() {
	s.input.Blur()
	s.input.SetValue("")
	s.Prompt = ""
	s.Target = models.Ref{}
	s.Initial = ""
}

// Update forwards a message to the text input.
func (s *InputState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// Value returns the text typed so far.
func (s *InputState) Value() string {
	return s.input.Value()
}

// Changed reports whether the value differs from the one the prompt opened with.
func (s *InputState) Changed() bool {
	return s.input.Value() != s.Initial
}

// View renders the text input line.
func (s *InputState) View() string {
	return s.input.View()
}
