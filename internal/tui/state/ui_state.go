// Package state holds the TUI's view state: selection, viewport, mode,
// text input, notifications and the blocking error screen.
package state

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI is displayed.
type Mode int

const (
	NormalMode        Mode = iota // Default navigation mode
	AddColumnMode                 // Typing the title of a new column
	AddCardMode                   // Typing the title of a new card
	RenameMode                    // Renaming the selected column or card
	DeleteConfirmMode             // Confirming deletion of the selected entity
	HelpMode                      // Displaying help screen
)

// NoCard is the selected card index when the column header is selected
const NoCard = -1

// Column layout, in terminal cells
const (
	ColumnContentWidth = 28
	ColumnWidth        = ColumnContentWidth + 4 // border and horizontal padding
	ColumnGap          = 1
	BoardMargin        = 2 // left margin and scroll indicator
)

// UIState manages the user interface state.
// This includes navigation (column/card selection), viewport scrolling,
// terminal dimensions, and the current interaction mode.
type UIState struct {
	selectedColumn int

	// selectedCard is an index into the selected column's cards, or NoCard
	selectedCard int

	width  int
	height int

	mode Mode

	// viewportOffset is the index of the leftmost visible column
	viewportOffset int

	// viewportSize is the number of columns that fit on the screen
	viewportSize int

	// columnWidth is the rendered outer width of one column
	columnWidth int

	// cardScrollOffsets is the index of the first visible card, by column id
	cardScrollOffsets map[string]int
}

// NewUIState creates a new UIState with default values.
func NewUIState() *UIState {
	return &UIState{
		selectedCard:      NoCard,
		mode:              NormalMode,
		viewportSize:      1,
		columnWidth:       ColumnWidth,
		cardScrollOffsets: make(map[string]int),
	}
}

// SelectedColumn returns the index of the currently selected column.
func (s *UIState) SelectedColumn() int {
	return s.selectedColumn
}

// SetSelectedColumn updates the selected column index.
func (s *UIState) SetSelectedColumn(index int) {
	s.selectedColumn = max(index, 0)
}

// SelectedCard returns the selected card index, or NoCard.
func (s *UIState) SelectedCard() int {
	return s.selectedCard
}

// SetSelectedCard updates the selected card index.
func (s *UIState) SetSelectedCard(index int) {
	s.selectedCard = max(index, NoCard)
}

// ClampSelection keeps the selection inside a board of the given shape.
// cardsIn reports the card count of a column index.
func (s *UIState) ClampSelection(columns int, cardsIn func(int) int) {
	if columns == 0 {
		s.selectedColumn = 0
		s.selectedCard = NoCard
		s.viewportOffset = 0
		return
	}
	s.selectedColumn = min(s.selectedColumn, columns-1)
	s.selectedCard = min(s.selectedCard, cardsIn(s.selectedColumn)-1)
	s.EnsureSelectionVisible()
	if s.viewportOffset+s.viewportSize > columns {
		s.viewportOffset = max(0, columns-s.viewportSize)
	}
}

// Width returns the current terminal width.
func (s *UIState) Width() int {
	return s.width
}

// Height returns the current terminal height.
func (s *UIState) Height() int {
	return s.height
}

// SetSize updates the terminal size and recalculates the viewport size.
func (s *UIState) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.calculateViewportSize()
}

// ColumnWidth returns the outer width of one rendered column.
func (s *UIState) ColumnWidth() int {
	return s.columnWidth
}

// SetColumnWidth records the measured outer width of a column and
// recalculates the viewport size.
func (s *UIState) SetColumnWidth(width int) {
	if width > 0 {
		s.columnWidth = width
		s.calculateViewportSize()
	}
}

// Mode returns the current interaction mode.
func (s *UIState) Mode() Mode {
	return s.mode
}

// SetMode updates the current interaction mode.
func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}

// ViewportOffset returns the index of the leftmost visible column.
func (s *UIState) ViewportOffset() int {
	return s.viewportOffset
}

// ViewportSize returns the number of columns that fit on screen.
func (s *UIState) ViewportSize() int {
	return s.viewportSize
}

// calculateViewportSize calculates how many columns fit in the terminal width,
// always at least one.
func (s *UIState) calculateViewportSize() {
	if s.width == 0 {
		s.viewportSize = 1
		return
	}
	available := s.width - 2*BoardMargin + ColumnGap
	s.viewportSize = max(1, available/(s.columnWidth+ColumnGap))
}

// EnsureSelectionVisible scrolls the viewport so the selected column is shown.
func (s *UIState) EnsureSelectionVisible() {
	if s.selectedColumn < s.viewportOffset {
		s.viewportOffset = s.selectedColumn
	}
	if s.selectedColumn >= s.viewportOffset+s.viewportSize {
		s.viewportOffset = s.selectedColumn - s.viewportSize + 1
	}
}

// CardScrollOffset returns the index of the first visible card in a column.
func (s *UIState) CardScrollOffset(columnID string) int {
	return s.cardScrollOffsets[columnID]
}

// EnsureCardVisible adjusts the scroll offset so that index is shown.
func (s *UIState) EnsureCardVisible(columnID string, index, visible int) {
	if visible <= 0 || index < 0 {
		return
	}
	offset := s.cardScrollOffsets[columnID]
	if index < offset {
		offset = index
	}
	if index >= offset+visible {
		offset = index - visible + 1
	}
	s.cardScrollOffsets[columnID] = offset
}

// ResetSelection selects the first column header and scrolls back to it.
func (s *UIState) ResetSelection() {
	s.selectedColumn = 0
	s.selectedCard = NoCard
	s.viewportOffset = 0
}
