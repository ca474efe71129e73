package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/boardsync/internal/config/colors"
	"github.com/thenoetrevino/boardsync/internal/tui/state"
)

// cardWidth leaves room for the column's own border and padding under
// either width convention.
const cardWidth = state.ColumnContentWidth - 4

// styles holds every lipgloss style derived from the color scheme
type styles struct {
	Column         lipgloss.Style
	SelectedColumn lipgloss.Style
	DragColumn     lipgloss.Style
	TargetColumn   lipgloss.Style

	Card         lipgloss.Style
	SelectedCard lipgloss.Style
	DragCard     lipgloss.Style
	GhostCard    lipgloss.Style
	TargetCard   lipgloss.Style

	ColumnTitle   lipgloss.Style
	SelectedTitle lipgloss.Style
	AppTitle      lipgloss.Style
	Subtle        lipgloss.Style
	Indicator     lipgloss.Style

	Info  lipgloss.Style
	Error lipgloss.Style

	CreateBox lipgloss.Style
	EditBox   lipgloss.Style
	DeleteBox lipgloss.Style
	HelpBox   lipgloss.Style
	ErrorBox  lipgloss.Style
}

func newStyles(c colors.ColorScheme) styles {
	column := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.ColumnBorder)).
		Padding(0, 1).
		Width(state.ColumnContentWidth)

	card := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(c.CardBorder)).
		Foreground(lipgloss.Color(c.Normal)).
		Padding(0, 1).
		Width(cardWidth)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2)

	return styles{
		Column:         column,
		SelectedColumn: column.BorderForeground(lipgloss.Color(c.SelectedBorder)),
		DragColumn:     column.BorderForeground(lipgloss.Color(c.DragBorder)).BorderStyle(lipgloss.DoubleBorder()),
		TargetColumn:   column.BorderForeground(lipgloss.Color(c.DropTarget)),

		Card:         card,
		SelectedCard: card.BorderForeground(lipgloss.Color(c.SelectedBorder)),
		DragCard:     card.BorderForeground(lipgloss.Color(c.DragBorder)).Foreground(lipgloss.Color(c.Subtle)),
		GhostCard:    card.BorderForeground(lipgloss.Color(c.DragBorder)).Bold(true),
		TargetCard:   card.BorderForeground(lipgloss.Color(c.DropTarget)),

		ColumnTitle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Title)),
		SelectedTitle: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color(c.Accent)),
		AppTitle:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Accent)),
		Subtle:        lipgloss.NewStyle().Foreground(lipgloss.Color(c.Subtle)),
		Indicator:     lipgloss.NewStyle().Foreground(lipgloss.Color(c.Subtle)).Italic(true),

		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.InfoFg)).
			Background(lipgloss.Color(c.InfoBg)).
			Padding(0, 1),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.ErrorFg)).
			Background(lipgloss.Color(c.ErrorBg)).
			Padding(0, 1),

		CreateBox: box.BorderForeground(lipgloss.Color(c.Create)),
		EditBox:   box.BorderForeground(lipgloss.Color(c.Edit)),
		DeleteBox: box.BorderForeground(lipgloss.Color(c.Delete)),
		HelpBox:   box.BorderForeground(lipgloss.Color(c.Accent)),
		ErrorBox:  box.BorderForeground(lipgloss.Color(c.ErrorFg)),
	}
}

// geometry is the measured size of rendered board pieces, used both to lay
// out the board and to map pointer coordinates back to entities.
type geometry struct {
	columnWidth int // outer width of one column box
	cardHeight  int // outer height of one card box
	textWidth   int // room for a card title
	headerWidth int // room for a column header
}

func measure(s styles) geometry {
	return geometry{
		columnWidth: lipgloss.Width(s.Column.Render("")),
		cardHeight:  lipgloss.Height(s.Card.Render("x")),
		textWidth:   max(cardWidth-s.Card.GetHorizontalFrameSize(), 1),
		headerWidth: max(state.ColumnContentWidth-s.Column.GetHorizontalFrameSize(), 1),
	}
}
