package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/thenoetrevino/boardsync/internal/drag"
	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/tui/layers"
	"github.com/thenoetrevino/boardsync/internal/tui/state"
)

// View renders the board with any modal layered on top
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion

	switch {
	case m.ui.Width() == 0:
		view.Content = "Loading..."
		return view
	case m.errState.HasError():
		view.Content = m.viewError()
		return view
	case !m.loaded:
		view.Content = lipgloss.Place(m.ui.Width(), m.ui.Height(), lipgloss.Center, lipgloss.Center,
			m.styles.Subtle.Render("Loading board..."))
		return view
	}

	layerStack := []*lipgloss.Layer{lipgloss.NewLayer(m.viewBoard())}
	if modal := m.viewModal(); modal != "" {
		layerStack = append(layerStack, layers.CreateCenteredLayer(modal, m.ui.Width(), m.ui.Height()))
	}
	view.Content = lipgloss.NewCanvas(layerStack...).Render()
	return view
}

// viewBoard renders the title line, the visible columns and the status bar
func (m Model) viewBoard() string {
	b := m.board()
	cols := b.SortedColumns()
	l := m.layout()

	title := m.viewTitleLine()
	status := m.viewStatusBar()

	if len(cols) == 0 {
		empty := lipgloss.Place(m.ui.Width(), l.columnHeight, lipgloss.Center, lipgloss.Center,
			m.styles.Subtle.Render(fmt.Sprintf("No columns yet. Press %s to add one.", m.keys.AddColumn.Help().Key)))
		return lipgloss.JoinVertical(lipgloss.Left, title, "", empty, status)
	}

	offset := m.ui.ViewportOffset()
	end := min(offset+l.visibleColumns, len(cols))

	row := []string{m.scrollIndicator(offset > 0, "‹"), " "}
	for i := offset; i < end; i++ {
		if i > offset {
			row = append(row, strings.Repeat(" ", state.ColumnGap))
		}
		row = append(row, m.viewColumn(cols[i], b, i, l))
	}
	row = append(row, " ", m.scrollIndicator(end < len(cols), "›"))

	return lipgloss.JoinVertical(lipgloss.Left, title, "", lipgloss.JoinHorizontal(lipgloss.Top, row...), status)
}

func (m Model) scrollIndicator(show bool, glyph string) string {
	if !show {
		return " "
	}
	return m.styles.Indicator.Render(glyph)
}

func (m Model) viewTitleLine() string {
	line := m.styles.AppTitle.Render("boardsync")

	if m.drag.Dragging() {
		active := m.drag.Active()
		line += "  " + m.styles.Subtle.Render(fmt.Sprintf("moving %s %q", active.Kind, m.title(active)))
	}
	if n, ok := m.notes.Latest(); ok {
		style := m.styles.Info
		if n.Level == state.LevelError {
			style = m.styles.Error
		}
		line += "  " + style.Render(n.Message)
	}
	return ansi.Truncate(line, m.ui.Width(), "…")
}

func (m Model) viewStatusBar() string {
	bindings := m.keys.ShortHelp()
	if m.drag.Dragging() {
		bindings = m.keys.DragHelp()
	}
	return ansi.Truncate(m.help.ShortHelpView(bindings), m.ui.Width(), "…")
}

// viewColumn renders one column box. Its height is fixed so that every
// screen row maps to the same slot in hitTest.
func (m Model) viewColumn(col models.Column, b models.Board, index int, l layout) string {
	cards := b.CardsIn(col.ID)
	selected := index == m.ui.SelectedColumn() && !m.drag.Dragging()

	titleStyle := m.styles.ColumnTitle
	if selected && m.ui.SelectedCard() == state.NoCard {
		titleStyle = m.styles.SelectedTitle
	}
	header := ansi.Truncate(fmt.Sprintf("%s (%d)", col.Title, len(cards)), l.geom.headerWidth, "…")

	offset := l.scrollOffset(m.ui.CardScrollOffset(col.ID), len(cards))
	end := min(offset+l.visibleCards, len(cards))

	lines := []string{titleStyle.Render(header)}
	if offset > 0 {
		lines = append(lines, m.styles.Indicator.Render("▲ more above"))
	} else {
		lines = append(lines, "")
	}

	for i := offset; i < end; i++ {
		isSelected := selected && i == m.ui.SelectedCard()
		lines = append(lines, strings.Split(m.viewCard(cards[i], isSelected, l), "\n")...)
	}
	if len(cards) == 0 && !m.ghostIn(col.ID) {
		lines = append(lines, m.styles.Indicator.Render("No cards"))
	}
	if m.ghostIn(col.ID) && end-offset < l.visibleCards {
		active := m.drag.Active()
		ghost := m.styles.GhostCard.Render(ansi.Truncate(m.title(active), l.geom.textWidth, "…"))
		lines = append(lines, strings.Split(ghost, "\n")...)
	}

	inner := l.columnHeight - columnBorderLines
	for len(lines) < inner-columnFooterLines {
		lines = append(lines, "")
	}
	lines = lines[:inner-columnFooterLines]
	if end < len(cards) {
		lines = append(lines, m.styles.Indicator.Render(fmt.Sprintf("▼ %d more", len(cards)-end)))
	} else {
		lines = append(lines, "")
	}

	return m.columnStyle(col.ID, selected).Render(strings.Join(lines, "\n"))
}

func (m Model) viewCard(card models.Card, selected bool, l layout) string {
	style := m.styles.Card
	hover, hovering := m.drag.Hover()
	switch {
	case m.drag.Active() == models.CardRef(card.ID):
		style = m.styles.DragCard
	case hovering && hover == models.CardRef(card.ID) && m.drag.State() == drag.DraggingCard:
		style = m.styles.TargetCard
	case selected:
		style = m.styles.SelectedCard
	}
	return style.Render(ansi.Truncate(card.Title, l.geom.textWidth, "…"))
}

func (m Model) columnStyle(columnID string, selected bool) lipgloss.Style {
	switch {
	case m.drag.Active() == models.ColumnRef(columnID):
		return m.styles.DragColumn
	case m.dropColumn() == columnID:
		return m.styles.TargetColumn
	case selected:
		return m.styles.SelectedColumn
	}
	return m.styles.Column
}

// dropColumn is the column the current hover target resolves to
func (m Model) dropColumn() string {
	hover, ok := m.drag.Hover()
	if !ok {
		return ""
	}
	if hover.Kind == models.KindColumn {
		return hover.ID
	}
	if card, found := m.board().Card(hover.ID); found {
		return card.ColumnID
	}
	return ""
}

// ghostIn reports whether the dragged card is previewed in columnID
func (m Model) ghostIn(columnID string) bool {
	preview, ok := m.drag.PreviewColumn()
	return ok && preview == columnID
}

// ============================================================================
// MODALS
// ============================================================================

func (m Model) viewModal() string {
	width := layers.ModalWidth(m.ui.Width())
	textWidth := layers.ModalContentWidth(m.ui.Width())

	switch m.ui.Mode() {
	case state.AddColumnMode, state.AddCardMode:
		return m.styles.CreateBox.Width(width).Render(m.input.Prompt + "\n\n" + m.input.View())
	case state.RenameMode:
		return m.styles.EditBox.Width(width).Render(m.input.Prompt + "\n\n" + m.input.View())
	case state.DeleteConfirmMode:
		return m.styles.DeleteBox.Width(width).Render(m.viewDeleteConfirm(textWidth))
	case state.HelpMode:
		return m.styles.HelpBox.Render("Keyboard shortcuts\n\n" + m.help.FullHelpView(m.keys.FullHelp()))
	}
	return ""
}

func (m Model) viewDeleteConfirm(textWidth int) string {
	ref := m.pendingDelete
	name := ansi.Truncate(m.title(ref), textWidth-12, "…")
	if ref.Kind == models.KindColumn {
		if n := m.coord.Board().CountCards(ref.ID); n > 0 {
			return fmt.Sprintf("Delete column %q?\nThis will also delete %d card(s).\n\n[y]es  [n]o", name, n)
		}
	}
	return fmt.Sprintf("Delete %s %q?\n\n[y]es  [n]o", ref.Kind, name)
}

func (m Model) viewError() string {
	body := "Could not load the board\n\n" + m.errState.Get() + "\n\n"
	if m.errState.Retrying() {
		body += m.styles.Subtle.Render("Retrying...")
	} else {
		body += "[r] retry  [q] quit"
	}
	box := m.styles.ErrorBox.Width(layers.ModalWidth(m.ui.Width())).Render(body)
	return lipgloss.Place(m.ui.Width(), m.ui.Height(), lipgloss.Center, lipgloss.Center, box)
}
