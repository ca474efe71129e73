package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/boardsync/internal/board"
	"github.com/thenoetrevino/boardsync/internal/config"
	"github.com/thenoetrevino/boardsync/internal/coordinator"
	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/testutil"
	"github.com/thenoetrevino/boardsync/internal/tui/state"
)

var errDown = fmt.Errorf("connection refused: %w", models.ErrUnavailable)

// ============================================================================
// TEST HELPERS
// ============================================================================

// testBoard is To Do=[A,B,C], Doing=[D], Done=[]
func testBoard() models.Board {
	return testutil.Board([]string{"To Do", "Doing", "Done"}, map[int][]string{
		0: {"A", "B", "C"},
		1: {"D"},
	})
}

func newUnloadedModel(t *testing.T) (Model, *testutil.FakeStore) {
	t.Helper()
	fake := testutil.NewFakeStore(testBoard())
	coord := coordinator.New(fake, board.NewStore(),
		coordinator.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	m := New(context.Background(), coord, config.Default())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	return m, fake
}

// newTestModel returns a sized model that has loaded testBoard
func newTestModel(t *testing.T) (Model, *testutil.FakeStore) {
	t.Helper()
	m, fake := newUnloadedModel(t)
	m = run(t, m, m.Init())
	require.False(t, m.errState.HasError(), "initial load failed: %s", m.errState.Get())
	return m, fake
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return nm, cmd
}

// run executes cmd synchronously and feeds its message back into the model
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd, "expected a command")
	m, _ = update(t, m, cmd())
	return m
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = update(t, m, keyMsg(k))
	}
	return m, cmd
}

func keyMsg(k string) tea.KeyPressMsg {
	switch k {
	case "space":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeySpace})
	case "enter":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter})
	case "esc":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape})
	case "right":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyRight})
	case "down":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyDown})
	}
	r := []rune(k)[0]
	return tea.KeyPressMsg(tea.Key{Text: k, Code: r})
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = update(t, m, tea.KeyPressMsg(tea.Key{Text: string(r), Code: r}))
	}
	return m
}

// titles lists the card titles of a column in rank order
func titles(b models.Board, columnID string) []string {
	var out []string
	for _, c := range b.CardsIn(columnID) {
		out = append(out, c.Title)
	}
	return out
}

func columnTitles(b models.Board) []string {
	var out []string
	for _, c := range b.SortedColumns() {
		out = append(out, c.Title)
	}
	return out
}

// ============================================================================
// LOADING
// ============================================================================

func TestInit_LoadsBoard(t *testing.T) {
	m, _ := newTestModel(t)

	assert.True(t, m.loaded)
	assert.Equal(t, []string{"To Do", "Doing", "Done"}, columnTitles(m.board()))
	assert.Equal(t, 0, m.ui.SelectedColumn())
	assert.Equal(t, state.NoCard, m.ui.SelectedCard())

	content := m.View().Content
	assert.Contains(t, content, "boardsync")
	assert.Contains(t, content, "To Do (3)")
	assert.Contains(t, content, "Doing (1)")
}

func TestInit_FetchFailureShowsBlockingError(t *testing.T) {
	m, fake := newUnloadedModel(t)
	fake.FailList(errDown)

	m = run(t, m, m.Init())
	require.True(t, m.errState.HasError())
	assert.Contains(t, m.View().Content, "Could not load the board")

	// Board keys are ignored behind the error screen
	m, cmd := press(t, m, "A")
	assert.Nil(t, cmd)
	assert.Equal(t, state.NormalMode, m.ui.Mode())

	fake.ClearFailures()
	m, cmd = press(t, m, "r")
	require.True(t, m.errState.Retrying())
	m = run(t, m, cmd)

	assert.False(t, m.errState.HasError())
	assert.Len(t, m.board().Columns, 3)
}

func TestErrorScreen_QuitKey(t *testing.T) {
	m, fake := newUnloadedModel(t)
	fake.FailHealth(errDown)
	m = run(t, m, m.Init())
	require.True(t, m.errState.HasError())

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

// ============================================================================
// NAVIGATION
// ============================================================================

func TestNavigation_MovesSelection(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, "j", "j")
	assert.Equal(t, 1, m.ui.SelectedCard())

	m, _ = press(t, m, "l")
	assert.Equal(t, 1, m.ui.SelectedColumn())
	assert.Equal(t, 0, m.ui.SelectedCard(), "clamped to the single card in Doing")

	m, _ = press(t, m, "right")
	assert.Equal(t, 2, m.ui.SelectedColumn())
	assert.Equal(t, state.NoCard, m.ui.SelectedCard(), "empty column selects its header")

	m, _ = press(t, m, "l", "down")
	assert.Equal(t, 2, m.ui.SelectedColumn(), "stays on the last column")
	assert.Equal(t, state.NoCard, m.ui.SelectedCard())
}

func TestHelpMode_AnyKeyCloses(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, "?")
	require.Equal(t, state.HelpMode, m.ui.Mode())
	assert.Contains(t, m.View().Content, "Keyboard shortcuts")

	m, _ = press(t, m, "x")
	assert.Equal(t, state.NormalMode, m.ui.Mode())
}

// ============================================================================
// EDITING
// ============================================================================

func TestAddColumn(t *testing.T) {
	m, fake := newTestModel(t)

	m, _ = press(t, m, "A")
	require.Equal(t, state.AddColumnMode, m.ui.Mode())

	m = typeText(t, m, "backlog")
	m, cmd := press(t, m, "enter")
	assert.Equal(t, state.NormalMode, m.ui.Mode())
	m = run(t, m, cmd)

	assert.Equal(t, []string{"To Do", "Doing", "Done", "backlog"}, columnTitles(m.board()))
	assert.Equal(t, []string{"To Do", "Doing", "Done", "backlog"}, columnTitles(fake.Board()))
	assert.Equal(t, 3, m.ui.SelectedColumn(), "the new column is selected")
}

func TestAddCard_ToSelectedColumn(t *testing.T) {
	m, fake := newTestModel(t)

	m, _ = press(t, m, "l", "a")
	require.Equal(t, state.AddCardMode, m.ui.Mode())

	m = typeText(t, m, "write tests")
	m, cmd := press(t, m, "enter")
	m = run(t, m, cmd)

	assert.Equal(t, []string{"D", "write tests"}, titles(m.board(), "c1"))
	assert.Equal(t, []string{"D", "write tests"}, titles(fake.Board(), "c1"))
	assert.Equal(t, 1, m.ui.SelectedCard())
}

func TestAddCard_EmptyTitleNotifies(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, "a")
	m, cmd := press(t, m, "enter")
	m = run(t, m, cmd)

	n, ok := m.notes.Latest()
	require.True(t, ok)
	assert.Equal(t, state.LevelError, n.Level)
	assert.Equal(t, []string{"A", "B", "C"}, titles(m.board(), "c0"))
}

func TestInputMode_EscCancels(t *testing.T) {
	m, fake := newTestModel(t)

	m, _ = press(t, m, "A")
	m = typeText(t, m, "never")
	m, cmd := press(t, m, "esc")

	assert.Nil(t, cmd)
	assert.Equal(t, state.NormalMode, m.ui.Mode())
	assert.Empty(t, fake.Writes())
}

func TestRename_Card(t *testing.T) {
	m, fake := newTestModel(t)

	m, _ = press(t, m, "j", "r")
	require.Equal(t, state.RenameMode, m.ui.Mode())
	assert.Equal(t, "A", m.input.Value(), "prompt starts with the current title")

	m = typeText(t, m, "lpha")
	m, cmd := press(t, m, "enter")
	m = run(t, m, cmd)

	card, ok := fake.Board().Card("c0-k0")
	require.True(t, ok)
	assert.Equal(t, "Alpha", card.Title)
}

func TestRename_UnchangedSkipsWrite(t *testing.T) {
	m, fake := newTestModel(t)

	m, _ = press(t, m, "r")
	_, cmd := press(t, m, "enter")

	assert.Nil(t, cmd)
	assert.Empty(t, fake.Writes())
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	m, fake := newTestModel(t)

	m, _ = press(t, m, "j", "d")
	require.Equal(t, state.DeleteConfirmMode, m.ui.Mode())
	assert.Contains(t, m.View().Content, `Delete card "A"?`)

	m, cmd := press(t, m, "n")
	assert.Nil(t, cmd)
	assert.Equal(t, state.NormalMode, m.ui.Mode())
	assert.Empty(t, fake.Writes())

	m, _ = press(t, m, "d")
	m, cmd = press(t, m, "y")
	m = run(t, m, cmd)

	assert.Equal(t, []string{"B", "C"}, titles(m.board(), "c0"))
	assert.Equal(t, []string{"B", "C"}, titles(fake.Board(), "c0"))
	assert.Equal(t, 0, m.ui.SelectedCard())
}

func TestDelete_ColumnWarnsAboutCards(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, "d")
	assert.Contains(t, m.View().Content, "This will also delete 3 card(s).")
}

// ============================================================================
// NOTIFICATIONS
// ============================================================================

func TestNotification_Expires(t *testing.T) {
	m, _ := newTestModel(t)

	cmd := m.notify(state.LevelInfo, "hello")
	require.NotNil(t, cmd)
	n, ok := m.notes.Latest()
	require.True(t, ok)

	m, _ = update(t, m, notificationExpiredMsg{id: n.ID})
	assert.False(t, m.notes.HasAny())
}
