package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/boardsync/internal/coordinator"
	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/tui/state"
)

// opTimeout bounds one coordinator call, reconciliation included
const opTimeout = 30 * time.Second

// boardLoadedMsg reports the end of a fetch
type boardLoadedMsg struct {
	err error
}

// dropDoneMsg reports the end of a committed drop
type dropDoneMsg struct {
	dragged models.Ref
	result  coordinator.Result
	err     error
}

// opDoneMsg reports the end of an add, rename or delete
type opDoneMsg struct {
	action string
	ref    models.Ref
	err    error
}

// notificationExpiredMsg removes a notification after its TTL
type notificationExpiredMsg struct {
	id int
}

func loadCmd(ctx context.Context, coord *coordinator.Coordinator, reload bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()
		if reload {
			return boardLoadedMsg{err: coord.Reload(ctx)}
		}
		return boardLoadedMsg{err: coord.Load(ctx)}
	}
}

// commitCmd persists a drop that was already applied to the board
func commitCmd(ctx context.Context, coord *coordinator.Coordinator, dragged models.Ref, staged coordinator.Staged) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()
		result, err := coord.Commit(ctx, staged)
		return dropDoneMsg{dragged: dragged, result: result, err: err}
	}
}

func createColumnCmd(ctx context.Context, coord *coordinator.Coordinator, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()
		col, err := coord.CreateColumn(ctx, title)
		return opDoneMsg{action: "add column", ref: models.ColumnRef(col.ID), err: err}
	}
}

func createCardCmd(ctx context.Context, coord *coordinator.Coordinator, columnID, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()
		card, err := coord.CreateCard(ctx, columnID, title)
		return opDoneMsg{action: "add card", ref: models.CardRef(card.ID), err: err}
	}
}

func renameCmd(ctx context.Context, coord *coordinator.Coordinator, ref models.Ref, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()
		var err error
		if ref.Kind == models.KindColumn {
			err = coord.RenameColumn(ctx, ref.ID, title)
		} else {
			err = coord.RenameCard(ctx, ref.ID, title)
		}
		return opDoneMsg{action: "rename " + ref.Kind.String(), ref: ref, err: err}
	}
}

func deleteCmd(ctx context.Context, coord *coordinator.Coordinator, ref models.Ref) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()
		var err error
		if ref.Kind == models.KindColumn {
			err = coord.DeleteColumn(ctx, ref.ID)
		} else {
			err = coord.DeleteCard(ctx, ref.ID)
		}
		return opDoneMsg{action: "delete " + ref.Kind.String(), err: err}
	}
}

func expireCmd(id int) tea.Cmd {
	return tea.Tick(state.NotificationTTL, func(time.Time) tea.Msg {
		return notificationExpiredMsg{id: id}
	})
}
