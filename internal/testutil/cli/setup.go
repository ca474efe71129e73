// Package cli holds helpers for the command tests. It lives apart from
// testutil so that store tests can import testutil without pulling in cobra.
package cli

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/boardsync/internal/app"
	boardcli "github.com/thenoetrevino/boardsync/internal/cli"
	"github.com/thenoetrevino/boardsync/internal/config"
	"github.com/thenoetrevino/boardsync/internal/models"
	"github.com/thenoetrevino/boardsync/internal/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetupCLITest returns a CLI over a fake store holding b, together with the
// store so tests can inject failures and inspect writes
func SetupCLITest(t *testing.T, b models.Board) (*testutil.FakeStore, *boardcli.CLI) {
	t.Helper()

	store := testutil.NewFakeStore(b)
	c, err := boardcli.NewCLI(context.Background(), config.Default(),
		app.WithStore(store),
		app.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("Failed to create CLI: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
	})
	return store, c
}

// SetupSQLiteCLITest returns a CLI over an empty sqlite database in a temp dir
func SetupSQLiteCLITest(t *testing.T) *boardcli.CLI {
	t.Helper()

	cfg := config.Default()
	cfg.Store.Path = filepath.Join(t.TempDir(), "board.db")
	cfg.Store.SeedDefaults = false

	c, err := boardcli.NewCLI(context.Background(), cfg, app.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("Failed to create CLI: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
	})
	return c
}
