// Package launcher starts the interactive board.
package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/boardsync/internal/app"
	"github.com/thenoetrevino/boardsync/internal/config"
	"github.com/thenoetrevino/boardsync/internal/logging"
	"github.com/thenoetrevino/boardsync/internal/tui"
)

// shutdownGrace is how long a cancelled program gets to restore the terminal
const shutdownGrace = 5 * time.Second

// Launch runs the board TUI until the user quits or ctx is cancelled.
// The caller is expected to have pointed logging at a file, since the
// terminal belongs to the program.
func Launch(ctx context.Context, cfg *config.Config) error {
	application, err := app.New(ctx, cfg, app.WithLogger(logging.FromContext(ctx)))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("error closing application", "error", err)
		}
	}()

	model := tui.New(ctx, application.Coordinator, cfg)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("error running program: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, cleaning up")
		select {
		case <-errChan:
		case <-time.After(shutdownGrace):
			slog.Warn("program did not exit within the grace period")
		}
	}

	return nil
}
