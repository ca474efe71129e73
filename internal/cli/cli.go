// Package cli holds the pieces shared by the boardsync subcommands: the
// application handle, output formatting and exit codes.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/boardsync/internal/app"
	"github.com/thenoetrevino/boardsync/internal/config"
	"github.com/thenoetrevino/boardsync/internal/models"
)

// CLI represents the CLI application context
type CLI struct {
	App *app.App // Application container with services
	ctx context.Context

	// shared is set when the CLI was injected rather than built, so Close
	// leaves the app open for the next command
	shared bool
}

// NewCLI builds the application from cfg
func NewCLI(ctx context.Context, cfg *config.Config, opts ...app.Option) (*CLI, error) {
	application, err := app.New(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}

	return &CLI{
		App: application,
		ctx: ctx,
	}, nil
}

// LoadBoard fetches the whole board into the in-memory store
func (c *CLI) LoadBoard() (models.Board, error) {
	if err := c.App.Coordinator.Load(c.ctx); err != nil {
		return models.Board{}, err
	}
	return c.App.Board.Snapshot(), nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if c.shared {
		return nil
	}
	return c.App.Close()
}

// CloseQuietly closes the CLI and logs any failure
func (c *CLI) CloseQuietly() {
	if err := c.Close(); err != nil {
		slog.Error("Error closing CLI", "error", err)
	}
}
