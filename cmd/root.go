// Package cmd assembles the boardsync command tree.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/boardsync/internal/cli"
	"github.com/thenoetrevino/boardsync/internal/cli/card"
	"github.com/thenoetrevino/boardsync/internal/cli/column"
	"github.com/thenoetrevino/boardsync/internal/config"
	"github.com/thenoetrevino/boardsync/internal/launcher"
	"github.com/thenoetrevino/boardsync/internal/logging"
)

// NewRootCmd builds the boardsync command. Without a subcommand it opens the
// interactive board.
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		logCloser  io.Closer
	)

	rootCmd := &cobra.Command{
		Use:   "boardsync",
		Short: "boardsync - a terminal kanban board with drag and drop",
		Long: `boardsync is a kanban board for the terminal. Columns and cards can be
dragged with the mouse or the keyboard; every change is applied locally at
once and then synced to a local sqlite database or a remote boardsync server.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.WithConfigPath(cmd.Context(), configPath)
			if skipSetup(cmd) {
				cmd.SetContext(ctx)
				return nil
			}

			var opts []config.Option
			if configPath != "" {
				opts = append(opts, config.WithPath(configPath))
			}
			cfg, err := config.Load(opts...)
			if err != nil {
				return &cli.ExitError{Code: cli.ExitUsage, Err: fmt.Errorf("failed to load configuration: %w", err)}
			}

			// The terminal belongs to the board and to command output, so
			// logs go to a file.
			closer, err := logging.Init(cfg.Log.Dir, cfg.Log.Level)
			if err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			logCloser = closer

			ctx = cli.WithConfig(ctx, cfg)
			ctx = logging.WithLogger(ctx, logging.Logger)
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				_ = logCloser.Close()
			}
		},
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file (default $XDG_CONFIG_HOME/boardsync/config.yaml)")
	rootCmd.SetFlagErrorFunc(cli.FlagErrorFunc)

	rootCmd.AddCommand(
		tuiCmd(),
		column.ColumnCmd(),
		card.CardCmd(),
		cli.ExportCmd(),
		cli.ShowCmd(),
		cli.SeedCmd(),
		cli.ServeCmd(),
		cli.ConfigCmd(),
	)

	return rootCmd
}

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive board (the default)",
		Args:  cli.ExactArgs(0),
		RunE:  runTUI,
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := cli.ConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	return launcher.Launch(cmd.Context(), cfg)
}

func skipSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[cli.SkipSetupAnnotation] == "true" {
			return true
		}
	}
	return false
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	err := NewRootCmd().ExecuteContext(ctx)
	if err == nil {
		return cli.ExitSuccess
	}

	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || !exitErr.Reported() {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return cli.ExitCodeFor(err)
}
