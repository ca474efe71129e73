// Command boardd serves a local boardsync database over the REST API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/boardsync/internal/app"
	"github.com/thenoetrevino/boardsync/internal/config"
	"github.com/thenoetrevino/boardsync/internal/logging"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	if err := newCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "boardd: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func newCmd() *cobra.Command {
	var configPath, addr string

	cmd := &cobra.Command{
		Use:          "boardd",
		Short:        "Serve a local boardsync database over HTTP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, addr)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/boardsync/config.yaml)")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")

	return cmd
}

func run(ctx context.Context, configPath, addr string) error {
	var opts []config.Option
	if configPath != "" {
		opts = append(opts, config.WithPath(configPath))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	// boardd always serves the local database
	cfg.Store.Driver = config.DriverSQLite

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	application, err := app.New(ctx, cfg, app.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("error closing application", "error", err)
		}
	}()

	srv, err := application.Server()
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("boardd starting", "addr", srv.Addr(), "db", cfg.Store.Path, "pid", os.Getpid())
	if err := srv.Run(ctx); err != nil {
		return err
	}
	logger.Info("boardd shutting down gracefully")
	return nil
}
