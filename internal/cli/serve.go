package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/boardsync/internal/app"
	"github.com/thenoetrevino/boardsync/internal/logging"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local board over the REST API",
		Long: `Serve the local sqlite board over HTTP so that other boardsync clients
can use it with store.driver: http. Stops on SIGINT or SIGTERM.

Examples:
  boardsync serve
  boardsync serve --addr 0.0.0.0:8420
`,
		Args: ExactArgs(0),
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (overrides server.addr)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	formatter := NewFormatter(cmd)
	ctx := cmd.Context()

	cfg, err := ConfigFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return formatter.Fail(&ExitError{Code: ExitUsage, Err: err})
	}

	// The server owns the terminal's stderr, unlike the other commands
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	ctx = logging.WithLogger(ctx, logger)

	cliInstance, err := GetCLIFromContext(WithConfig(ctx, cfg))
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	srv, err := cliInstance.App.Server()
	if err != nil {
		if errors.Is(err, app.ErrServeRequiresSQLite) {
			return formatter.Fail(&ExitError{Code: ExitUsage, Err: err})
		}
		return formatter.Fail(err)
	}
	return srv.Run(ctx)
}
