package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/boardsync/internal/config"
)

// SkipSetupAnnotation marks commands that run without loading the
// configuration or opening the log file
const SkipSetupAnnotation = "boardsync/skip-setup"

// ConfigCmd returns the config parent command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
		// config init must work even when the current file does not load
		Annotations: map[string]string{SkipSetupAnnotation: "true"},
	}

	cmd.AddCommand(configPathCmd())
	cmd.AddCommand(configInitCmd())

	return cmd
}

func configPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the configuration file is read from",
		Args:  ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ConfigPath(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}

func configInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Long: `Write the built-in defaults to the configuration file so they can be
edited. An existing file is left alone unless --force is given.

Examples:
  boardsync config init
  boardsync --config ./boardsync.yaml config init --force
`,
		Args: ExactArgs(0),
		RunE: runConfigInit,
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	formatter := NewFormatter(cmd)
	force, _ := cmd.Flags().GetBool("force")

	path, err := ConfigPath(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}

	if _, err := os.Stat(path); err == nil && !force {
		if fmtErr := formatter.ErrorWithSuggestion("CONFIG_EXISTS",
			fmt.Sprintf("%s already exists", path),
			"Pass --force to overwrite it"); fmtErr != nil {
			return fmtErr
		}
		return &ExitError{Code: ExitUsage, Err: fmt.Errorf("%s already exists", path), reported: true}
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return formatter.Fail(err)
	}

	if err := config.Default().SaveTo(path); err != nil {
		return formatter.Fail(fmt.Errorf("failed to write config: %w", err))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote default configuration to %s\n", path)
	return nil
}
