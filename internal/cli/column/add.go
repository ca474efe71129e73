package column

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/boardsync/internal/cli"
)

// AddCmd returns the column add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Append a column to the board",
		Long: `Append a new column after the last one.

Examples:
  boardsync column add "Review"

  # Capture the new ID in scripts
  COLUMN_ID=$(boardsync column add "Review" --quiet)
`,
		Args: cli.ExactArgs(1),
		RunE: runAdd,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	if _, err := cliInstance.LoadBoard(); err != nil {
		return formatter.Fail(err)
	}

	col, err := cliInstance.App.Coordinator.CreateColumn(cmd.Context(), args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return formatter.Success(col)
	}

	if formatter.JSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
			"success": true,
			"column":  col,
		})
	}

	formatter.Printf("✓ Column '%s' created successfully (ID: %s)\n", col.Title, col.ID)
	return nil
}
