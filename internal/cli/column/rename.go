package column

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/boardsync/internal/cli"
)

// RenameCmd returns the column rename subcommand
func RenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <column-id> <title>",
		Short: "Rename a column",
		Long: `Change a column's title. Titles are trimmed and limited to 100 characters.

Examples:
  boardsync column rename 3f2a... "Doing"
`,
		Args: cli.ExactArgs(2),
		RunE: runRename,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)
	columnID := args[0]

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	board, err := cliInstance.LoadBoard()
	if err != nil {
		return formatter.Fail(err)
	}
	if _, err := cli.RequireColumn(board, columnID); err != nil {
		return formatter.Fail(err)
	}

	if err := cliInstance.App.Coordinator.RenameColumn(cmd.Context(), columnID, args[1]); err != nil {
		return formatter.Fail(err)
	}
	col, _ := cliInstance.App.Board.Column(columnID)

	if formatter.Quiet {
		return formatter.Success(col)
	}

	if formatter.JSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
			"success": true,
			"column":  col,
		})
	}

	formatter.Printf("✓ Column %s renamed to '%s'\n", col.ID, col.Title)
	return nil
}
