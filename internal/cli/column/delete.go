package column

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/boardsync/internal/cli"
)

// DeleteCmd returns the column delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <column-id>",
		Short: "Delete a column and its cards",
		Long: `Delete a column by ID (requires confirmation unless --force or --quiet).

Warning: Deleting a column also deletes every card in it.

Examples:
  # Delete with confirmation
  boardsync column delete 3f2a...

  # Skip confirmation
  boardsync column delete 3f2a... --force
`,
		Args: cli.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)
	force, _ := cmd.Flags().GetBool("force")
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
	col, err := cli.RequireColumn(board, columnID)
	if err != nil {
		return formatter.Fail(err)
	}
	cardCount := len(board.CardsIn(columnID))

	if !force && !formatter.Quiet && !formatter.JSON {
		if cardCount > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "⚠ Warning: this will also delete %d card(s)\n", cardCount)
		}
		if !cli.Confirm(cmd, fmt.Sprintf("Delete column '%s'?", col.Title)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}
	}

	if err := cliInstance.App.Coordinator.DeleteColumn(cmd.Context(), columnID); err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
			"success":       true,
			"column_id":     columnID,
			"cards_deleted": cardCount,
		})
	}

	formatter.Printf("✓ Column '%s' deleted successfully\n", col.Title)
	return nil
}
