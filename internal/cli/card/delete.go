package card

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/boardsync/internal/cli"
)

// DeleteCmd returns the card delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <card-id>",
		Short: "Delete a card",
		Long: `Delete a card by ID (requires confirmation unless --force or --quiet).
The cards below it move up to close the gap.

Examples:
  boardsync card delete 7c0d...
  boardsync card delete 7c0d... --force
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
	cardID := args[0]

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	board, err := cliInstance.LoadBoard()
	if err != nil {
		return formatter.Fail(err)
	}
	card, err := cli.RequireCard(board, cardID)
	if err != nil {
		return formatter.Fail(err)
	}

	if !force && !formatter.Quiet && !formatter.JSON {
		if !cli.Confirm(cmd, fmt.Sprintf("Delete card '%s'?", card.Title)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}
	}

	if err := cliInstance.App.Coordinator.DeleteCard(cmd.Context(), cardID); err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
			"success": true,
			"card_id": cardID,
		})
	}

	formatter.Printf("✓ Card '%s' deleted successfully\n", card.Title)
	return nil
}
