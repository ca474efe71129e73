package card

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/boardsync/internal/cli"
)

// RenameCmd returns the card rename subcommand
func RenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <card-id> <title>",
		Short: "Rename a card",
		Long: `Change a card's title. Titles are trimmed and limited to 100 characters.

Examples:
  boardsync card rename 7c0d... "Ship it"
`,
		Args: cli.ExactArgs(2),
		RunE: runRename,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)
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
	if _, err := cli.RequireCard(board, cardID); err != nil {
		return formatter.Fail(err)
	}

	if err := cliInstance.App.Coordinator.RenameCard(cmd.Context(), cardID, args[1]); err != nil {
		return formatter.Fail(err)
	}
	card, _ := cliInstance.App.Board.Card(cardID)

	if formatter.Quiet {
		return formatter.Success(card)
	}

	if formatter.JSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
			"success": true,
			"card":    card,
		})
	}

	formatter.Printf("✓ Card %s renamed to '%s'\n", card.ID, card.Title)
	return nil
}
