package card

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/boardsync/internal/cli"
)

// AddCmd returns the card add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <column-id> <title>",
		Short: "Append a card to a column",
		Long: `Append a new card to the end of a column.

Examples:
  boardsync card add 3f2a... "Write release notes"

  # Capture the new ID in scripts
  CARD_ID=$(boardsync card add 3f2a... "Write release notes" --quiet)
`,
		Args: cli.ExactArgs(2),
		RunE: runAdd,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)
	columnID := args[0]

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	if _, err := cliInstance.LoadBoard(); err != nil {
		return formatter.Fail(err)
	}

	card, err := cliInstance.App.Coordinator.CreateCard(cmd.Context(), columnID, args[1])
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return formatter.Success(card)
	}

	if formatter.JSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
			"success": true,
			"card":    card,
		})
	}

	col, _ := cliInstance.App.Board.Column(columnID)
	formatter.Printf("✓ Card '%s' created successfully (ID: %s)\n", card.Title, card.ID)
	formatter.Printf("  Column: %s, position %d\n", col.Title, card.Order+1)
	return nil
}
