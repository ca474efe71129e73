package card

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/boardsync/internal/cli"
	"github.com/thenoetrevino/boardsync/internal/models"
)

// MoveCmd returns the card move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <card-id>",
		Short: "Move a card onto another card or column",
		Long: `Move a card the way a drag in the board view would.

--onto-card takes the target card's position, in its column or another one.
--onto-column appends the card to the end of a different column.

Examples:
  # Reorder within a column or insert into another column
  boardsync card move 7c0d... --onto-card 51ae...

  # Append to the end of another column
  boardsync card move 7c0d... --onto-column 9b1c...
`,
		Args: cli.ExactArgs(1),
		RunE: runMove,
	}

	cmd.Flags().String("onto-card", "", "ID of the card whose position to take")
	cmd.Flags().String("onto-column", "", "ID of the column to append to")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)
	ontoCard, _ := cmd.Flags().GetString("onto-card")
	ontoColumn, _ := cmd.Flags().GetString("onto-column")
	cardID := args[0]

	if (ontoCard == "") == (ontoColumn == "") {
		return formatter.Fail(cli.UsageErrorf("exactly one of --onto-card or --onto-column is required"))
	}

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

	var target models.Ref
	if ontoCard != "" {
		if _, err := cli.RequireCard(board, ontoCard); err != nil {
			return formatter.Fail(err)
		}
		target = models.CardRef(ontoCard)
	} else {
		if _, err := cli.RequireColumn(board, ontoColumn); err != nil {
			return formatter.Fail(err)
		}
		target = models.ColumnRef(ontoColumn)
	}

	result, err := cliInstance.Drop(models.CardRef(cardID), target)
	if err != nil {
		return formatter.Fail(err)
	}

	card, _ := cliInstance.App.Board.Card(cardID)
	moved := cli.MoveResult{
		ID:         card.ID,
		ColumnID:   card.ColumnID,
		Order:      card.Order,
		NoOp:       result.NoOp,
		Changed:    result.Changed,
		Reconciled: result.Reconciled,
	}

	if formatter.Quiet || formatter.JSON {
		return formatter.Success(moved)
	}

	if result.NoOp {
		formatter.Printf("Card '%s' is already in place\n", card.Title)
		return nil
	}
	col, _ := cliInstance.App.Board.Column(card.ColumnID)
	formatter.Printf("✓ Card '%s' moved to %s, position %d\n", card.Title, col.Title, card.Order+1)
	return nil
}
