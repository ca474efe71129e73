package card

import (
	"encoding/json"
	"slices"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/boardsync/internal/cli"
	"github.com/thenoetrevino/boardsync/internal/models"
)

// ListCmd returns the card list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cards, grouped by column",
		Long: `List cards in board order. With --column only that column's cards are
fetched.

Examples:
  # Every card, grouped by column
  boardsync card list

  # One column
  boardsync card list --column 3f2a...

  # Quiet mode (one ID per line)
  boardsync card list --quiet
`,
		Args: cli.ExactArgs(0),
		RunE: runList,
	}

	cmd.Flags().String("column", "", "Only list cards in this column")
	cli.AddOutputFlags(cmd)

	return cmd
}

type columnCards struct {
	Column models.Column `json:"column"`
	Cards  []models.Card `json:"cards"`
}

func runList(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)
	columnID, _ := cmd.Flags().GetString("column")

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	var groups []columnCards
	if columnID != "" {
		group, err := fetchColumn(cmd, cliInstance, columnID)
		if err != nil {
			return formatter.Fail(err)
		}
		groups = []columnCards{group}
	} else {
		board, err := cliInstance.LoadBoard()
		if err != nil {
			return formatter.Fail(err)
		}
		for _, col := range board.SortedColumns() {
			groups = append(groups, columnCards{Column: col, Cards: board.CardsIn(col.ID)})
		}
	}

	if formatter.Quiet {
		var ids []string
		for _, g := range groups {
			for _, card := range g.Cards {
				ids = append(ids, card.ID)
			}
		}
		return formatter.IDs(ids)
	}

	if formatter.JSON {
		if groups == nil {
			groups = []columnCards{}
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
			"success": true,
			"columns": groups,
		})
	}

	if len(groups) == 0 {
		formatter.Printf("No columns found\n")
		return nil
	}
	for _, g := range groups {
		formatter.Printf("%s (%d)\n", g.Column.Title, len(g.Cards))
		if len(g.Cards) == 0 {
			formatter.Printf("  No cards\n")
			continue
		}
		for i, card := range g.Cards {
			formatter.Printf("  %d. %s (ID: %s)\n", i+1, card.Title, card.ID)
		}
	}
	return nil
}

// fetchColumn reads one column straight from the store without loading the
// rest of the board
func fetchColumn(cmd *cobra.Command, c *cli.CLI, columnID string) (columnCards, error) {
	ctx := cmd.Context()
	col, err := c.App.Store.GetColumn(ctx, columnID)
	if err != nil {
		return columnCards{}, err
	}
	cards, err := c.App.Store.ListCardsByColumn(ctx, columnID)
	if err != nil {
		return columnCards{}, err
	}
	slices.SortStableFunc(cards, func(a, b models.Card) int {
		return a.Order - b.Order
	})
	if cards == nil {
		cards = []models.Card{}
	}
	return columnCards{Column: *col, Cards: cards}, nil
}
