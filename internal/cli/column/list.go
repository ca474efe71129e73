package column

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/boardsync/internal/cli"
)

// ListCmd returns the column list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List columns in board order",
		Long: `List all columns in board order.

Examples:
  # Human-readable list
  boardsync column list

  # JSON output for agents
  boardsync column list --json

  # Quiet mode (one ID per line)
  boardsync column list --quiet
`,
		Args: cli.ExactArgs(0),
		RunE: runList,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

type columnEntry struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Order     int    `json:"order"`
	CardCount int    `json:"card_count"`
}

func runList(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	board, err := cliInstance.LoadBoard()
	if err != nil {
		return formatter.Fail(err)
	}

	columns := board.SortedColumns()

	if formatter.Quiet {
		ids := make([]string, len(columns))
		for i, col := range columns {
			ids[i] = col.ID
		}
		return formatter.IDs(ids)
	}

	if formatter.JSON {
		entries := make([]columnEntry, len(columns))
		for i, col := range columns {
			entries[i] = columnEntry{
				ID:        col.ID,
				Title:     col.Title,
				Order:     col.Order,
				CardCount: len(board.CardsIn(col.ID)),
			}
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
			"success": true,
			"columns": entries,
		})
	}

	if len(columns) == 0 {
		formatter.Printf("No columns found\n")
		return nil
	}

	formatter.Printf("Columns:\n")
	for i, col := range columns {
		formatter.Printf("  %d. %s (ID: %s) - %d card(s)\n", i+1, col.Title, col.ID, len(board.CardsIn(col.ID)))
	}
	return nil
}
