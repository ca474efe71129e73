package column

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/boardsync/internal/cli"
	"github.com/thenoetrevino/boardsync/internal/models"
)

// MoveCmd returns the column move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <column-id>",
		Short: "Move a column to another column's position",
		Long: `Move a column to the position currently held by --onto, shifting the
columns in between. This is the same reorder a drag in the board view makes.

Examples:
  boardsync column move 3f2a... --onto 9b1c...
`,
		Args: cli.ExactArgs(1),
		RunE: runMove,
	}

	cmd.Flags().String("onto", "", "ID of the column whose position to take (required)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)
	onto, _ := cmd.Flags().GetString("onto")
	columnID := args[0]

	if onto == "" {
		return formatter.Fail(cli.UsageErrorf("--onto is required"))
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
	if _, err := cli.RequireColumn(board, columnID); err != nil {
		return formatter.Fail(err)
	}
	if _, err := cli.RequireColumn(board, onto); err != nil {
		return formatter.Fail(err)
	}

	result, err := cliInstance.Drop(models.ColumnRef(columnID), models.ColumnRef(onto))
	if err != nil {
		return formatter.Fail(err)
	}

	col, _ := cliInstance.App.Board.Column(columnID)
	moved := cli.MoveResult{
		ID:         col.ID,
		Order:      col.Order,
		NoOp:       result.NoOp,
		Changed:    result.Changed,
		Reconciled: result.Reconciled,
	}

	if formatter.Quiet || formatter.JSON {
		return formatter.Success(moved)
	}

	if result.NoOp {
		formatter.Printf("Column '%s' is already in place\n", col.Title)
		return nil
	}
	formatter.Printf("✓ Column '%s' moved to position %d\n", col.Title, col.Order+1)
	return nil
}
