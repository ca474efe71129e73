package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/boardsync/internal/models"
)

// ExportCmd returns the export command
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the whole board as YAML",
		Long: `Fetch the board and print it as YAML, columns and cards in board order.

Examples:
  boardsync export > board.yaml
  boardsync export --output board.yaml
`,
		Args: ExactArgs(0),
		RunE: runExport,
	}

	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	formatter := NewFormatter(cmd)
	output, _ := cmd.Flags().GetString("output")

	cliInstance, err := GetCLIFromContext(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	board, err := cliInstance.LoadBoard()
	if err != nil {
		return formatter.Fail(err)
	}
	if err := board.Validate(); err != nil {
		return formatter.Fail(&ExitError{Code: ExitDataErr, Err: fmt.Errorf("store returned an inconsistent board: %w", err)})
	}

	data, err := yaml.Marshal(ordered(board))
	if err != nil {
		return formatter.Fail(fmt.Errorf("failed to encode board: %w", err))
	}

	if output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return formatter.Fail(fmt.Errorf("failed to write %s: %w", output, err))
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Board exported to %s\n", output)
	return nil
}

// ordered returns b with columns sorted and each column's cards following
// it in rank order
func ordered(b models.Board) models.Board {
	out := models.Board{Columns: b.SortedColumns()}
	for _, col := range out.Columns {
		out.Cards = append(out.Cards, b.CardsIn(col.ID)...)
	}
	return out
}
