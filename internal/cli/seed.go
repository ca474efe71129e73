package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/boardsync/internal/database"
)

// errNeedsSQLite is returned by commands that work on the local database only
var errNeedsSQLite = errors.New("this command needs the sqlite store driver")

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the default columns in an empty local board",
		Long: `Create "To Do", "In Progress" and "Done" when the local board has no
columns. With --samples a few example cards are added to empty columns.

Examples:
  boardsync seed
  boardsync seed --samples
`,
		Args: ExactArgs(0),
		RunE: runSeed,
	}

	cmd.Flags().Bool("samples", false, "Also add example cards")
	AddOutputFlags(cmd)

	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	formatter := NewFormatter(cmd)
	samples, _ := cmd.Flags().GetBool("samples")
	ctx := cmd.Context()

	cliInstance, err := GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	db := cliInstance.App.DB()
	if db == nil {
		return formatter.Fail(&ExitError{Code: ExitUsage, Err: errNeedsSQLite})
	}

	seeded, err := database.SeedDefaultColumns(ctx, db)
	if err != nil {
		return formatter.Fail(err)
	}
	cards := 0
	if samples {
		if cards, err = database.SeedSampleCards(ctx, db); err != nil {
			return formatter.Fail(err)
		}
	}

	if formatter.Quiet {
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
			"success":       true,
			"columns_added": seeded,
			"cards_added":   cards,
		})
	}

	if seeded {
		formatter.Printf("✓ Created %d default columns\n", len(database.DefaultColumns))
	} else {
		formatter.Printf("Board already has columns; defaults skipped\n")
	}
	if samples {
		formatter.Printf("✓ Added %d sample card(s)\n", cards)
	}
	return nil
}
