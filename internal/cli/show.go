package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/boardsync/internal/models"
)

// ShowCmd returns the show command
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the board as markdown",
		Long: `Fetch the board and render it as markdown in the terminal.

Examples:
  boardsync show
  boardsync show --style light
  boardsync show --raw > board.md
`,
		Args: ExactArgs(0),
		RunE: runShow,
	}

	cmd.Flags().String("style", "dark", "glamour style (dark, light, notty, ascii, dracula, ...)")
	cmd.Flags().Int("width", 80, "Word wrap width")
	cmd.Flags().Bool("raw", false, "Print the markdown source without rendering")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	formatter := NewFormatter(cmd)
	style, _ := cmd.Flags().GetString("style")
	width, _ := cmd.Flags().GetInt("width")
	raw, _ := cmd.Flags().GetBool("raw")

	cliInstance, err := GetCLIFromContext(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	board, err := cliInstance.LoadBoard()
	if err != nil {
		return formatter.Fail(err)
	}

	md := BoardMarkdown(board)
	if raw {
		_, err := fmt.Fprint(cmd.OutOrStdout(), md)
		return err
	}

	rendered, err := renderMarkdown(md, style, width)
	if err != nil {
		return formatter.Fail(err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
	return err
}

// BoardMarkdown lays the board out as one section per column with its cards
// as a numbered list
func BoardMarkdown(b models.Board) string {
	var sb strings.Builder
	sb.WriteString("# Board\n")

	columns := b.SortedColumns()
	if len(columns) == 0 {
		sb.WriteString("\n_No columns yet._\n")
		return sb.String()
	}

	for _, col := range columns {
		cards := b.CardsIn(col.ID)
		fmt.Fprintf(&sb, "\n## %s (%d)\n\n", escapeMarkdown(col.Title), len(cards))
		if len(cards) == 0 {
			sb.WriteString("_No cards_\n")
			continue
		}
		for i, card := range cards {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, escapeMarkdown(card.Title))
		}
	}
	return sb.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"[", `\[`,
	"]", `\]`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func renderMarkdown(md, style string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
