package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/boardsync/internal/models"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool

	Out io.Writer // defaults to os.Stdout
	Err io.Writer // defaults to os.Stderr
}

// AddOutputFlags registers the agent-friendly --json and --quiet flags
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

// NewFormatter reads the output flags of cmd and writes to its streams
func NewFormatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{
		JSON:  jsonOutput,
		Quiet: quietMode,
		Out:   cmd.OutOrStdout(),
		Err:   cmd.ErrOrStderr(),
	}
}

func (f *OutputFormatter) out() io.Writer {
	if f.Out == nil {
		return os.Stdout
	}
	return f.Out
}

func (f *OutputFormatter) err() io.Writer {
	if f.Err == nil {
		return os.Stderr
	}
	return f.Err
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		if idGetter, ok := data.(interface{ GetID() string }); ok {
			_, err := fmt.Fprintln(f.out(), idGetter.GetID())
			return err
		}
		return nil
	}

	if f.JSON {
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	return f.prettyPrint(data)
}

// IDs prints one id per line, the quiet form of a list
func (f *OutputFormatter) IDs(ids []string) error {
	for _, id := range ids {
		if _, err := fmt.Fprintln(f.out(), id); err != nil {
			return err
		}
	}
	return nil
}

// Printf writes human-readable output; it is silent in JSON and quiet modes
func (f *OutputFormatter) Printf(format string, args ...any) {
	if f.JSON || f.Quiet {
		return
	}
	fmt.Fprintf(f.out(), format, args...)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	fmt.Fprintf(f.err(), "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(f.err(), "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

// Fail reports err and returns it wrapped with its exit code
func (f *OutputFormatter) Fail(err error) error {
	if fmtErr := f.ErrorWithSuggestion(ErrorCode(err), err.Error(), suggestionFor(err)); fmtErr != nil {
		fmt.Fprintf(f.err(), "Error formatting error message: %v\n", fmtErr)
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		exitErr.reported = true
		return err
	}
	return &ExitError{Code: ExitCodeFor(err), Err: err, reported: true}
}

func suggestionFor(err error) string {
	switch {
	case models.IsFetchError(err):
		return "Check the store settings with: boardsync config path"
	case errors.Is(err, models.ErrNotFound):
		return "List ids with: boardsync column list / boardsync card list"
	case errors.Is(err, models.ErrTitleTooLong):
		return fmt.Sprintf("Use at most %d characters", models.MaxTitleLength)
	}
	return ""
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data any) error {
	var err error
	switch v := data.(type) {
	case models.Column:
		_, err = fmt.Fprintf(f.out(), "✓ Column %q (ID: %s)\n", v.Title, v.ID)
	case models.Card:
		_, err = fmt.Fprintf(f.out(), "✓ Card %q (ID: %s)\n", v.Title, v.ID)
	case fmt.Stringer:
		_, err = fmt.Fprintln(f.out(), v.String())
	default:
		_, err = fmt.Fprintf(f.out(), "%+v\n", data)
	}
	return err
}
