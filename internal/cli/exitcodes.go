package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/boardsync/internal/models"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: store errors, network errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: missing arguments, invalid flag combinations,
	// or when the user needs to provide different arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested column or card was not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: a board that fails its own consistency checks.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: empty or overlong titles.
	ExitValidation = 5
)

// ExitError carries the process exit code for a failed command
type ExitError struct {
	Code int
	Err  error

	reported bool
}

// Reported tells whether the error was already shown to the user
func (e *ExitError) Reported() bool {
	return e.reported
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// UsageErrorf builds an ExitError with ExitUsage
func UsageErrorf(format string, args ...any) error {
	return &ExitError{Code: ExitUsage, Err: fmt.Errorf(format, args...)}
}

// ExitCodeFor maps an error to the exit code the process should return
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	switch {
	case errors.Is(err, models.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, models.ErrValidation):
		return ExitValidation
	default:
		return ExitError
	}
}

// ErrorCode is the machine-readable code reported in JSON errors
func ErrorCode(err error) string {
	switch ExitCodeFor(err) {
	case ExitUsage:
		return "USAGE_ERROR"
	case ExitNotFound:
		return "NOT_FOUND"
	case ExitValidation:
		return "VALIDATION_ERROR"
	case ExitDataErr:
		return "DATA_ERROR"
	}
	if models.IsFetchError(err) {
		return "FETCH_ERROR"
	}
	return "ERROR"
}

// ExactArgs is cobra.ExactArgs reporting ExitUsage
func ExactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &ExitError{Code: ExitUsage, Err: err}
		}
		return nil
	}
}

// FlagErrorFunc reports flag parsing failures with ExitUsage
func FlagErrorFunc(_ *cobra.Command, err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}
