package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	boardcli "github.com/thenoetrevino/boardsync/internal/cli"
)

// Result is the captured outcome of one command run
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// ExecuteCLICommand runs cmd with args against c and captures its output.
// Stdin is empty unless ExecuteCLICommandWithInput is used.
func ExecuteCLICommand(t *testing.T, c *boardcli.CLI, cmd *cobra.Command, args ...string) Result {
	t.Helper()
	return ExecuteCLICommandWithInput(t, c, cmd, "", args...)
}

// ExecuteCLICommandWithInput is ExecuteCLICommand with stdin set to input
func ExecuteCLICommandWithInput(t *testing.T, c *boardcli.CLI, cmd *cobra.Command, input string, args ...string) Result {
	t.Helper()

	if c == nil {
		t.Fatal("CLI cannot be nil - SetupCLITest must be called first")
	}

	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetFlagErrorFunc(boardcli.FlagErrorFunc)

	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	ctx := boardcli.WithCLI(context.Background(), c)
	err := cmd.ExecuteContext(ctx)

	return Result{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()

	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}

	return result
}
