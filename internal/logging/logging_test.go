package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", "json", &buf)

	logger.Info("board loaded", "columns", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "board loaded", entry["msg"])
	assert.EqualValues(t, 3, entry["columns"])
}

func TestNew_InfoLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", "text", &buf)

	logger.Debug("hidden")

	assert.Empty(t, buf.String())
}

func TestNew_RedactsToken(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", "json", &buf)

	type remote struct {
		BaseURL string
		Token   string
	}
	logger.Info("remote configured",
		"token", "s3cr3t",
		"remote", remote{BaseURL: "http://x", Token: "hunter2"},
	)

	out := buf.String()
	assert.NotContains(t, out, "s3cr3t")
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "http://x")
	assert.Contains(t, out, "[REDACTED]")
}

func TestNew_RedactsBearerValue(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", "text", &buf)

	logger.Warn("rejected", "header", "Bearer abc.def-123")

	assert.False(t, strings.Contains(buf.String(), "abc.def-123"))
}

func TestInit_WritesToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	closer, err := Init(dir, "debug")
	require.NoError(t, err)
	defer closer.Close()

	Logger.Info("hello from test")

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", "text", &buf)

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))
}
