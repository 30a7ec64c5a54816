package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/northwind/catalog-console/app/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
	}
	for in, want := range testCases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "json")

	logger.Info("Product menu option 1 selected")
	logger.Warn("Invalid menu option selected", "choice", "x")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "x", entry["choice"])
}

func TestWithOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := WithOperation(New(&buf, "info", "json"), "command", "Add Product")

	logger.Info("Product added")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Add Product", entry["command"])
	_, err := uuid.Parse(entry["op_id"].(string))
	assert.NoError(t, err)
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "text")

	ctx := NewContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	FromContext(context.Background()).Error("dropped")
	assert.Empty(t, buf.String())
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "northwind.log")

	logger, closeFn, err := Open(config.LogConfig{Level: "info", Format: "text", File: path})
	require.NoError(t, err)
	logger.Info("Program started")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Program started")
}
