package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestNew_FileAndStderr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "qcreview.log")
	var stderr bytes.Buffer

	logger, closer, err := New(Options{File: path, Level: "info", Stderr: &stderr})
	require.NoError(t, err)

	logger.Info("sidecar exported", "path", "data.json")
	logger.Debug("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sidecar exported")
	assert.Contains(t, string(data), "path=data.json")
	assert.NotContains(t, string(data), "hidden")

	assert.Contains(t, stderr.String(), "sidecar exported")
	assert.NotContains(t, stderr.String(), "\x1b[", "buffers never get colors")
}

func TestNew_TUIWritesFileOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qcreview.log")
	var stderr bytes.Buffer

	logger, closer, err := New(Options{File: path, TUI: true, Stderr: &stderr})
	require.NoError(t, err)
	logger.With("view", "reviewer").Warn("import failed")
	require.NoError(t, closer.Close())

	assert.Empty(t, stderr.String())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "view=reviewer")
}

func TestNew_NoSinks(t *testing.T) {
	logger, closer, err := New(Options{TUI: true})
	require.NoError(t, err)
	logger.Error("dropped")
	assert.NoError(t, closer.Close())
}

func TestFanout_GroupsReachEveryHandler(t *testing.T) {
	var a, b bytes.Buffer
	h := &fanout{handlers: []slog.Handler{
		slog.NewTextHandler(&a, nil),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	}}
	logger := slog.New(h).WithGroup("review")
	logger.Info("step", "index", 1)
	logger.Error("boom")

	assert.Contains(t, a.String(), "review.index=1")
	assert.NotContains(t, b.String(), "step")
	assert.Contains(t, b.String(), "boom")
}
