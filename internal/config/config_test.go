package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv points the config directory at a temp dir.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig := DirFunc
	DirFunc = func() (string, error) { return dir, nil }
	t.Cleanup(func() { DirFunc = orig })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := testEnv(t)

	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Reviewer)
	assert.Equal(t, "data.json", cfg.Sidecar)
	assert.Equal(t, "light", cfg.Theme)
	assert.False(t, cfg.Dark())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "qcreview.log"), cfg.LogFile)
	assert.Equal(t, DefaultCannedComments, cfg.CannedComments)
	assert.Equal(t, 2, cfg.ZoomInitial)
	assert.Empty(t, cfg.File)
}

func TestLoad_FromSearchPath(t *testing.T) {
	dir := testEnv(t)
	content := `reviewer: alice
theme: dark
log:
  level: debug
canned_comments:
  - Motion
  - Ghosting
zoom:
  initial: 4
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.Reviewer)
	assert.True(t, cfg.Dark())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"Motion", "Ghosting"}, cfg.CannedComments)
	assert.Equal(t, 4, cfg.ZoomInitial)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.File)
}

func TestLoad_EnvOverrides(t *testing.T) {
	testEnv(t)
	t.Setenv("QCREVIEW_REVIEWER", "bob")
	t.Setenv("QCREVIEW_LOG_LEVEL", "warn")

	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, "bob", cfg.Reviewer)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	dir := testEnv(t)
	_, err := LoadFile(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := map[string]string{
		"theme":     "theme: sepia\n",
		"log level": "log:\n  level: loud\n",
		"zoom":      "zoom:\n  initial: 7\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := testEnv(t)
			path := filepath.Join(dir, "custom.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			_, err := LoadFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validate config")
		})
	}
}
