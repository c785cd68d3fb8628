package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burninghelix123/sequences/internal/config"
)

func TestFileSink(t *testing.T) {
	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "seqtool.log")
	cfg.Color = config.ColorNever

	lg, err := New(&cfg)
	require.NoError(t, err)
	lg.Info("renamed", "moves", 3)
	require.NoError(t, lg.Close())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "renamed")
	assert.Contains(t, string(data), "moves")
}

func TestVerboseLevel(t *testing.T) {
	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "seqtool.log")
	cfg.Color = config.ColorNever

	lg, err := New(&cfg)
	require.NoError(t, err)
	lg.Debug("hidden")
	require.NoError(t, lg.Close())
	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "hidden"), "debug suppressed by default")

	cfg.Verbose = true
	cfg.LogFile = filepath.Join(t.TempDir(), "verbose.log")
	lg, err = New(&cfg)
	require.NoError(t, err)
	lg.Debug("visible")
	require.NoError(t, lg.Close())
	data, err = os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
}

func TestNoFileSink(t *testing.T) {
	cfg := config.Default()
	lg, err := New(&cfg)
	require.NoError(t, err)
	assert.NoError(t, lg.Close())
}
