package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "item", cfg.FormatKey)
	assert.Equal(t, "frame", cfg.FrameKey)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, "p4", cfg.P4.Binary)
	assert.False(t, cfg.P4.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"custom key", func(c *Config) { c.FormatKey = "myKey_2" }, true},
		{"key with colon", func(c *Config) { c.FormatKey = "a:b" }, false},
		{"empty key", func(c *Config) { c.FormatKey = "" }, false},
		{"bad frame key", func(c *Config) { c.FrameKey = "fr ame" }, false},
		{"bad color", func(c *Config) { c.Color = "sometimes" }, false},
		{"p4 without binary", func(c *Config) { c.P4.Enabled = true; c.P4.Binary = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seqtool.toml")
	require.NoError(t, os.WriteFile(path, []byte(
		"format_key = \"element\"\nverbose = true\n\n[p4]\nenabled = true\nport = \"perforce:1666\"\n",
	), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "element", cfg.FormatKey)
	assert.Equal(t, "frame", cfg.FrameKey, "unset values keep defaults")
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.P4.Enabled)
	assert.Equal(t, "perforce:1666", cfg.P4.Port)
	assert.Equal(t, "p4", cfg.P4.Binary)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seqtool.toml")
	require.NoError(t, os.WriteFile(path, []byte("color = \"sometimes\"\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
