// Package config holds the runtime configuration for the seqtool CLI:
// defaults, validation, and loading from an optional config file plus
// SEQTOOL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/viper"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config is the full runtime configuration.
type Config struct {
	// FormatKey is the placeholder key for plain and file sequences.
	FormatKey string `mapstructure:"format_key"`

	// FrameKey is the placeholder key for image sequences.
	FrameKey string `mapstructure:"frame_key"`

	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`

	// Color selects ANSI color output.
	Color ColorMode `mapstructure:"color"`

	// LogFile, when set, mirrors log output into a file.
	LogFile string `mapstructure:"log_file"`

	// Perforce settings; Enabled turns the provider on.
	P4 P4Config `mapstructure:"p4"`
}

// P4Config configures the Perforce provider.
type P4Config struct {
	Enabled bool   `mapstructure:"enabled"`
	Binary  string `mapstructure:"binary"`
	Port    string `mapstructure:"port"`
	User    string `mapstructure:"user"`
	Client  string `mapstructure:"client"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		FormatKey: "item",
		FrameKey:  "frame",
		Color:     ColorAuto,
		P4: P4Config{
			Binary: "p4",
		},
	}
}

// Load reads the configuration: defaults, then the config file (the given
// path, or seqtool.toml in the user config dir when path is empty), then
// SEQTOOL_* environment variables. A missing file is not an error unless it
// was named explicitly.
func Load(path string) (Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("format_key", def.FormatKey)
	v.SetDefault("frame_key", def.FrameKey)
	v.SetDefault("verbose", def.Verbose)
	v.SetDefault("color", string(def.Color))
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("p4.enabled", def.P4.Enabled)
	v.SetDefault("p4.binary", def.P4.Binary)
	v.SetDefault("p4.port", def.P4.Port)
	v.SetDefault("p4.user", def.P4.User)
	v.SetDefault("p4.client", def.P4.Client)

	v.SetEnvPrefix("SEQTOOL")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if dir, err := os.UserConfigDir(); err == nil {
		v.SetConfigFile(filepath.Join(dir, "seqtool", "seqtool.toml"))
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Keys must be usable inside a "{key:04d}" placeholder.
var keyPattern = regexp.MustCompile(`^\w+$`)

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if !keyPattern.MatchString(c.FormatKey) {
		return fmt.Errorf("format_key %q: must be letters, digits or underscores", c.FormatKey)
	}
	if !keyPattern.MatchString(c.FrameKey) {
		return fmt.Errorf("frame_key %q: must be letters, digits or underscores", c.FrameKey)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color %q: must be auto, always or never", c.Color)
	}
	if c.P4.Enabled && c.P4.Binary == "" {
		return fmt.Errorf("p4.binary must be set when p4 is enabled")
	}
	return nil
}
