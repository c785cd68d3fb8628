// Package logging provides the leveled logger for the seqtool CLI. The
// core library packages stay log-free and return errors; logging happens at
// the command layer.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/burninghelix123/sequences/internal/config"
)

// Logger wraps the leveled logger together with its optional file sink.
type Logger struct {
	*log.Logger
	file *os.File
}

// New builds a logger from the configuration. Verbose lowers the level to
// debug; LogFile mirrors output into a file; Color forces or suppresses
// ANSI sequences (auto lets the terminal detection decide, honoring
// NO_COLOR).
func New(cfg *config.Config) (*Logger, error) {
	var w io.Writer = os.Stderr
	var f *os.File
	if cfg.LogFile != "" {
		var err error
		f, err = os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		w = io.MultiWriter(os.Stderr, f)
	}

	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}
	l := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})
	switch cfg.Color {
	case config.ColorAlways:
		l.SetColorProfile(termenv.ANSI256)
	case config.ColorNever:
		l.SetColorProfile(termenv.Ascii)
	}
	return &Logger{Logger: l, file: f}, nil
}

// Close flushes and closes the file sink, when one is open.
func (lg *Logger) Close() error {
	if lg.file == nil {
		return nil
	}
	return lg.file.Close()
}
