package cmd

import (
	"io"
	"log/slog"

	"github.com/bimmerbailey/kevinify/internal/config"
)

// newLogger returns a text logger on w: errors only by default, info with
// --verbose, everything with --debug.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := slog.LevelError
	switch {
	case cfg.Debug:
		level = slog.LevelDebug
	case cfg.Verbose:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
