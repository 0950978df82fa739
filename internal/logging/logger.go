// Package logging builds the process slog.Logger from configuration.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rickgao/verf-report/internal/config"
)

// New builds a slog.Logger writing to stdout according to the logging config.
func New(cfg config.LoggingConfig) *slog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter builds a slog.Logger writing to w.
func NewWithWriter(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.IncludeCaller,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
