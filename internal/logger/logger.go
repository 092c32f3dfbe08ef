// Package logger builds the slog logger shared by both binaries.
package logger

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a slog logger rendered by charmbracelet/log at the given level
// (debug, info, warn or error; anything else means info).
func New(w io.Writer, level string) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		Level:           parseLevel(level),
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})

	return slog.New(handler)
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
