// Package logging builds the slog logger used by the shipcard binary.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// LevelNone silences every record.
const LevelNone slog.Level = 100

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none", "silent", "off":
		return LevelNone
	default:
		return slog.LevelInfo
	}
}

// New returns a logger writing to w. format is "json" or "text".
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var h slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}
