// Package logging owns process-wide log setup. Initialization is
// guarded so repeated calls are idempotent; scoring code never touches
// this directly and works against an injected *slog.Logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var initOnce sync.Once

// Init installs the default process logger. Safe to call more than
// once: only the first call takes effect.
func Init(level, format string) {
	initOnce.Do(func() {
		slog.SetDefault(New(os.Stderr, level, format))
	})
}

// New builds a logger writing to w with the given level and format
// ("text" or "json"; anything else falls back to text).
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level.
// Defaults to slog.LevelInfo for unrecognized strings.
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
