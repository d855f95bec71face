package app

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger returns a slog.Logger writing text or JSON to stdout.
func NewLogger(format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true, Level: parseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func parseLevel(level string) slog.Level {
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
