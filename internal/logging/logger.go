package logging

import (
	"log/slog"
	"os"
)

// Setup initializes the global slog logger with JSON output to stdout.
func Setup() {
	slog.SetDefault(slog.New(stdoutHandler()))
}

// WithDatabase keeps stdout logging and also persists ERROR+ records
// through h.
func WithDatabase(h *DBHandler) {
	slog.SetDefault(slog.New(NewMultiHandler(stdoutHandler(), h)))
}

func stdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}
