package logging

import (
	"log/slog"
	"os"
	"strings"
)

// StdoutHandler returns the JSON handler writing to stdout at the level
// selected by LOG_LEVEL (debug, info, warn, error; default info).
func StdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
}

// Setup installs the stdout handler as the process default. main swaps in a
// fan-out once the database-backed sink is available.
func Setup() {
	slog.SetDefault(slog.New(StdoutHandler()))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
