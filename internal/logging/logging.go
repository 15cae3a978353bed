package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init configures the global slog logger. JSON if LOG_FORMAT=1/true/json else text.
func Init(service string) *slog.Logger {
	logger := New(os.Stdout, service, os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL"))
	slog.SetDefault(logger)
	logger.Info("logging initialized", "json", isJSON(os.Getenv("LOG_FORMAT")))
	return logger
}

// New builds a logger without touching the global default.
func New(w io.Writer, service, format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: false, Level: ParseLevel(level)}
	var handler slog.Handler
	if isJSON(format) {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("service", service)
}

// ParseLevel maps debug/info/warn/error; anything else is info.
func ParseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
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

func isJSON(format string) bool {
	mode := strings.ToLower(format)
	return mode == "1" || mode == "true" || mode == "json"
}
