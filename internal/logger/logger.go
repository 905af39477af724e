package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds the JSON logger used across the service and installs it as
// the slog default.
func New(service string, level string) *slog.Logger {
	return NewWithWriter(os.Stdout, service, level)
}

func NewWithWriter(w io.Writer, service string, level string) *slog.Logger {
	host, _ := os.Hostname()

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	l := slog.New(h).With(
		slog.String("service", service),
		slog.String("hostname", host),
	)
	slog.SetDefault(l)
	return l
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
