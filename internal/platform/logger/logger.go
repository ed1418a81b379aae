// Package logger returns the structured logger used by cmd/server.
package logger

import (
	"log/slog"
	"os"
)

// New returns a JSON-structured logger writing to stdout.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler)
}
