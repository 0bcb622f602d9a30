// Package log wires structured logging for the service. All packages log
// through log/slog; this package owns handler setup and component tagging.
package log

import (
	"log/slog"
	"os"
)

// Component names used across the service.
const (
	ComponentHTTP   = "http"
	ComponentLedger = "ledger"
	ComponentWorker = "worker"
)

// Setup installs a text handler at the given level as the process default
// and returns the root logger.
func Setup(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// ForComponent returns a logger that tags every record with the component
// name.
func ForComponent(name string) *slog.Logger {
	return slog.Default().With("component", name)
}
