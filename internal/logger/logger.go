// Package logger configures the process-wide slog logger. Diagnostics go to
// stderr so they never mix with data written to stdout.
package logger

import (
	"log/slog"
	"os"
)

// Initialize installs the default logger at the given level.
func Initialize(level slog.Level) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	slog.SetDefault(logger)
}

// Named returns a logger tagged with a component name.
func Named(name string) *slog.Logger {
	return slog.Default().With("name", name)
}
