// Package logging configures the structured logger used by the CLI.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text-format logger writing to out. Verbose mode lowers the
// level to debug; otherwise only warnings and errors are emitted.
func New(out io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}
