// Package logging configures the process-wide slog default.
//
// Probe outcomes belong in the report, not the log stream, so the default
// level is Warn; --verbose lowers it to Debug for per-probe tracing.
package logging

import (
	"log/slog"
	"os"
)

func Init(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
