// Package log configures the process-wide slog logger, grounded on
// majorcontext-moat/internal/log's Options+Init shape, trimmed to the one
// destination this CLI needs: structured lines on stderr.
package log

import (
	"log/slog"
	"os"
)

// Options controls the logger Init installs as slog's default.
type Options struct {
	// Verbose enables debug-level output; otherwise only info and above.
	Verbose bool
	// JSON selects the JSON handler instead of the text handler.
	JSON bool
}

// Init installs a configured *slog.Logger as the process default and
// returns it.
func Init(opts Options) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
