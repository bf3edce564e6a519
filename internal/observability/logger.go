package observability

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide logger. Dev gets human-readable
// text at debug level; every other env emits JSON for log shipping.
func NewLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler

	if env == "dev" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler).With("service", "storefront", "env", env)
}
