// Package logging is the storefront's structured logger. Diagnostics go to
// stderr through either log/slog (text handler, the default) or zap (console
// encoder), picked by the log_backend setting; stdout stays reserved for what
// the shopper sees.
package logging

import "context"

// Logger takes a message plus alternating keys and values:
//
//	logger.Warn(ctx, "stored cart is malformed, starting empty", "error", err)
type Logger interface {
	// Debug: one line per backend request and per failed command.
	Debug(ctx context.Context, msg string, args ...any)
	// Info: connectivity changes.
	Info(ctx context.Context, msg string, args ...any)
	// Warn: local data that had to be ignored, such as a malformed cart.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that adds the given pairs to every line, e.g. the
	// request id in netx.
	With(args ...any) Logger
}
