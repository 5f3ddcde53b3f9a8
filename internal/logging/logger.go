// Package logging defines a minimal structured-logging interface used across
// fcpanel. The CLI wires it to log/slog; tests can use Discard.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key-value pairs, e.g.:
//
//	log.Info(ctx, "vm created", "vm_id", id, "hostname", hostname)
type Logger interface {
	// Debug logs request-level detail (method, path, status, request id).
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a failed user operation that the user may retry.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value pairs.
	With(args ...any) Logger
}
