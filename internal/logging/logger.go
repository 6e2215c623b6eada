// Package logging defines the structured logging interface used across
// the client. Implementations wrap a concrete backend such as zerolog
// or slog.
package logging

import "context"

// Logger is a context-aware, structured logger. Variadic args are
// interpreted as alternating key/value pairs:
//
//	log.Info(ctx, "session resumed", "username", name)
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)

	// Warn records unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key/value pairs.
	With(args ...any) Logger
}
