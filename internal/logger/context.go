package logger

import (
	"context"
	"log/slog"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey int

const (
	invocationIDKey contextKey = iota
	loggerKey
)

// WithInvocationID returns a new context with the given triage invocation ID
// stored. HTTP request IDs and triage invocation IDs share this slot: one
// invocation belongs to exactly one request.
func WithInvocationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, invocationIDKey, id)
}

// InvocationID extracts the invocation ID from the context.
// Returns an empty string if none is set.
func InvocationID(ctx context.Context) string {
	id, _ := ctx.Value(invocationIDKey).(string)
	return id
}

// WithContext stores an invocation-scoped logger in the context. Components
// retrieve it with FromContext; concurrent invocations therefore never share
// mutable logging state.
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the invocation-scoped logger, or slog.Default() when
// the context carries none.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
