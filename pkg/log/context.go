package log

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithConnection returns a context whose logger is tagged with the
// connection and participant it serves.
func WithConnection(ctx context.Context, connectionID, participantID string) context.Context {
	l := Ctx(ctx).With().
		Str(FieldConnectionID, connectionID).
		Str(FieldParticipantID, participantID).
		Logger()
	return WithLogger(ctx, l)
}

// WithAction tags the context logger with the inbound action being handled.
func WithAction(ctx context.Context, action string) context.Context {
	return WithLogger(ctx, Ctx(ctx).With().Str(FieldAction, action).Logger())
}

// Ctx retrieves the logger from the context.
// If no logger is found, the global logger is returned.
func Ctx(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return l
	}
	return L()
}
