package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// ctxKey is an unexported key type so no other package can collide with
// the logger entry.
type ctxKey struct{}

// FromContext returns the logger attached to ctx, falling back to the
// package default so callers never need a nil check.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(ctxKey{}).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithLogger attaches logger to the context for FromContext to find.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, logger)
}
