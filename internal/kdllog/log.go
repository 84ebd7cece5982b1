// Package kdllog carries a structured logger through a context.Context,
// grounded on the teacher's own lib/log package: a logger set on ctx with
// With/Leveled and read back out at call sites that need to emit
// diagnostics during a parse or format pass, built on cdr.dev/slog the
// same way lib/log is (the teacher's actual logging dependency, not the
// standard library's log/slog).
package kdllog

import (
	"context"
	"os"

	"cdr.dev/slog"
	"cdr.dev/slog/sloggers/sloghuman"
)

type ctxKey struct{}

var defaultLogger = slog.Make(sloghuman.Sink(os.Stderr)).Named("kdl")

// With returns a context carrying logger for downstream calls to pick up
// with From.
func With(ctx context.Context, logger slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// Leveled is a convenience wrapper around With that narrows the context's
// current logger (or the package default) to the given minimum level.
func Leveled(ctx context.Context, level slog.Level) context.Context {
	return With(ctx, From(ctx).Leveled(level))
}

// From returns the logger carried on ctx, or a package-default
// stderr-backed logger if none was set — callers never need a nil check.
func From(ctx context.Context) slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(slog.Logger); ok {
		return l
	}
	return defaultLogger
}
