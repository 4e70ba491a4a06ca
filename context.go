package tenor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iov-one/tenor/errors"
)

// Context carries per-operation values (execution time, logger) between
// the app, decorators and handlers.
type Context = context.Context

type contextKey int

const (
	contextKeyTime contextKey = iota
	contextKeyLogger
)

// WithBlockTime sets the execution time for all time-dependent checks
// within an operation. Every operation in a batch observes the same time.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, contextKeyTime, t)
}

// BlockTime returns the execution time as declared on the context.
func BlockTime(ctx Context) (time.Time, error) {
	t, ok := ctx.Value(contextKeyTime).(time.Time)
	if !ok {
		return time.Time{}, errors.Wrap(errors.ErrHuman, "block time not present in the context")
	}
	return t, nil
}

// IsExpired returns true if the given time is in the past as compared to
// the "now" declared on the context. Expiration is inclusive: when the
// current time equals the tested one, it is considered expired.
//
// This function panics if the context does not carry an execution time,
// because a missing time is a wiring bug, not a runtime condition.
func IsExpired(ctx Context, t UnixTime) bool {
	now, err := BlockTime(ctx)
	if err != nil {
		panic(err)
	}
	return t <= AsUnixTime(now)
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx Context, logger zerolog.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// Logger returns the logger attached to the context, or a no-op logger.
func Logger(ctx Context) zerolog.Logger {
	if l, ok := ctx.Value(contextKeyLogger).(zerolog.Logger); ok {
		return l
	}
	return zerolog.Nop()
}
