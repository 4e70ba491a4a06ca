package app

import (
	"time"

	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
)

// LoggingDecorator logs every processed operation with its routing path,
// duration and outcome, using the logger from the context.
type LoggingDecorator struct{}

var _ tenor.Decorator = LoggingDecorator{}

// NewLoggingDecorator creates a logging decorator.
func NewLoggingDecorator() LoggingDecorator {
	return LoggingDecorator{}
}

func (LoggingDecorator) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx, next tenor.Checker) (*tenor.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	logCall(ctx, "check", tx, start, err)
	return res, err
}

func (LoggingDecorator) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx, next tenor.Deliverer) (*tenor.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	logCall(ctx, "deliver", tx, start, err)
	return res, err
}

func logCall(ctx tenor.Context, phase string, tx tenor.Tx, start time.Time, err error) {
	logger := tenor.Logger(ctx)

	path := "?"
	if msg, merr := tx.GetMsg(); merr == nil {
		path = msg.Path()
	}

	if err != nil {
		logger.Info().
			Str("phase", phase).
			Str("path", path).
			Dur("duration", time.Since(start)).
			Uint32("code", errCode(err)).
			Str("err", err.Error()).
			Msg("operation failed")
		return
	}
	logger.Debug().
		Str("phase", phase).
		Str("path", path).
		Dur("duration", time.Since(start)).
		Msg("operation processed")
}

func errCode(err error) uint32 {
	if e, ok := errors.Cause(err).(interface{ Code() uint32 }); ok {
		return e.Code()
	}
	return 1
}
