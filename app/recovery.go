package app

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
)

// RecoveryDecorator turns a panic in any inner handler into an ErrPanic
// result, so one broken handler cannot take down the whole process.
type RecoveryDecorator struct{}

var _ tenor.Decorator = RecoveryDecorator{}

// NewRecoveryDecorator creates a recovery decorator.
func NewRecoveryDecorator() RecoveryDecorator {
	return RecoveryDecorator{}
}

func (RecoveryDecorator) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx, next tenor.Checker) (res *tenor.CheckResult, err error) {
	defer errRecover(&err)
	return next.Check(ctx, db, tx)
}

func (RecoveryDecorator) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx, next tenor.Deliverer) (res *tenor.DeliverResult, err error) {
	defer errRecover(&err)
	return next.Deliver(ctx, db, tx)
}

func errRecover(err *error) {
	if r := recover(); r != nil {
		*err = errors.Wrapf(errors.ErrPanic, "%v", r)
	}
}
