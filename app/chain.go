package app

import (
	tenor "github.com/iov-one/tenor"
)

// Decorators is an ordered list of decorators wrapping a final handler.
type Decorators struct {
	chain []tenor.Decorator
}

// ChainDecorators composes the given decorators. The first one is the
// outermost.
func ChainDecorators(chain ...tenor.Decorator) Decorators {
	return Decorators{chain: chain}
}

// WithHandler binds the chain to the handler at its end, producing a
// single Handler.
func (d Decorators) WithHandler(h tenor.Handler) tenor.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = link{dec: d.chain[i], next: h}
	}
	return h
}

// link wraps one decorator around the rest of the chain.
type link struct {
	dec  tenor.Decorator
	next tenor.Handler
}

var _ tenor.Handler = link{}

func (l link) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.CheckResult, error) {
	return l.dec.Check(ctx, db, tx, l.next)
}

func (l link) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.DeliverResult, error) {
	return l.dec.Deliver(ctx, db, tx, l.next)
}
