// Package app assembles the pieces into a runnable ledger: a message
// router, a decorator chain and an executor that runs every operation
// inside a transactional cache wrap.
package app

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
)

// Router maps message paths to handlers.
type Router struct {
	routes map[string]tenor.Handler
}

var _ tenor.Registry = (*Router)(nil)
var _ tenor.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]tenor.Handler),
	}
}

// Handle implements Registry. Registering a path twice is a programmer
// error and panics.
func (r *Router) Handle(m tenor.Msg, h tenor.Handler) {
	path := m.Path()
	if _, ok := r.routes[path]; ok {
		panic("re-registering message route: " + path)
	}
	r.routes[path] = h
}

func (r *Router) handler(tx tenor.Tx) (tenor.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message")
	}
	h, ok := r.routes[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", msg.Path())
	}
	return h, nil
}

// Check dispatches to the handler registered for the message path.
func (r *Router) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.CheckResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

// Deliver dispatches to the handler registered for the message path.
func (r *Router) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.DeliverResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}
