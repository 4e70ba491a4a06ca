package app

import (
	"time"

	"github.com/rs/zerolog"

	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
)

// Ledger executes operations against a store. Every delivered operation
// runs inside a cache wrap that is written only on success, so a failed
// operation leaves no partial state behind.
type Ledger struct {
	db      tenor.CacheableKVStore
	handler tenor.Handler
	logger  zerolog.Logger
}

// NewLedger creates a ledger executor over the given store and handler
// stack.
func NewLedger(db tenor.CacheableKVStore, handler tenor.Handler, logger zerolog.Logger) *Ledger {
	return &Ledger{
		db:      db,
		handler: handler,
		logger:  logger,
	}
}

// Store exposes the backing store for read-only queries.
func (l *Ledger) Store() tenor.ReadOnlyKVStore {
	return l.db
}

// DeliverTx executes the operation at the given time. On success all
// state changes are committed; on error they are discarded.
func (l *Ledger) DeliverTx(ctx tenor.Context, now time.Time, tx tenor.Tx) (*tenor.DeliverResult, error) {
	ctx = tenor.WithBlockTime(ctx, now)
	ctx = tenor.WithLogger(ctx, l.logger)

	cache := l.db.CacheWrap()
	res, err := l.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if werr := cache.Write(); werr != nil {
		return nil, errors.Wrap(werr, "cannot commit state changes")
	}
	return res, nil
}

// CheckTx dry-runs the operation. State changes are always discarded.
func (l *Ledger) CheckTx(ctx tenor.Context, now time.Time, tx tenor.Tx) (*tenor.CheckResult, error) {
	ctx = tenor.WithBlockTime(ctx, now)
	ctx = tenor.WithLogger(ctx, l.logger)

	cache := l.db.CacheWrap()
	defer cache.Discard()
	return l.handler.Check(ctx, cache, tx)
}

// InitGenesis feeds the genesis options through all registered
// initializers, writing the initial state atomically.
func (l *Ledger) InitGenesis(opts tenor.Options, inits ...tenor.Initializer) error {
	cache := l.db.CacheWrap()
	for _, ini := range inits {
		if err := ini.FromGenesis(opts, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "cannot initialize from genesis")
		}
	}
	return cache.Write()
}
