package app

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
	"github.com/iov-one/tenor/store"
	"github.com/iov-one/tenor/tenortest"
)

// writeThenFail writes a key and, when broken, fails afterwards. Used to
// prove that failed operations leave no partial state.
type writeThenFail struct {
	key    []byte
	broken bool
}

var _ tenor.Handler = (*writeThenFail)(nil)

func (h *writeThenFail) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.CheckResult, error) {
	if err := h.run(db); err != nil {
		return nil, err
	}
	return &tenor.CheckResult{}, nil
}

func (h *writeThenFail) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.DeliverResult, error) {
	if err := h.run(db); err != nil {
		return nil, err
	}
	return &tenor.DeliverResult{}, nil
}

func (h *writeThenFail) run(db tenor.KVStore) error {
	if err := db.Set(h.key, []byte("written")); err != nil {
		return err
	}
	if h.broken {
		return errors.Wrap(errors.ErrState, "broken by test")
	}
	return nil
}

func TestLedgerCommitsOnSuccess(t *testing.T) {
	db := store.MemStore()
	h := &writeThenFail{key: []byte("ok")}
	ledger := NewLedger(db, h, zerolog.Nop())

	ctx := tenortest.Context(time.Now())
	tx := &tenortest.Tx{Msg: &tenortest.Msg{RoutePath: "test/write"}}
	if _, err := ledger.DeliverTx(ctx, time.Now(), tx); err != nil {
		t.Fatalf("deliver: %+v", err)
	}

	value, err := db.Get([]byte("ok"))
	if err != nil || value == nil {
		t.Fatalf("state must be committed: %q %v", value, err)
	}
}

func TestLedgerRollsBackOnError(t *testing.T) {
	db := store.MemStore()
	h := &writeThenFail{key: []byte("partial"), broken: true}
	ledger := NewLedger(db, h, zerolog.Nop())

	ctx := tenortest.Context(time.Now())
	tx := &tenortest.Tx{Msg: &tenortest.Msg{RoutePath: "test/write"}}
	if _, err := ledger.DeliverTx(ctx, time.Now(), tx); !errors.ErrState.Is(err) {
		t.Fatalf("want state error, got %v", err)
	}

	value, err := db.Get([]byte("partial"))
	if err != nil {
		t.Fatalf("get: %+v", err)
	}
	if value != nil {
		t.Fatalf("failed operation must be rolled back, got %q", value)
	}
}

func TestLedgerCheckNeverCommits(t *testing.T) {
	db := store.MemStore()
	h := &writeThenFail{key: []byte("dry")}
	ledger := NewLedger(db, h, zerolog.Nop())

	ctx := tenortest.Context(time.Now())
	tx := &tenortest.Tx{Msg: &tenortest.Msg{RoutePath: "test/write"}}
	if _, err := ledger.CheckTx(ctx, time.Now(), tx); err != nil {
		t.Fatalf("check: %+v", err)
	}

	value, err := db.Get([]byte("dry"))
	if err != nil {
		t.Fatalf("get: %+v", err)
	}
	if value != nil {
		t.Fatalf("check must not commit, got %q", value)
	}
}

func TestRouterRoutesByPath(t *testing.T) {
	r := NewRouter()
	h := &writeThenFail{key: []byte("routed")}
	r.Handle(&tenortest.Msg{RoutePath: "test/write"}, h)

	db := store.MemStore()
	ctx := tenortest.Context(time.Now())

	tx := &tenortest.Tx{Msg: &tenortest.Msg{RoutePath: "test/write"}}
	if _, err := r.Deliver(ctx, db, tx); err != nil {
		t.Fatalf("deliver: %+v", err)
	}

	tx = &tenortest.Tx{Msg: &tenortest.Msg{RoutePath: "test/unknown"}}
	if _, err := r.Deliver(ctx, db, tx); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found for unknown path, got %v", err)
	}
}

func TestRouterRejectsDuplicateRoute(t *testing.T) {
	r := NewRouter()
	r.Handle(&tenortest.Msg{RoutePath: "test/write"}, &writeThenFail{})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate route")
		}
	}()
	r.Handle(&tenortest.Msg{RoutePath: "test/write"}, &writeThenFail{})
}

type panicking struct{}

func (panicking) Check(tenor.Context, tenor.KVStore, tenor.Tx) (*tenor.CheckResult, error) {
	panic("check boom")
}

func (panicking) Deliver(tenor.Context, tenor.KVStore, tenor.Tx) (*tenor.DeliverResult, error) {
	panic("deliver boom")
}

func TestRecoveryDecorator(t *testing.T) {
	h := ChainDecorators(NewRecoveryDecorator()).WithHandler(panicking{})
	db := store.MemStore()
	ctx := tenortest.Context(time.Now())
	tx := &tenortest.Tx{Msg: &tenortest.Msg{RoutePath: "test/panic"}}

	if _, err := h.Deliver(ctx, db, tx); !errors.ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
	if _, err := h.Check(ctx, db, tx); !errors.ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
}
