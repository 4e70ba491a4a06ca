package vault

import (
	"testing"
	"time"

	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
	"github.com/iov-one/tenor/store"
	"github.com/iov-one/tenor/tenortest"
	"github.com/iov-one/tenor/x"
	"github.com/iov-one/tenor/x/bond"
)

func testSource(t0 tenor.UnixTime) *YieldSource {
	return &YieldSource{
		Metadata:     &tenor.Metadata{Schema: 1},
		Name:         "US T-Bill Vault",
		SourceType:   bond.SovereignBond,
		BondType:     bond.UsTBill,
		DepositVault: DepositVaultAddr(bond.UsTBill),
		NavPerShare:  NavScale,
		TotalShares:  1_000_000,
		Active:       true,
		LastAccrual:  t0,
		OracleFeed:   "fx-USD",
		TargetAPYBps: 450,
	}
}

func TestAccrueOneYear(t *testing.T) {
	t0 := tenor.UnixTime(1_600_000_000)
	ys := testSource(t0)

	changed, err := ys.Accrue(t0 + SecondsPerYear)
	if err != nil {
		t.Fatalf("accrue: %+v", err)
	}
	if !changed {
		t.Fatal("expected nav change")
	}
	// 450 bps over exactly one year on nav 1.000000.
	if ys.NavPerShare != 1_045_000 {
		t.Fatalf("nav: %d", ys.NavPerShare)
	}
	if ys.LastAccrual != t0+SecondsPerYear {
		t.Fatalf("last accrual: %d", ys.LastAccrual)
	}
}

func TestAccrueIsMonotonic(t *testing.T) {
	t0 := tenor.UnixTime(1_600_000_000)
	ys := testSource(t0)

	prev := ys.NavPerShare
	for _, step := range []int64{60, 3600, 86400, 7 * 86400, 200 * 86400} {
		now := ys.LastAccrual + tenor.UnixTime(step)
		if _, err := ys.Accrue(now); err != nil {
			t.Fatalf("accrue: %+v", err)
		}
		if ys.NavPerShare < prev {
			t.Fatalf("nav decreased: %d -> %d", prev, ys.NavPerShare)
		}
		prev = ys.NavPerShare
	}
}

func TestAccrueNoOps(t *testing.T) {
	t0 := tenor.UnixTime(1_600_000_000)

	// Zero elapsed time.
	ys := testSource(t0)
	if changed, err := ys.Accrue(t0); err != nil || changed {
		t.Fatalf("zero elapsed: %v %v", changed, err)
	}

	// No shares outstanding.
	ys = testSource(t0)
	ys.TotalShares = 0
	if changed, err := ys.Accrue(t0 + 86400); err != nil || changed {
		t.Fatalf("zero shares: %v %v", changed, err)
	}
	if ys.NavPerShare != NavScale {
		t.Fatalf("nav moved: %d", ys.NavPerShare)
	}
}

func TestAccrueFrozenAtMaturity(t *testing.T) {
	t0 := tenor.UnixTime(1_600_000_000)
	ys := testSource(t0)
	ys.MaturityDate = t0 + 100

	// At maturity and beyond the NAV is frozen, repeatedly.
	for _, now := range []tenor.UnixTime{t0 + 100, t0 + 101, t0 + SecondsPerYear} {
		if changed, err := ys.Accrue(now); err != nil || changed {
			t.Fatalf("matured accrue at %d: %v %v", now, changed, err)
		}
		if ys.NavPerShare != NavScale {
			t.Fatalf("nav moved after maturity: %d", ys.NavPerShare)
		}
	}

}

func TestSourcePersistence(t *testing.T) {
	db := store.MemStore()
	t0 := tenor.UnixTime(1_600_000_000)
	ys := testSource(t0)
	ys.MinDeposit = 1000
	ys.MaxAllocation = 5_000_000_000

	if err := SaveSource(db, ys); err != nil {
		t.Fatalf("save: %+v", err)
	}
	loaded, err := LoadSource(db, bond.UsTBill)
	if err != nil {
		t.Fatalf("load: %+v", err)
	}
	if loaded.Name != ys.Name || loaded.NavPerShare != ys.NavPerShare ||
		loaded.MinDeposit != 1000 || loaded.MaxAllocation != 5_000_000_000 ||
		!loaded.DepositVault.Equals(ys.DepositVault) {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}

	if _, err := LoadSource(db, bond.MxCetes); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestRegisterHandler(t *testing.T) {
	db := store.MemStore()
	auth := x.CtxAuth{Key: "auth"}
	authority := tenortest.NewAddress()
	h := registerHandler{auth: auth, authority: authority}

	msg := &RegisterYieldSourceMsg{
		Metadata:     &tenor.Metadata{Schema: 1},
		Name:         "CETES Vault",
		SourceType:   bond.SovereignBond,
		BondType:     bond.MxCetes,
		OracleFeed:   "fx-MXN",
		TargetAPYBps: 900,
	}
	tx := &tenortest.Tx{Msg: msg}

	ctx := auth.SetSigners(tenortest.Context(time.Now()), tenortest.NewAddress())
	if _, err := h.Deliver(ctx, db, tx); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want unauthorized, got %v", err)
	}

	ctx = auth.SetSigners(tenortest.Context(time.Now()), authority)
	if _, err := h.Deliver(ctx, db, tx); err != nil {
		t.Fatalf("deliver: %+v", err)
	}

	ys, err := LoadSource(db, bond.MxCetes)
	if err != nil {
		t.Fatalf("load: %+v", err)
	}
	if ys.NavPerShare != NavScale {
		t.Fatalf("new source nav must be 1.000000, got %d", ys.NavPerShare)
	}
	if !ys.Active {
		t.Fatal("new source must be active")
	}

	if _, err := h.Deliver(ctx, db, tx); !errors.ErrDuplicate.Is(err) {
		t.Fatalf("want duplicate, got %v", err)
	}
}

func TestUpdateNavHandler(t *testing.T) {
	db := store.MemStore()
	auth := x.CtxAuth{Key: "auth"}
	keeper := tenortest.NewAddress()
	h := updateNavHandler{auth: auth}

	t0 := tenor.UnixTime(1_600_000_000)
	if err := SaveSource(db, testSource(t0)); err != nil {
		t.Fatal(err)
	}

	tx := &tenortest.Tx{Msg: &UpdateNavMsg{
		Metadata: &tenor.Metadata{Schema: 1},
		BondType: bond.UsTBill,
		Nav:      990_000,
	}}
	now := time.Unix(int64(t0)+60, 0)
	ctx := auth.SetSigners(tenortest.Context(now), keeper)
	if _, err := h.Deliver(ctx, db, tx); err != nil {
		t.Fatalf("deliver: %+v", err)
	}

	ys, err := LoadSource(db, bond.UsTBill)
	if err != nil {
		t.Fatal(err)
	}
	// Re-pricing may move the NAV down, unlike accrual.
	if ys.NavPerShare != 990_000 {
		t.Fatalf("nav: %d", ys.NavPerShare)
	}
	if ys.LastAccrual != t0+60 {
		t.Fatalf("last accrual: %d", ys.LastAccrual)
	}

	// Non-positive NAV is rejected at message validation.
	bad := &UpdateNavMsg{Metadata: &tenor.Metadata{Schema: 1}, BondType: bond.UsTBill, Nav: 0}
	if err := bad.Validate(); !errors.ErrMsg.Is(err) {
		t.Fatalf("want msg error, got %v", err)
	}
}

func TestUpdateYieldSourceHandler(t *testing.T) {
	db := store.MemStore()
	auth := x.CtxAuth{Key: "auth"}
	authority := tenortest.NewAddress()
	h := updateHandler{auth: auth, authority: authority}

	t0 := tenor.UnixTime(1_600_000_000)
	if err := SaveSource(db, testSource(t0)); err != nil {
		t.Fatal(err)
	}

	active := false
	minDeposit := int64(5000)
	tx := &tenortest.Tx{Msg: &UpdateYieldSourceMsg{
		Metadata:   &tenor.Metadata{Schema: 1},
		BondType:   bond.UsTBill,
		MinDeposit: &minDeposit,
		Active:     &active,
	}}

	ctx := auth.SetSigners(tenortest.Context(time.Now()), authority)
	if _, err := h.Deliver(ctx, db, tx); err != nil {
		t.Fatalf("deliver: %+v", err)
	}

	ys, err := LoadSource(db, bond.UsTBill)
	if err != nil {
		t.Fatal(err)
	}
	if ys.Active || ys.MinDeposit != 5000 {
		t.Fatalf("partial update failed: %+v", ys)
	}
	// Untouched fields keep their values.
	if ys.TargetAPYBps != 450 {
		t.Fatalf("target apy changed: %d", ys.TargetAPYBps)
	}
}

func TestAccrueHandler(t *testing.T) {
	db := store.MemStore()
	auth := x.CtxAuth{Key: "auth"}
	keeper := tenortest.NewAddress()
	h := accrueHandler{auth: auth}

	t0 := tenor.UnixTime(1_600_000_000)
	if err := SaveSource(db, testSource(t0)); err != nil {
		t.Fatal(err)
	}

	tx := &tenortest.Tx{Msg: &AccrueMsg{
		Metadata: &tenor.Metadata{Schema: 1},
		BondType: bond.UsTBill,
	}}
	now := time.Unix(int64(t0)+SecondsPerYear, 0)
	ctx := auth.SetSigners(tenortest.Context(now), keeper)
	if _, err := h.Deliver(ctx, db, tx); err != nil {
		t.Fatalf("deliver: %+v", err)
	}

	ys, err := LoadSource(db, bond.UsTBill)
	if err != nil {
		t.Fatal(err)
	}
	if ys.NavPerShare != 1_045_000 {
		t.Fatalf("nav: %d", ys.NavPerShare)
	}

	// Inactive sources cannot accrue.
	ys.Active = false
	if err := SaveSource(db, ys); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Deliver(ctx, db, tx); !ErrNotActive.Is(err) {
		t.Fatalf("want not active, got %v", err)
	}
}
