package bond

import (
	"testing"
	"time"

	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
	"github.com/iov-one/tenor/store"
	"github.com/iov-one/tenor/tenortest"
	"github.com/iov-one/tenor/x"
)

func validConfig(t Type) Config {
	return Config{
		Metadata:         &tenor.Metadata{Schema: 1},
		Type:             t,
		SettlementTicker: "USD",
		NativeTicker:     t.Currency(),
		OracleFeed:       "fx-" + t.Currency(),
		CouponRateBps:    425,
		FaceValue:        1000_000000,
		DefaultAPYBps:    t.DefaultAPYBps(),
		MinTier:          1,
		Active:           true,
	}
}

func TestTypeProperties(t *testing.T) {
	if got := MxCetes.Currency(); got != "MXN" {
		t.Fatalf("MxCetes currency: %s", got)
	}
	if got := JpJgb.DefaultAPYBps(); got != 40 {
		t.Fatalf("JpJgb APY: %d", got)
	}
	if err := Type(9).Validate(); !errors.ErrType.Is(err) {
		t.Fatal("undeclared type must be invalid")
	}
	if err := SourceType(9).Validate(); !errors.ErrType.Is(err) {
		t.Fatal("undeclared source type must be invalid")
	}
}

func TestRegistryAdd(t *testing.T) {
	reg := Registry{
		Metadata:  &tenor.Metadata{Schema: 1},
		Authority: tenortest.NewAddress(),
	}

	if err := reg.Add(validConfig(UsTBill)); err != nil {
		t.Fatalf("add: %+v", err)
	}
	if err := reg.Add(validConfig(UsTBill)); !errors.ErrDuplicate.Is(err) {
		t.Fatalf("want duplicate error, got %v", err)
	}

	if _, err := reg.Find(UsTBill); err != nil {
		t.Fatalf("find: %+v", err)
	}
	if _, err := reg.Find(BrTesouro); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestRegistryCapacity(t *testing.T) {
	reg := Registry{
		Metadata:  &tenor.Metadata{Schema: 1},
		Authority: tenortest.NewAddress(),
	}
	// The registry also admits multiple custom entries in tests by
	// varying the type ordinal within the declared range.
	types := []Type{UsTBill, MxCetes, BrTesouro, JpJgb, Custom}
	for _, typ := range types {
		if err := reg.Add(validConfig(typ)); err != nil {
			t.Fatalf("add %s: %+v", typ, err)
		}
	}
	for i := 0; len(reg.Bonds) < RegistryCapacity; i++ {
		c := validConfig(Custom)
		c.Type = Type(5 + i)
		reg.Bonds = append(reg.Bonds, c)
	}
	if err := reg.Add(validConfig(Custom)); !ErrRegistryFull.Is(err) {
		t.Fatalf("want registry full, got %v", err)
	}
}

func TestRegistryPersistence(t *testing.T) {
	db := store.MemStore()
	reg := Registry{
		Metadata:  &tenor.Metadata{Schema: 1},
		Authority: tenortest.NewAddress(),
	}
	if err := reg.Add(validConfig(UsTBill)); err != nil {
		t.Fatal(err)
	}
	if err := reg.Add(validConfig(JpJgb)); err != nil {
		t.Fatal(err)
	}
	if err := SaveRegistry(db, &reg); err != nil {
		t.Fatalf("save: %+v", err)
	}

	loaded, err := LoadRegistry(db)
	if err != nil {
		t.Fatalf("load: %+v", err)
	}
	if !loaded.Authority.Equals(reg.Authority) {
		t.Fatal("authority mismatch")
	}
	if len(loaded.Bonds) != 2 {
		t.Fatalf("want 2 bonds, got %d", len(loaded.Bonds))
	}
	cfg, err := loaded.Find(JpJgb)
	if err != nil {
		t.Fatalf("find: %+v", err)
	}
	if cfg.NativeTicker != "JPY" || cfg.DefaultAPYBps != 40 {
		t.Fatalf("bad config: %+v", cfg)
	}
}

func TestRegisterBondHandler(t *testing.T) {
	db := store.MemStore()
	authority := tenortest.NewAddress()
	stranger := tenortest.NewAddress()

	reg := Registry{
		Metadata:  &tenor.Metadata{Schema: 1},
		Authority: authority,
	}
	if err := SaveRegistry(db, &reg); err != nil {
		t.Fatal(err)
	}

	auth := x.CtxAuth{Key: "auth"}
	h := registerBondHandler{auth: auth}
	msg := &RegisterBondMsg{
		Metadata: &tenor.Metadata{Schema: 1},
		Config:   validConfig(MxCetes),
	}
	tx := &tenortest.Tx{Msg: msg}

	ctx := auth.SetSigners(tenortest.Context(time.Now()), stranger)
	if _, err := h.Deliver(ctx, db, tx); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want unauthorized, got %v", err)
	}

	ctx = auth.SetSigners(tenortest.Context(time.Now()), authority)
	if _, err := h.Deliver(ctx, db, tx); err != nil {
		t.Fatalf("deliver: %+v", err)
	}

	loaded, err := LoadRegistry(db)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := loaded.Find(MxCetes); err != nil {
		t.Fatalf("registered bond must be found: %+v", err)
	}

	// Registering the same type twice must fail.
	if _, err := h.Deliver(ctx, db, tx); !errors.ErrDuplicate.Is(err) {
		t.Fatalf("want duplicate, got %v", err)
	}
}
