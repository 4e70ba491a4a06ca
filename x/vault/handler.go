package vault

import (
	"fmt"

	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
	"github.com/iov-one/tenor/x"
)

// RegisterRoutes installs the vault message handlers. Registration and
// administrative updates require the authority; accrual and re-pricing
// are keeper operations open to any authenticated caller.
func RegisterRoutes(r tenor.Registry, auth x.Authenticator, authority tenor.Address) {
	r.Handle(&RegisterYieldSourceMsg{}, registerHandler{auth: auth, authority: authority})
	r.Handle(&AccrueMsg{}, accrueHandler{auth: auth})
	r.Handle(&UpdateNavMsg{}, updateNavHandler{auth: auth})
	r.Handle(&UpdateYieldSourceMsg{}, updateHandler{auth: auth, authority: authority})
}

type registerHandler struct {
	auth      x.Authenticator
	authority tenor.Address
}

var _ tenor.Handler = registerHandler{}

func (h registerHandler) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tenor.CheckResult{}, nil
}

func (h registerHandler) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := tenor.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	ys := YieldSource{
		Metadata:            &tenor.Metadata{Schema: 1},
		Name:                msg.Name,
		SourceType:          msg.SourceType,
		BondType:            msg.BondType,
		DepositVault:        DepositVaultAddr(msg.BondType),
		NavPerShare:         NavScale,
		AllocationWeightBps: msg.AllocationWeightBps,
		MinDeposit:          msg.MinDeposit,
		MaxAllocation:       msg.MaxAllocation,
		Active:              true,
		LastAccrual:         tenor.AsUnixTime(now),
		OracleFeed:          msg.OracleFeed,
		CouponRateBps:       msg.CouponRateBps,
		MaturityDate:        msg.MaturityDate,
		TargetAPYBps:        msg.TargetAPYBps,
		HaircutBps:          msg.HaircutBps,
	}
	if err := SaveSource(db, &ys); err != nil {
		return nil, err
	}
	return &tenor.DeliverResult{
		Data: Key(msg.BondType),
		Log:  "registered yield source " + msg.Name,
	}, nil
}

func (h registerHandler) validate(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*RegisterYieldSourceMsg, error) {
	var msg RegisterYieldSourceMsg
	if err := tenor.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, h.authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not the authority")
	}
	switch exists, err := HasSource(db, msg.BondType); {
	case err != nil:
		return nil, err
	case exists:
		return nil, errors.Wrapf(errors.ErrDuplicate, "yield source for %s", msg.BondType)
	}
	return &msg, nil
}

type accrueHandler struct {
	auth x.Authenticator
}

var _ tenor.Handler = accrueHandler{}

func (h accrueHandler) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tenor.CheckResult{}, nil
}

func (h accrueHandler) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.DeliverResult, error) {
	ys, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := tenor.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	changed, err := ys.Accrue(tenor.AsUnixTime(now))
	if err != nil {
		return nil, err
	}
	if !changed {
		return &tenor.DeliverResult{Log: "no accrual"}, nil
	}
	if err := SaveSource(db, ys); err != nil {
		return nil, err
	}
	return &tenor.DeliverResult{
		Log: fmt.Sprintf("accrued %s to nav %d", ys.BondType, ys.NavPerShare),
	}, nil
}

func (h accrueHandler) validate(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*YieldSource, error) {
	var msg AccrueMsg
	if err := tenor.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	ys, err := LoadSource(db, msg.BondType)
	if err != nil {
		return nil, err
	}
	if !ys.Active {
		return nil, errors.Wrapf(ErrNotActive, "%s", ys.BondType)
	}
	return ys, nil
}

type updateNavHandler struct {
	auth x.Authenticator
}

var _ tenor.Handler = updateNavHandler{}

func (h updateNavHandler) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tenor.CheckResult{}, nil
}

func (h updateNavHandler) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.DeliverResult, error) {
	msg, ys, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := tenor.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	old := ys.NavPerShare
	ys.NavPerShare = msg.Nav
	if msg.APYBps != 0 {
		ys.TargetAPYBps = msg.APYBps
	}
	ys.LastAccrual = tenor.AsUnixTime(now)
	if err := SaveSource(db, ys); err != nil {
		return nil, err
	}
	return &tenor.DeliverResult{
		Log: fmt.Sprintf("re-priced %s nav %d to %d", ys.BondType, old, ys.NavPerShare),
	}, nil
}

func (h updateNavHandler) validate(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*UpdateNavMsg, *YieldSource, error) {
	var msg UpdateNavMsg
	if err := tenor.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	ys, err := LoadSource(db, msg.BondType)
	if err != nil {
		return nil, nil, err
	}
	return &msg, ys, nil
}

type updateHandler struct {
	auth      x.Authenticator
	authority tenor.Address
}

var _ tenor.Handler = updateHandler{}

func (h updateHandler) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tenor.CheckResult{}, nil
}

func (h updateHandler) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.DeliverResult, error) {
	msg, ys, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if msg.AllocationWeightBps != nil {
		ys.AllocationWeightBps = *msg.AllocationWeightBps
	}
	if msg.MinDeposit != nil {
		ys.MinDeposit = *msg.MinDeposit
	}
	if msg.MaxAllocation != nil {
		ys.MaxAllocation = *msg.MaxAllocation
	}
	if msg.TargetAPYBps != nil {
		ys.TargetAPYBps = *msg.TargetAPYBps
	}
	if msg.Active != nil {
		ys.Active = *msg.Active
	}
	if err := SaveSource(db, ys); err != nil {
		return nil, err
	}
	return &tenor.DeliverResult{Log: "updated yield source " + ys.Name}, nil
}

func (h updateHandler) validate(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*UpdateYieldSourceMsg, *YieldSource, error) {
	var msg UpdateYieldSourceMsg
	if err := tenor.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, h.authority) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "not the authority")
	}
	ys, err := LoadSource(db, msg.BondType)
	if err != nil {
		return nil, nil, err
	}
	return &msg, ys, nil
}
