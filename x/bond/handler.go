package bond

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
	"github.com/iov-one/tenor/x"
)

// RegisterRoutes installs the bond message handlers.
func RegisterRoutes(r tenor.Registry, auth x.Authenticator) {
	r.Handle(&RegisterBondMsg{}, registerBondHandler{auth: auth})
}

type registerBondHandler struct {
	auth x.Authenticator
}

var _ tenor.Handler = registerBondHandler{}

func (h registerBondHandler) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tenor.CheckResult{}, nil
}

func (h registerBondHandler) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.DeliverResult, error) {
	msg, reg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := reg.Add(msg.Config); err != nil {
		return nil, err
	}
	if err := SaveRegistry(db, reg); err != nil {
		return nil, err
	}
	return &tenor.DeliverResult{
		Data: []byte{uint8(msg.Config.Type)},
		Log:  "registered bond type " + msg.Config.Type.String(),
	}, nil
}

func (h registerBondHandler) validate(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*RegisterBondMsg, *Registry, error) {
	var msg RegisterBondMsg
	if err := tenor.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	reg, err := LoadRegistry(db)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, reg.Authority) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "not the registry authority")
	}
	return &msg, reg, nil
}
