package compliance

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
	"github.com/iov-one/tenor/x"
)

// RegisterRoutes installs the compliance message handlers. Only the
// registrar address may write records.
func RegisterRoutes(r tenor.Registry, auth x.Authenticator, registrar tenor.Address) {
	r.Handle(&SetEntryMsg{}, setEntryHandler{auth: auth, registrar: registrar})
	r.Handle(&SetIdentityMsg{}, setIdentityHandler{auth: auth, registrar: registrar})
}

type setEntryHandler struct {
	auth      x.Authenticator
	registrar tenor.Address
}

var _ tenor.Handler = setEntryHandler{}

func (h setEntryHandler) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &tenor.CheckResult{}, nil
}

func (h setEntryHandler) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	entry := Entry{
		Metadata:     &tenor.Metadata{Schema: 1},
		Active:       msg.Active,
		Jurisdiction: msg.Jurisdiction,
		ExpiresAt:    msg.ExpiresAt,
	}
	if err := SaveEntry(db, msg.User, &entry); err != nil {
		return nil, err
	}
	return &tenor.DeliverResult{Log: "compliance entry set for " + msg.User.String()}, nil
}

func (h setEntryHandler) validate(ctx tenor.Context, tx tenor.Tx) (*SetEntryMsg, error) {
	var msg SetEntryMsg
	if err := tenor.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, h.registrar) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not the registrar")
	}
	return &msg, nil
}

type setIdentityHandler struct {
	auth      x.Authenticator
	registrar tenor.Address
}

var _ tenor.Handler = setIdentityHandler{}

func (h setIdentityHandler) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &tenor.CheckResult{}, nil
}

func (h setIdentityHandler) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	identity := Identity{
		Metadata: &tenor.Metadata{Schema: 1},
		Tier:     msg.Tier,
	}
	if err := SaveIdentity(db, msg.User, &identity); err != nil {
		return nil, err
	}
	return &tenor.DeliverResult{Log: "identity set for " + msg.User.String()}, nil
}

func (h setIdentityHandler) validate(ctx tenor.Context, tx tenor.Tx) (*SetIdentityMsg, error) {
	var msg SetIdentityMsg
	if err := tenor.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, h.registrar) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not the registrar")
	}
	return &msg, nil
}
