package rates

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
	"github.com/iov-one/tenor/x"
)

// RegisterRoutes installs the rates message handlers. Only the issuer
// may create new feeds; each feed's own authority publishes its rates.
func RegisterRoutes(r tenor.Registry, auth x.Authenticator, issuer tenor.Address) {
	r.Handle(&CreateFeedMsg{}, createFeedHandler{auth: auth, issuer: issuer})
	r.Handle(&SetRateMsg{}, setRateHandler{auth: auth})
}

type createFeedHandler struct {
	auth   x.Authenticator
	issuer tenor.Address
}

var _ tenor.Handler = createFeedHandler{}

func (h createFeedHandler) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tenor.CheckResult{}, nil
}

func (h createFeedHandler) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	feed := PriceFeed{
		Metadata:  &tenor.Metadata{Schema: 1},
		FeedID:    msg.FeedID,
		Pair:      msg.Pair,
		Authority: msg.Authority,
	}
	if err := SaveFeed(db, &feed); err != nil {
		return nil, err
	}
	return &tenor.DeliverResult{
		Data: []byte(msg.FeedID),
		Log:  "created feed " + msg.FeedID,
	}, nil
}

func (h createFeedHandler) validate(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*CreateFeedMsg, error) {
	var msg CreateFeedMsg
	if err := tenor.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, h.issuer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not the feed issuer")
	}
	switch exists, err := HasFeed(db, msg.FeedID); {
	case err != nil:
		return nil, err
	case exists:
		return nil, errors.Wrapf(errors.ErrDuplicate, "feed %s", msg.FeedID)
	}
	return &msg, nil
}

type setRateHandler struct {
	auth x.Authenticator
}

var _ tenor.Handler = setRateHandler{}

func (h setRateHandler) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tenor.CheckResult{}, nil
}

func (h setRateHandler) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.DeliverResult, error) {
	feed, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := SaveFeed(db, feed); err != nil {
		return nil, err
	}
	return &tenor.DeliverResult{Log: "updated feed " + feed.FeedID}, nil
}

func (h setRateHandler) validate(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*PriceFeed, error) {
	var msg SetRateMsg
	if err := tenor.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	feed, err := LoadFeed(db, msg.FeedID)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, feed.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not the feed authority")
	}
	now, err := tenor.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	feed.Rate = msg.Rate
	feed.UpdatedAt = tenor.AsUnixTime(now)
	return feed, nil
}
