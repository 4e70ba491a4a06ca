// Package rates implements the price oracle records: exchange rate feeds
// written by their authority and read by the conversion path. A feed is
// only usable while fresh; consumers reject stale or non-positive rates.
package rates

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/codec"
	"github.com/iov-one/tenor/errors"
	"github.com/iov-one/tenor/orm"
)

// RateScale is the fixed-point scale of exchange rates: a rate of
// 2,000,000 means 2.0 units of source per unit of settlement.
const RateScale = 1_000_000

// MaxRateAge is how old a feed update may be before consumers must
// reject it as stale.
const MaxRateAge = 300 // seconds

// PriceFeed is one exchange rate series, keyed by its feed ID.
type PriceFeed struct {
	Metadata *tenor.Metadata
	// FeedID is the unique name of this feed, e.g. "fx-MXN".
	FeedID string
	// Pair describes the quote, e.g. "MXN/USD".
	Pair string
	// Rate is source currency per settlement currency, scaled by
	// RateScale.
	Rate      int64
	UpdatedAt tenor.UnixTime
	// Authority is the only address allowed to publish rates.
	Authority tenor.Address
}

var _ orm.Model = (*PriceFeed)(nil)

func (p *PriceFeed) Validate() error {
	if err := p.Metadata.Validate(); err != nil {
		return err
	}
	if p.FeedID == "" {
		return errors.Wrap(errors.ErrEmpty, "feed id")
	}
	if p.Pair == "" {
		return errors.Wrap(errors.ErrEmpty, "pair")
	}
	if p.Rate < 0 {
		return errors.Wrap(errors.ErrModel, "negative rate")
	}
	if err := p.UpdatedAt.Validate(); err != nil {
		return errors.Wrap(err, "updated at")
	}
	if err := p.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	return nil
}

// CurrentRate returns the rate if it is usable at the given time. A
// non-positive rate is invalid, an update older than MaxRateAge seconds
// is stale.
func (p *PriceFeed) CurrentRate(now tenor.UnixTime) (int64, error) {
	if p.Rate <= 0 {
		return 0, errors.Wrapf(ErrInvalidRate, "feed %s", p.FeedID)
	}
	if now-p.UpdatedAt > MaxRateAge {
		return 0, errors.Wrapf(ErrStaleRate, "feed %s last updated %s", p.FeedID, p.UpdatedAt)
	}
	return p.Rate, nil
}

func (p *PriceFeed) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	w.Uint32(p.Metadata.Schema)
	w.String(p.FeedID)
	w.String(p.Pair)
	w.Int64(p.Rate)
	w.Int64(int64(p.UpdatedAt))
	w.WriteBytes(p.Authority)
	return w.Bytes()
}

func (p *PriceFeed) Unmarshal(raw []byte) error {
	r := codec.NewReader(raw)
	p.Metadata = &tenor.Metadata{Schema: r.Uint32()}
	p.FeedID = r.String()
	p.Pair = r.String()
	p.Rate = r.Int64()
	p.UpdatedAt = tenor.UnixTime(r.Int64())
	p.Authority = tenor.Address(r.ReadBytes())
	return r.Close()
}

var feeds = orm.NewModelBucket("feed")

// LoadFeed reads a price feed by its ID.
func LoadFeed(db tenor.ReadOnlyKVStore, feedID string) (*PriceFeed, error) {
	var p PriceFeed
	if err := feeds.One(db, []byte(feedID), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveFeed persists a price feed under its ID.
func SaveFeed(db tenor.KVStore, p *PriceFeed) error {
	return feeds.Put(db, []byte(p.FeedID), p)
}

// HasFeed returns true if a feed with the given ID exists.
func HasFeed(db tenor.ReadOnlyKVStore, feedID string) (bool, error) {
	return feeds.Has(db, []byte(feedID))
}
