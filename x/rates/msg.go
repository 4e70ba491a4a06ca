package rates

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
)

const (
	pathCreateFeed = "rates/create_feed"
	pathSetRate    = "rates/set_rate"
)

// CreateFeedMsg registers a new price feed with its publishing
// authority.
type CreateFeedMsg struct {
	Metadata  *tenor.Metadata
	FeedID    string
	Pair      string
	Authority tenor.Address
}

var _ tenor.Msg = (*CreateFeedMsg)(nil)

func (CreateFeedMsg) Path() string {
	return pathCreateFeed
}

func (m *CreateFeedMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	if m.FeedID == "" {
		return errors.Wrap(errors.ErrEmpty, "feed id")
	}
	if m.Pair == "" {
		return errors.Wrap(errors.ErrEmpty, "pair")
	}
	if err := m.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	return nil
}

// SetRateMsg publishes a new rate on an existing feed. Only the feed
// authority may publish.
type SetRateMsg struct {
	Metadata *tenor.Metadata
	FeedID   string
	// Rate is scaled by RateScale and must be positive.
	Rate int64
}

var _ tenor.Msg = (*SetRateMsg)(nil)

func (SetRateMsg) Path() string {
	return pathSetRate
}

func (m *SetRateMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	if m.FeedID == "" {
		return errors.Wrap(errors.ErrEmpty, "feed id")
	}
	if m.Rate <= 0 {
		return errors.Wrap(errors.ErrAmount, "rate must be positive")
	}
	return nil
}
