package compliance

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
)

const (
	pathSetEntry    = "compliance/set_entry"
	pathSetIdentity = "compliance/set_identity"
)

// SetEntryMsg creates or replaces the compliance entry of a user.
type SetEntryMsg struct {
	Metadata     *tenor.Metadata
	User         tenor.Address
	Active       bool
	Jurisdiction uint16
	ExpiresAt    tenor.UnixTime
}

var _ tenor.Msg = (*SetEntryMsg)(nil)

func (SetEntryMsg) Path() string {
	return pathSetEntry
}

func (m *SetEntryMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	if err := m.User.Validate(); err != nil {
		return errors.Wrap(err, "user")
	}
	if err := m.ExpiresAt.Validate(); err != nil {
		return errors.Wrap(err, "expires at")
	}
	return nil
}

// SetIdentityMsg creates or replaces the identity record of a user.
type SetIdentityMsg struct {
	Metadata *tenor.Metadata
	User     tenor.Address
	Tier     uint8
}

var _ tenor.Msg = (*SetIdentityMsg)(nil)

func (SetIdentityMsg) Path() string {
	return pathSetIdentity
}

func (m *SetIdentityMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	if err := m.User.Validate(); err != nil {
		return errors.Wrap(err, "user")
	}
	if m.Tier > 4 {
		return errors.Wrapf(errors.ErrMsg, "invalid tier: %d", m.Tier)
	}
	return nil
}
