// Package compliance implements the identity and compliance records the
// deposit paths consult: per-user KYC status with jurisdiction and
// expiry, and the verification tier. Records are written by a designated
// registrar and read through the Gate helper.
package compliance

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/codec"
	"github.com/iov-one/tenor/errors"
	"github.com/iov-one/tenor/orm"
)

// BlockedJurisdiction is the jurisdiction code that is denied access.
const BlockedJurisdiction = 4

// Entry is the compliance status of one user.
type Entry struct {
	Metadata     *tenor.Metadata
	Active       bool
	Jurisdiction uint16
	// ExpiresAt is when the verification lapses. Zero means the entry
	// never expires.
	ExpiresAt tenor.UnixTime
}

var _ orm.Model = (*Entry)(nil)

func (e *Entry) Validate() error {
	if err := e.Metadata.Validate(); err != nil {
		return err
	}
	if err := e.ExpiresAt.Validate(); err != nil {
		return errors.Wrap(err, "expires at")
	}
	return nil
}

func (e *Entry) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	w.Uint32(e.Metadata.Schema)
	w.Bool(e.Active)
	w.Uint16(e.Jurisdiction)
	w.Int64(int64(e.ExpiresAt))
	return w.Bytes()
}

func (e *Entry) Unmarshal(raw []byte) error {
	r := codec.NewReader(raw)
	e.Metadata = &tenor.Metadata{Schema: r.Uint32()}
	e.Active = r.Bool()
	e.Jurisdiction = r.Uint16()
	e.ExpiresAt = tenor.UnixTime(r.Int64())
	return r.Close()
}

// Identity is the verification tier of one user.
type Identity struct {
	Metadata *tenor.Metadata
	Tier     uint8
}

var _ orm.Model = (*Identity)(nil)

func (i *Identity) Validate() error {
	if err := i.Metadata.Validate(); err != nil {
		return err
	}
	if i.Tier > 4 {
		return errors.Wrapf(errors.ErrModel, "invalid tier: %d", i.Tier)
	}
	return nil
}

func (i *Identity) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	w.Uint32(i.Metadata.Schema)
	w.Uint8(i.Tier)
	return w.Bytes()
}

func (i *Identity) Unmarshal(raw []byte) error {
	r := codec.NewReader(raw)
	i.Metadata = &tenor.Metadata{Schema: r.Uint32()}
	i.Tier = r.Uint8()
	return r.Close()
}

var (
	entries    = orm.NewModelBucket("kyc")
	identities = orm.NewModelBucket("identity")
)

// LoadEntry reads the compliance entry of a user.
func LoadEntry(db tenor.ReadOnlyKVStore, user tenor.Address) (*Entry, error) {
	var e Entry
	if err := entries.One(db, user, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// SaveEntry persists the compliance entry of a user.
func SaveEntry(db tenor.KVStore, user tenor.Address, e *Entry) error {
	return entries.Put(db, user, e)
}

// LoadIdentity reads the identity record of a user.
func LoadIdentity(db tenor.ReadOnlyKVStore, user tenor.Address) (*Identity, error) {
	var i Identity
	if err := identities.One(db, user, &i); err != nil {
		return nil, err
	}
	return &i, nil
}

// SaveIdentity persists the identity record of a user.
func SaveIdentity(db tenor.KVStore, user tenor.Address, i *Identity) error {
	return identities.Put(db, user, i)
}

// Gate checks that the user may transact at the given time and returns
// the verification tier. It fails when the compliance entry is missing
// or inactive, the jurisdiction is blocked, the verification lapsed, or
// the tier grants no access.
func Gate(db tenor.ReadOnlyKVStore, user tenor.Address, now tenor.UnixTime) (uint8, error) {
	entry, err := LoadEntry(db, user)
	if err != nil {
		if errors.ErrNotFound.Is(err) {
			return 0, errors.Wrapf(ErrRequired, "user %s", user)
		}
		return 0, err
	}
	if !entry.Active {
		return 0, errors.Wrapf(ErrRequired, "user %s is inactive", user)
	}
	if entry.Jurisdiction == BlockedJurisdiction {
		return 0, errors.Wrapf(ErrJurisdiction, "code %d", entry.Jurisdiction)
	}
	if entry.ExpiresAt != 0 && now >= entry.ExpiresAt {
		return 0, errors.Wrapf(ErrComplianceExpired, "since %s", entry.ExpiresAt)
	}

	identity, err := LoadIdentity(db, user)
	if err != nil {
		if errors.ErrNotFound.Is(err) {
			return 0, errors.Wrapf(ErrRequired, "user %s has no identity", user)
		}
		return 0, err
	}
	if identity.Tier == 0 {
		return 0, errors.Wrap(ErrTierTooLow, "tier 0 has no access")
	}
	return identity.Tier, nil
}
