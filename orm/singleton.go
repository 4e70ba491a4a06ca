package orm

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
)

// Singleton stores at most one model instance per package, conventionally
// the module configuration.
type Singleton struct {
	key []byte
}

// NewSingleton returns singleton storage for the given package name.
func NewSingleton(pkg string) Singleton {
	if !isBucketName(pkg) {
		panic("invalid singleton package name: " + pkg)
	}
	return Singleton{
		key: []byte("_c:" + pkg),
	}
}

// Load reads the singleton into dest. Returns ErrNotFound if it was
// never saved.
func (s Singleton) Load(db tenor.ReadOnlyKVStore, dest Model) error {
	raw, err := db.Get(s.key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "no state under %q", s.key)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot deserialize %q", s.key)
	}
	return nil
}

// Save validates and stores the singleton, replacing any previous value.
func (s Singleton) Save(db tenor.KVStore, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrapf(err, "invalid %q", s.key)
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot serialize %q", s.key)
	}
	return db.Set(s.key, raw)
}
