package orm

import (
	"encoding/binary"

	tenor "github.com/iov-one/tenor"
)

// Sequence maintains a strictly increasing counter in the store.
type Sequence struct {
	key []byte
}

// NewSequence returns a sequence counter scoped by bucket and name.
func NewSequence(bucket, name string) Sequence {
	return Sequence{
		key: []byte("_s." + bucket + ":" + name),
	}
}

// NextVal increments the sequence and returns its new value. The first
// returned value is 1.
func (s Sequence) NextVal(db tenor.KVStore) (uint64, error) {
	val, err := s.Latest(db)
	if err != nil {
		return 0, err
	}
	val++
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, val)
	if err := db.Set(s.key, raw); err != nil {
		return 0, err
	}
	return val, nil
}

// Latest returns the most recently issued value, zero if the sequence
// was never used.
func (s Sequence) Latest(db tenor.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.key)
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return 0, nil
	}
	return binary.BigEndian.Uint64(raw), nil
}
