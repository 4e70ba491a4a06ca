// Package orm provides a thin model persistence layer over a raw
// key-value store: named buckets for model collections, sequences for
// identifier generation and singletons for module configuration.
package orm

import (
	"regexp"

	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
)

// Model is implemented by anything a bucket can persist.
type Model interface {
	Marshal() ([]byte, error)
	Unmarshal(raw []byte) error
	Validate() error
}

// isBucketName ensures bucket names are short and cannot collide with
// the reserved sequence and singleton key spaces.
var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// ModelBucket stores a collection of models under a common key prefix.
type ModelBucket struct {
	name   string
	prefix []byte
}

// NewModelBucket returns a bucket with the given name. The name becomes
// part of every database key, so it must never change for stored data.
// An invalid name is a programmer error and panics.
func NewModelBucket(name string) *ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	return &ModelBucket{
		name:   name,
		prefix: []byte(name + ":"),
	}
}

// DBKey returns the raw store key for the given model key.
func (b *ModelBucket) DBKey(key []byte) []byte {
	return append(append([]byte{}, b.prefix...), key...)
}

// One loads a single model by key. Missing entity is an ErrNotFound.
func (b *ModelBucket) One(db tenor.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s: no entity under key %X", b.name, key)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "%s: cannot deserialize entity %X", b.name, key)
	}
	return nil
}

// Has returns true if an entity exists under the given key.
func (b *ModelBucket) Has(db tenor.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Put validates and stores the model under the given key.
func (b *ModelBucket) Put(db tenor.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrapf(err, "%s: invalid model", b.name)
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "%s: cannot serialize entity", b.name)
	}
	return db.Set(b.DBKey(key), raw)
}

// Delete removes the entity. Deleting a non-existing entity is not an
// error.
func (b *ModelBucket) Delete(db tenor.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}

// Iterator returns an ascending iterator over all entities whose model
// key begins with keyPrefix. Pass nil to iterate the whole bucket. The
// keys produced by the iterator have the bucket prefix trimmed.
func (b *ModelBucket) Iterator(db tenor.ReadOnlyKVStore, keyPrefix []byte) (tenor.Iterator, error) {
	start, end := prefixRange(b.DBKey(keyPrefix))
	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return &trimIterator{it: it, trim: len(b.prefix)}, nil
}

type trimIterator struct {
	it   tenor.Iterator
	trim int
}

func (i *trimIterator) Next() ([]byte, []byte, error) {
	key, value, err := i.it.Next()
	if err != nil {
		return nil, nil, err
	}
	return key[i.trim:], value, nil
}

func (i *trimIterator) Release() {
	i.it.Release()
}

// prefixRange turns a prefix into a (start, end) range suitable for an
// iterator. The end is the shortest key greater than every key with the
// prefix, or nil when the prefix is all 0xff.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return prefix, end[:i+1]
		}
	}
	return prefix, nil
}
