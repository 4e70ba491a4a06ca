package store

import (
	"github.com/iov-one/tenor/errors"
)

//------------------- helpers --------------------------
// Generally useful utility functions for the other backends.

// SliceIterator wraps an iterator over a materialized set of models.
type SliceIterator struct {
	data []Model
	idx  int
}

// NewSliceIterator creates a new iterator over the given models. The
// slice must already be sorted in iteration order.
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{
		data: data,
	}
}

// Next returns the next model, or ErrIteratorDone when exhausted.
func (s *SliceIterator) Next() ([]byte, []byte, error) {
	if s.idx >= len(s.data) {
		return nil, nil, errors.Wrap(errors.ErrIteratorDone, "slice iterator")
	}
	val := s.data[s.idx]
	s.idx++
	return val.Key, val.Value, nil
}

// Release frees the iterator. Further calls to Next are done.
func (s *SliceIterator) Release() {
	s.data = nil
	s.idx = 0
}

/////////////////////////////////////////////////////////
// Empty KVStore

// EmptyKVStore never holds any data. It is a read backend for a fresh
// in-memory store and a useful test stub.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }

func (EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }

func (EmptyKVStore) Set(key, value []byte) error { return nil }

func (EmptyKVStore) Delete(key []byte) error { return nil }

func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (e EmptyKVStore) NewBatch() Batch { return NewNonAtomicBatch(e) }

/////////////////////////////////////////////////////////
// Non-atomic batch

type opKind byte

const (
	opSet opKind = iota + 1
	opDelete
)

type op struct {
	kind  opKind
	key   []byte
	value []byte
}

func (o op) apply(out SetDeleter) error {
	switch o.kind {
	case opSet:
		return out.Set(o.key, o.value)
	case opDelete:
		return out.Delete(o.key)
	default:
		return errors.Wrapf(errors.ErrType, "unknown batch op: %d", o.kind)
	}
}

// NonAtomicBatch collects writes and applies them one by one on Write.
// It provides no atomicity guarantee itself; it is meant for backends
// that either cannot fail partway or are wrapped in a cache that is.
type NonAtomicBatch struct {
	out SetDeleter
	ops []op
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch creates a batch that writes through to the given
// store on Write.
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{
		out: out,
	}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, op{kind: opSet, key: key, value: value})
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, op{kind: opDelete, key: key})
	return nil
}

// Reset drops all pending operations.
func (b *NonAtomicBatch) Reset() {
	b.ops = nil
}

// Write applies all pending operations and resets the batch.
func (b *NonAtomicBatch) Write() error {
	for _, o := range b.ops {
		if err := o.apply(b.out); err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}
