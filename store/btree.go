package store

import (
	"bytes"
	"sort"

	"github.com/google/btree"

	"github.com/iov-one/tenor/errors"
)

const defaultBTreeDegree = 32

type treeItem struct {
	key   []byte
	value []byte
	// deleted marks a tombstone that shadows the backing store.
	deleted bool
}

func lessItem(a, b treeItem) bool {
	return bytes.Compare(a.key, b.key) < 0
}

// BTreeCacheWrap buffers all writes in an in-memory btree overlay on top
// of a read-only backing store. Reads check the overlay first, tombstones
// included, and fall through to the backing store. Write flushes the
// recorded operations through the batch, Discard drops them.
type BTreeCacheWrap struct {
	bt    *btree.BTreeG[treeItem]
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = (*BTreeCacheWrap)(nil)

// NewBTreeCacheWrap initializes a cache wrap on top of the backing
// store. The batch receives every write and is committed on Write.
func NewBTreeCacheWrap(back ReadOnlyKVStore, batch Batch) *BTreeCacheWrap {
	return &BTreeCacheWrap{
		bt:    btree.NewG(defaultBTreeDegree, lessItem),
		back:  back,
		batch: batch,
	}
}

// MemStore returns an empty in-memory store, primarily for tests.
// Do not call Write on it directly; use CacheWrap for transactional
// writes.
func MemStore() CacheableKVStore {
	return NewBTreeCacheWrap(EmptyKVStore{}, NewNonAtomicBatch(EmptyKVStore{}))
}

// CacheWrap layers another cache on top of this one.
func (b *BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, NewNonAtomicBatch(b))
}

// Write flushes the buffered operations to the backing store and resets
// the overlay.
func (b *BTreeCacheWrap) Write() error {
	if err := b.batch.Write(); err != nil {
		return err
	}
	b.bt.Clear(false)
	return nil
}

// Discard drops all buffered operations.
func (b *BTreeCacheWrap) Discard() {
	b.bt.Clear(false)
	if r, ok := b.batch.(interface{ Reset() }); ok {
		r.Reset()
	}
}

func (b *BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(treeItem{key: key, value: value})
	return b.batch.Set(key, value)
}

func (b *BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(treeItem{key: key, deleted: true})
	return b.batch.Delete(key)
}

func (b *BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

func (b *BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if it, ok := b.bt.Get(treeItem{key: key}); ok {
		if it.deleted {
			return nil, nil
		}
		return it.value, nil
	}
	return b.back.Get(key)
}

func (b *BTreeCacheWrap) Has(key []byte) (bool, error) {
	if it, ok := b.bt.Get(treeItem{key: key}); ok {
		return !it.deleted, nil
	}
	return b.back.Has(key)
}

// Iterator materializes the merged view of the overlay and the backing
// store over [start, end) and iterates it in ascending order.
func (b *BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	return b.merged(start, end, false)
}

// ReverseIterator is like Iterator but in descending order.
func (b *BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	return b.merged(start, end, true)
}

func (b *BTreeCacheWrap) merged(start, end []byte, reverse bool) (Iterator, error) {
	merged := make(map[string][]byte)

	var backIter Iterator
	var err error
	if reverse {
		backIter, err = b.back.ReverseIterator(start, end)
	} else {
		backIter, err = b.back.Iterator(start, end)
	}
	if err != nil {
		return nil, err
	}
	defer backIter.Release()
	if err := drainInto(backIter, merged); err != nil {
		return nil, err
	}

	ascend := func(it treeItem) bool {
		if it.deleted {
			delete(merged, string(it.key))
		} else {
			merged[string(it.key)] = it.value
		}
		return true
	}
	switch {
	case start == nil && end == nil:
		b.bt.Ascend(ascend)
	case end == nil:
		b.bt.AscendGreaterOrEqual(treeItem{key: start}, ascend)
	case start == nil:
		b.bt.AscendLessThan(treeItem{key: end}, ascend)
	default:
		b.bt.AscendRange(treeItem{key: start}, treeItem{key: end}, ascend)
	}

	models := make([]Model, 0, len(merged))
	for key, value := range merged {
		models = append(models, Model{Key: []byte(key), Value: value})
	}
	sort.Slice(models, func(i, j int) bool {
		res := bytes.Compare(models[i].Key, models[j].Key)
		if reverse {
			return res > 0
		}
		return res < 0
	})
	return NewSliceIterator(models), nil
}

func drainInto(iter Iterator, dest map[string][]byte) error {
	for {
		key, value, err := iter.Next()
		switch {
		case err == nil:
			dest[string(key)] = value
		case errors.ErrIteratorDone.Is(err):
			return nil
		default:
			return err
		}
	}
}
