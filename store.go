package tenor

// ReadOnlyKVStore is a simple interface to read data out of a store.
type ReadOnlyKVStore interface {
	// Get returns nil if the key does not exist.
	Get(key []byte) ([]byte, error)

	// Has checks for the existence of a key.
	Has(key []byte) (bool, error)

	// Iterator iterates over a domain of keys in ascending order.
	// End is exclusive. Start must be less than end, or the iterator
	// is invalid. Iterator must be released, not garbage collected.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator iterates over a domain of keys in descending
	// order. End is exclusive.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write-only subset of a KVStore.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is a simple interface to get/set data.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter

	// NewBatch returns a batch that can write multiple ops atomically.
	NewBatch() Batch
}

// Batch groups writes to be committed in one shot.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator allows iteration over a range of keys.
//
//	for {
//		key, value, err := it.Next()
//		if errors.ErrIteratorDone.Is(err) {
//			break
//		} else if err != nil {
//			return err
//		}
//		...
//	}
//	it.Release()
type Iterator interface {
	// Next returns the next key/value pair, or ErrIteratorDone when
	// the range is exhausted.
	Next() (key, value []byte, err error)

	// Release frees resources held by the iterator. Safe to call more
	// than once.
	Release()
}

// CacheableKVStore is a KVStore that can be wrapped with a cache.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap buffers writes on top of another store until they are
// either written down or discarded. This is the unit-of-work primitive:
// an operation stages every mutation in a cache wrap and the executor
// writes it only when the whole operation succeeded.
type KVCacheWrap interface {
	CacheableKVStore

	// Write flushes the buffered writes to the backing store.
	Write() error

	// Discard drops all buffered writes.
	Discard()
}

// CommitKVStore is a persistent store that can load and flush its state.
type CommitKVStore interface {
	CacheableKVStore

	// Close releases the underlying storage engine.
	Close() error
}
