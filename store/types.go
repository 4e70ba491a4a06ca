// Package store provides the key-value storage backends: a pure
// in-memory store for tests, a btree overlay providing transactional
// cache-wraps, and a leveldb-backed persistent store.
package store

import (
	tenor "github.com/iov-one/tenor"
)

type (
	ReadOnlyKVStore  = tenor.ReadOnlyKVStore
	KVStore          = tenor.KVStore
	SetDeleter       = tenor.SetDeleter
	Batch            = tenor.Batch
	Iterator         = tenor.Iterator
	CacheableKVStore = tenor.CacheableKVStore
	KVCacheWrap      = tenor.KVCacheWrap
	CommitKVStore    = tenor.CommitKVStore
)

// Model groups a key-value pair, as used in iterator results.
type Model struct {
	Key   []byte
	Value []byte
}
