package store

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/iov-one/tenor/errors"
)

// LevelDBStore is a persistent store backed by leveldb. Batches commit
// atomically through the engine's write batch.
type LevelDBStore struct {
	db *leveldb.DB
}

var _ CommitKVStore = (*LevelDBStore)(nil)

// OpenLevelDB opens (creating if needed) a leveldb database at the given
// filesystem path.
func OpenLevelDB(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrHuman, "cannot open leveldb at %q: %s", path, err)
	}
	return &LevelDBStore{db: db}, nil
}

// Close releases the underlying database.
func (l *LevelDBStore) Close() error {
	return l.db.Close()
}

func (l *LevelDBStore) Get(key []byte) ([]byte, error) {
	value, err := l.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return value, nil
}

func (l *LevelDBStore) Has(key []byte) (bool, error) {
	ok, err := l.db.Has(key, nil)
	if err != nil {
		return false, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return ok, nil
}

func (l *LevelDBStore) Set(key, value []byte) error {
	if err := l.db.Put(key, value, nil); err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}
	return nil
}

func (l *LevelDBStore) Delete(key []byte) error {
	if err := l.db.Delete(key, nil); err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}
	return nil
}

func (l *LevelDBStore) Iterator(start, end []byte) (Iterator, error) {
	it := l.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)
	return &levelDBIterator{it: it}, nil
}

func (l *LevelDBStore) ReverseIterator(start, end []byte) (Iterator, error) {
	it := l.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)
	return &levelDBIterator{it: it, reverse: true}, nil
}

// NewBatch returns a batch committing atomically through leveldb.
func (l *LevelDBStore) NewBatch() Batch {
	return &levelDBBatch{
		db: l.db,
		b:  new(leveldb.Batch),
	}
}

// CacheWrap stages writes in memory and commits them in a single
// atomic leveldb batch on Write.
func (l *LevelDBStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(l, l.NewBatch())
}

type levelDBIterator struct {
	it      iterator.Iterator
	reverse bool
	started bool
}

func (i *levelDBIterator) Next() ([]byte, []byte, error) {
	var ok bool
	switch {
	case !i.started && i.reverse:
		ok = i.it.Last()
	case !i.started:
		ok = i.it.First()
	case i.reverse:
		ok = i.it.Prev()
	default:
		ok = i.it.Next()
	}
	i.started = true
	if !ok {
		if err := i.it.Error(); err != nil {
			return nil, nil, errors.Wrap(errors.ErrHuman, err.Error())
		}
		return nil, nil, errors.Wrap(errors.ErrIteratorDone, "leveldb iterator")
	}
	// Engine-owned slices are only valid until the next call.
	key := append([]byte{}, i.it.Key()...)
	value := append([]byte{}, i.it.Value()...)
	return key, value, nil
}

func (i *levelDBIterator) Release() {
	i.it.Release()
}

type levelDBBatch struct {
	db *leveldb.DB
	b  *leveldb.Batch
}

var _ Batch = (*levelDBBatch)(nil)

func (b *levelDBBatch) Set(key, value []byte) error {
	b.b.Put(key, value)
	return nil
}

func (b *levelDBBatch) Delete(key []byte) error {
	b.b.Delete(key)
	return nil
}

func (b *levelDBBatch) Reset() {
	b.b.Reset()
}

func (b *levelDBBatch) Write() error {
	if err := b.db.Write(b.b, nil); err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}
	b.b.Reset()
	return nil
}
