package store

import (
	"bytes"
	"testing"

	"github.com/iov-one/tenor/errors"
)

func TestMemStoreSetGetDelete(t *testing.T) {
	db := MemStore()

	if err := db.Set([]byte("alpha"), []byte("1")); err != nil {
		t.Fatalf("set: %+v", err)
	}
	value, err := db.Get([]byte("alpha"))
	if err != nil {
		t.Fatalf("get: %+v", err)
	}
	if !bytes.Equal(value, []byte("1")) {
		t.Fatalf("got %q", value)
	}
	has, err := db.Has([]byte("alpha"))
	if err != nil || !has {
		t.Fatalf("has: %v %v", has, err)
	}

	if err := db.Delete([]byte("alpha")); err != nil {
		t.Fatalf("delete: %+v", err)
	}
	value, err = db.Get([]byte("alpha"))
	if err != nil {
		t.Fatalf("get after delete: %+v", err)
	}
	if value != nil {
		t.Fatalf("expected nil, got %q", value)
	}
}

func TestCacheWrapWriteAndDiscard(t *testing.T) {
	db := MemStore()
	if err := db.Set([]byte("k"), []byte("base")); err != nil {
		t.Fatal(err)
	}

	// Discarded changes must not leak into the parent.
	cache := db.CacheWrap()
	if err := cache.Set([]byte("k"), []byte("changed")); err != nil {
		t.Fatal(err)
	}
	if err := cache.Set([]byte("other"), []byte("x")); err != nil {
		t.Fatal(err)
	}
	cache.Discard()
	assertValue(t, db, "k", "base")
	assertMissing(t, db, "other")

	// Written changes must be visible in the parent.
	cache = db.CacheWrap()
	if err := cache.Set([]byte("k"), []byte("committed")); err != nil {
		t.Fatal(err)
	}
	if err := cache.Delete([]byte("k2")); err != nil {
		t.Fatal(err)
	}
	if err := cache.Write(); err != nil {
		t.Fatalf("write: %+v", err)
	}
	assertValue(t, db, "k", "committed")
}

func TestCacheWrapShadowsParent(t *testing.T) {
	db := MemStore()
	if err := db.Set([]byte("k"), []byte("base")); err != nil {
		t.Fatal(err)
	}

	cache := db.CacheWrap()
	if err := cache.Delete([]byte("k")); err != nil {
		t.Fatal(err)
	}
	// Tombstone hides the parent value inside the cache.
	value, err := cache.Get([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	if value != nil {
		t.Fatalf("expected tombstone, got %q", value)
	}
	has, err := cache.Has([]byte("k"))
	if err != nil || has {
		t.Fatalf("has after delete: %v %v", has, err)
	}
	// Parent is untouched until Write.
	assertValue(t, db, "k", "base")
}

func TestIteratorMergesCacheAndBacking(t *testing.T) {
	db := MemStore()
	for _, k := range []string{"a", "b", "c"} {
		if err := db.Set([]byte(k), []byte("base-"+k)); err != nil {
			t.Fatal(err)
		}
	}

	cache := db.CacheWrap()
	if err := cache.Set([]byte("b"), []byte("cached-b")); err != nil {
		t.Fatal(err)
	}
	if err := cache.Delete([]byte("c")); err != nil {
		t.Fatal(err)
	}
	if err := cache.Set([]byte("d"), []byte("cached-d")); err != nil {
		t.Fatal(err)
	}

	got := collect(t, cache, nil, nil, false)
	want := []Model{
		{Key: []byte("a"), Value: []byte("base-a")},
		{Key: []byte("b"), Value: []byte("cached-b")},
		{Key: []byte("d"), Value: []byte("cached-d")},
	}
	assertModels(t, want, got)

	rev := collect(t, cache, nil, nil, true)
	if len(rev) != 3 || string(rev[0].Key) != "d" || string(rev[2].Key) != "a" {
		t.Fatalf("bad reverse order: %v", rev)
	}
}

func TestIteratorRange(t *testing.T) {
	db := MemStore()
	for _, k := range []string{"aa", "ab", "b", "ca"} {
		if err := db.Set([]byte(k), []byte{1}); err != nil {
			t.Fatal(err)
		}
	}
	got := collect(t, db, []byte("ab"), []byte("ca"), false)
	if len(got) != 2 || string(got[0].Key) != "ab" || string(got[1].Key) != "b" {
		t.Fatalf("bad range result: %v", got)
	}
}

func collect(t *testing.T, db ReadOnlyKVStore, start, end []byte, reverse bool) []Model {
	t.Helper()
	var it Iterator
	var err error
	if reverse {
		it, err = db.ReverseIterator(start, end)
	} else {
		it, err = db.Iterator(start, end)
	}
	if err != nil {
		t.Fatalf("iterator: %+v", err)
	}
	defer it.Release()

	var out []Model
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return out
		}
		if err != nil {
			t.Fatalf("next: %+v", err)
		}
		out = append(out, Model{Key: key, Value: value})
	}
}

func assertModels(t *testing.T, want, got []Model) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("want %d models, got %d", len(want), len(got))
	}
	for i := range want {
		if !bytes.Equal(want[i].Key, got[i].Key) || !bytes.Equal(want[i].Value, got[i].Value) {
			t.Fatalf("model %d: want %q=%q, got %q=%q", i, want[i].Key, want[i].Value, got[i].Key, got[i].Value)
		}
	}
}

func assertValue(t *testing.T, db ReadOnlyKVStore, key, want string) {
	t.Helper()
	value, err := db.Get([]byte(key))
	if err != nil {
		t.Fatalf("get %q: %+v", key, err)
	}
	if !bytes.Equal(value, []byte(want)) {
		t.Fatalf("key %q: want %q, got %q", key, want, value)
	}
}

func assertMissing(t *testing.T, db ReadOnlyKVStore, key string) {
	t.Helper()
	value, err := db.Get([]byte(key))
	if err != nil {
		t.Fatalf("get %q: %+v", key, err)
	}
	if value != nil {
		t.Fatalf("key %q: expected missing, got %q", key, value)
	}
}
