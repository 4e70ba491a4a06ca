package orm

import (
	"testing"

	"github.com/iov-one/tenor/codec"
	"github.com/iov-one/tenor/errors"
	"github.com/iov-one/tenor/store"
)

type counter struct {
	Value int64
}

func (c *counter) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	w.Int64(c.Value)
	return w.Bytes()
}

func (c *counter) Unmarshal(raw []byte) error {
	r := codec.NewReader(raw)
	c.Value = r.Int64()
	return r.Close()
}

func (c *counter) Validate() error {
	if c.Value < 0 {
		return errors.Wrap(errors.ErrModel, "negative counter")
	}
	return nil
}

func TestModelBucketPutOneDelete(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")

	if err := b.Put(db, []byte("a"), &counter{Value: 5}); err != nil {
		t.Fatalf("put: %+v", err)
	}

	var got counter
	if err := b.One(db, []byte("a"), &got); err != nil {
		t.Fatalf("one: %+v", err)
	}
	if got.Value != 5 {
		t.Fatalf("got %d", got.Value)
	}

	if err := b.One(db, []byte("missing"), &got); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %v", err)
	}

	if err := b.Delete(db, []byte("a")); err != nil {
		t.Fatalf("delete: %+v", err)
	}
	if err := b.One(db, []byte("a"), &got); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found after delete, got %v", err)
	}
}

func TestModelBucketRejectsInvalidModel(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")
	if err := b.Put(db, []byte("a"), &counter{Value: -1}); !errors.ErrModel.Is(err) {
		t.Fatalf("want model error, got %v", err)
	}
}

func TestModelBucketIteratorTrimsPrefix(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")
	other := NewModelBucket("noise")

	for i, key := range []string{"aa", "ab", "zz"} {
		if err := b.Put(db, []byte(key), &counter{Value: int64(i)}); err != nil {
			t.Fatal(err)
		}
	}
	if err := other.Put(db, []byte("aa"), &counter{Value: 99}); err != nil {
		t.Fatal(err)
	}

	it, err := b.Iterator(db, []byte("a"))
	if err != nil {
		t.Fatalf("iterator: %+v", err)
	}
	defer it.Release()

	var keys []string
	for {
		key, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		if err != nil {
			t.Fatalf("next: %+v", err)
		}
		keys = append(keys, string(key))
	}
	if len(keys) != 2 || keys[0] != "aa" || keys[1] != "ab" {
		t.Fatalf("bad keys: %v", keys)
	}
}

func TestNewModelBucketValidatesName(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on invalid bucket name")
		}
	}()
	NewModelBucket("Bad Name")
}

func TestSequence(t *testing.T) {
	db := store.MemStore()
	seq := NewSequence("depo", "nonce")

	latest, err := seq.Latest(db)
	if err != nil || latest != 0 {
		t.Fatalf("fresh sequence: %d %v", latest, err)
	}
	for want := uint64(1); want <= 3; want++ {
		got, err := seq.NextVal(db)
		if err != nil {
			t.Fatalf("next: %+v", err)
		}
		if got != want {
			t.Fatalf("want %d, got %d", want, got)
		}
	}
	latest, err = seq.Latest(db)
	if err != nil || latest != 3 {
		t.Fatalf("latest: %d %v", latest, err)
	}
}

func TestSingleton(t *testing.T) {
	db := store.MemStore()
	s := NewSingleton("depo")

	var got counter
	if err := s.Load(db, &got); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %v", err)
	}

	if err := s.Save(db, &counter{Value: 42}); err != nil {
		t.Fatalf("save: %+v", err)
	}
	if err := s.Load(db, &got); err != nil {
		t.Fatalf("load: %+v", err)
	}
	if got.Value != 42 {
		t.Fatalf("got %d", got.Value)
	}

	if err := s.Save(db, &counter{Value: -3}); !errors.ErrModel.Is(err) {
		t.Fatalf("want model error, got %v", err)
	}
}
