// Package tenortest provides test doubles and fixtures shared by the
// package tests. It must never be imported by production code.
package tenortest

import (
	"context"
	"encoding/binary"
	"sync/atomic"
	"time"

	tenor "github.com/iov-one/tenor"
)

// Tx is a minimal transaction envelope around a single message.
type Tx struct {
	Msg tenor.Msg
	// Err is returned instead of the message when set.
	Err error
}

var _ tenor.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (tenor.Msg, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg, nil
}

// Msg is a stub message with a fixed path.
type Msg struct {
	RoutePath string
	// ValidateErr is returned by Validate when set.
	ValidateErr error
}

var _ tenor.Msg = (*Msg)(nil)

func (m *Msg) Path() string    { return m.RoutePath }
func (m *Msg) Validate() error { return m.ValidateErr }

var addressCounter uint64

// NewAddress returns a new unique address. Generation is sequential so
// failure messages are stable across runs.
func NewAddress() tenor.Address {
	n := atomic.AddUint64(&addressCounter, 1)
	addr := make(tenor.Address, tenor.AddressLength)
	binary.BigEndian.PutUint64(addr[12:], n)
	return addr
}

// Context returns a context carrying the given execution time.
func Context(now time.Time) tenor.Context {
	return tenor.WithBlockTime(context.Background(), now)
}
