// Package codec implements the binary encoding used for all persisted
// models. The format is little-endian with fixed-width integers and
// length-prefixed byte strings. Both the writer and the reader
// accumulate the first error and turn all further operations into
// no-ops, so encoding code can stay free of per-field error checks.
package codec

import (
	"encoding/binary"
	"math"

	"github.com/iov-one/tenor/errors"
)

// Writer serializes values into a byte buffer.
type Writer struct {
	buf []byte
	err error
}

// NewWriter returns a writer ready for use.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the serialized form, or the first error encountered.
func (w *Writer) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf, nil
}

func (w *Writer) Uint8(v uint8) {
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, v)
}

func (w *Writer) Bool(v bool) {
	if v {
		w.Uint8(1)
	} else {
		w.Uint8(0)
	}
}

func (w *Writer) Uint16(v uint16) {
	if w.err != nil {
		return
	}
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *Writer) Uint32(v uint32) {
	if w.err != nil {
		return
	}
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *Writer) Uint64(v uint64) {
	if w.err != nil {
		return
	}
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *Writer) Int64(v int64) {
	w.Uint64(uint64(v))
}

// Bytes writes a length-prefixed byte string. The length is limited to
// 32 bits.
func (w *Writer) WriteBytes(v []byte) {
	if w.err != nil {
		return
	}
	if len(v) > math.MaxUint32 {
		w.err = errors.Wrap(errors.ErrInput, "byte string too long")
		return
	}
	w.Uint32(uint32(len(v)))
	w.buf = append(w.buf, v...)
}

func (w *Writer) String(v string) {
	w.WriteBytes([]byte(v))
}

// Reader deserializes values from a byte buffer.
type Reader struct {
	buf []byte
	err error
}

// NewReader returns a reader over the given serialized form.
func NewReader(raw []byte) *Reader {
	return &Reader{buf: raw}
}

// Close returns the first error encountered during reading, or an error
// if not all input was consumed.
func (r *Reader) Close() error {
	if r.err != nil {
		return r.err
	}
	if len(r.buf) != 0 {
		return errors.Wrapf(errors.ErrInput, "%d unconsumed bytes", len(r.buf))
	}
	return nil
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.buf) < n {
		r.err = errors.Wrap(errors.ErrInput, "unexpected end of input")
		return nil
	}
	chunk := r.buf[:n]
	r.buf = r.buf[n:]
	return chunk
}

func (r *Reader) Uint8() uint8 {
	c := r.take(1)
	if c == nil {
		return 0
	}
	return c[0]
}

func (r *Reader) Bool() bool {
	switch r.Uint8() {
	case 0:
		return false
	case 1:
		return true
	default:
		if r.err == nil {
			r.err = errors.Wrap(errors.ErrInput, "invalid boolean value")
		}
		return false
	}
}

func (r *Reader) Uint16() uint16 {
	c := r.take(2)
	if c == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(c)
}

func (r *Reader) Uint32() uint32 {
	c := r.take(4)
	if c == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(c)
}

func (r *Reader) Uint64() uint64 {
	c := r.take(8)
	if c == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(c)
}

func (r *Reader) Int64() int64 {
	return int64(r.Uint64())
}

// ReadBytes reads a length-prefixed byte string. The returned slice is
// an independent copy.
func (r *Reader) ReadBytes() []byte {
	n := r.Uint32()
	c := r.take(int(n))
	if c == nil {
		return nil
	}
	out := make([]byte, len(c))
	copy(out, c)
	return out
}

func (r *Reader) String() string {
	return string(r.ReadBytes())
}
