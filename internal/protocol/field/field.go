// Package field maps named wire fields to fixed byte offsets.
//
// A message layout is declared as a table of package-level Uint and Payload
// values; message accessors are thin calls into that table.
package field

import "github.com/danmuck/streamwire/internal/protocol/buffer"

// Unsigned lists the integer widths a wire field can carry.
type Unsigned interface {
	uint16 | uint32 | uint64
}

// Uint is a little-endian integer field. Read and Write usually match; they
// differ for fields that a receiver sees under the opposite name, such as the
// source and destination connection ids.
type Uint[T Unsigned] struct {
	Read  int
	Write int
}

func U16(off int) Uint[uint16] { return Uint[uint16]{Read: off, Write: off} }

func U32(off int) Uint[uint32] { return Uint[uint32]{Read: off, Write: off} }

func U64(off int) Uint[uint64] { return Uint[uint64]{Read: off, Write: off} }

// Swapped32 declares a 32-bit field read at one offset and written at another.
func Swapped32(read, write int) Uint[uint32] { return Uint[uint32]{Read: read, Write: write} }

// Width returns the field size in bytes.
func (f Uint[T]) Width() int {
	var zero T
	switch any(zero).(type) {
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}

// Get reads the field without a bounds check.
func (f Uint[T]) Get(v buffer.View) T {
	var zero T
	switch any(zero).(type) {
	case uint16:
		return T(v.Uint16LEUnsafe(f.Read))
	case uint32:
		return T(v.Uint32LEUnsafe(f.Read))
	default:
		return T(v.Uint64LEUnsafe(f.Read))
	}
}

// Set writes the field without a bounds check.
func (f Uint[T]) Set(v buffer.View, x T) {
	switch val := any(x).(type) {
	case uint16:
		v.PutUint16LEUnsafe(f.Write, val)
	case uint32:
		v.PutUint32LEUnsafe(f.Write, val)
	case uint64:
		v.PutUint64LEUnsafe(f.Write, val)
	}
}

// Lookup reads the field, failing with buffer.ErrOutOfRange when the view is
// too short to hold it.
func (f Uint[T]) Lookup(v buffer.View) (T, error) {
	var zero T
	switch any(zero).(type) {
	case uint16:
		x, err := v.Uint16LE(f.Read)
		return T(x), err
	case uint32:
		x, err := v.Uint32LE(f.Read)
		return T(x), err
	default:
		x, err := v.Uint64LE(f.Read)
		return T(x), err
	}
}

// Store writes the field, failing with buffer.ErrOutOfRange when the view is
// too short to hold it.
func (f Uint[T]) Store(v buffer.View, x T) error {
	switch val := any(x).(type) {
	case uint16:
		return v.PutUint16LE(f.Write, val)
	case uint32:
		return v.PutUint32LE(f.Write, val)
	case uint64:
		return v.PutUint64LE(f.Write, val)
	}
	return nil
}
