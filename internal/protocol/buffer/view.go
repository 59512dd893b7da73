package buffer

import (
	"encoding/binary"
	"errors"
)

var ErrOutOfRange = errors.New("buffer: offset out of range")

var le = binary.LittleEndian

// View is a non-owning window onto a Buffer's storage.
//
// A View shares memory with the Buffer it came from and must not be kept
// after that Buffer is released or handed to another owner. Truncating or
// covering the owner does not resize views taken earlier.
type View struct {
	b []byte
}

// Len returns the number of visible bytes.
func (v View) Len() int { return len(v.b) }

// Bytes returns the visible bytes without copying.
func (v View) Bytes() []byte { return v.b }

func (v View) fits(off, width int) bool {
	return off >= 0 && width >= 0 && off <= len(v.b)-width
}

func (v View) Uint8(off int) (uint8, error) {
	if !v.fits(off, 1) {
		return 0, ErrOutOfRange
	}
	return v.b[off], nil
}

func (v View) Uint16LE(off int) (uint16, error) {
	if !v.fits(off, 2) {
		return 0, ErrOutOfRange
	}
	return le.Uint16(v.b[off:]), nil
}

func (v View) Uint32LE(off int) (uint32, error) {
	if !v.fits(off, 4) {
		return 0, ErrOutOfRange
	}
	return le.Uint32(v.b[off:]), nil
}

func (v View) Uint64LE(off int) (uint64, error) {
	if !v.fits(off, 8) {
		return 0, ErrOutOfRange
	}
	return le.Uint64(v.b[off:]), nil
}

func (v View) PutUint8(off int, x uint8) error {
	if !v.fits(off, 1) {
		return ErrOutOfRange
	}
	v.b[off] = x
	return nil
}

func (v View) PutUint16LE(off int, x uint16) error {
	if !v.fits(off, 2) {
		return ErrOutOfRange
	}
	le.PutUint16(v.b[off:], x)
	return nil
}

func (v View) PutUint32LE(off int, x uint32) error {
	if !v.fits(off, 4) {
		return ErrOutOfRange
	}
	le.PutUint32(v.b[off:], x)
	return nil
}

func (v View) PutUint64LE(off int, x uint64) error {
	if !v.fits(off, 8) {
		return ErrOutOfRange
	}
	le.PutUint64(v.b[off:], x)
	return nil
}

// WriteAt copies p into the view starting at off. Nothing is written when p
// does not fit.
func (v View) WriteAt(off int, p []byte) error {
	if !v.fits(off, len(p)) {
		return ErrOutOfRange
	}
	copy(v.b[off:], p)
	return nil
}

// Sub returns the view with its first off bytes hidden.
func (v View) Sub(off int) (View, error) {
	if !v.fits(off, 0) {
		return View{}, ErrOutOfRange
	}
	return View{b: v.b[off:]}, nil
}

// The Unsafe variants below skip bounds validation. Callers must already know
// that off+width <= Len(), typically because they sized the buffer themselves
// or ran a message Validate first.

func (v View) Uint8Unsafe(off int) uint8 { return v.b[off] }

func (v View) Uint16LEUnsafe(off int) uint16 { return le.Uint16(v.b[off:]) }

func (v View) Uint32LEUnsafe(off int) uint32 { return le.Uint32(v.b[off:]) }

func (v View) Uint64LEUnsafe(off int) uint64 { return le.Uint64(v.b[off:]) }

func (v View) PutUint8Unsafe(off int, x uint8) { v.b[off] = x }

func (v View) PutUint16LEUnsafe(off int, x uint16) { le.PutUint16(v.b[off:], x) }

func (v View) PutUint32LEUnsafe(off int, x uint32) { le.PutUint32(v.b[off:], x) }

func (v View) PutUint64LEUnsafe(off int, x uint64) { le.PutUint64(v.b[off:], x) }

func (v View) WriteAtUnsafe(off int, p []byte) { copy(v.b[off:], p) }

func (v View) SubUnsafe(off int) View { return View{b: v.b[off:]} }
