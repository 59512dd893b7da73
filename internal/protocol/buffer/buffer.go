// Package buffer owns the raw byte regions the wire codec operates on.
//
// Ownership boundary:
// - Buffer: the single owner of a datagram's bytes
// - View: a borrowed window that never outlives its Buffer
// - checked accessors by default, Unsafe accessors as an explicit opt-in
package buffer

// Buffer is an owned, mutable byte region. Integer and span accessors are
// promoted from the embedded View and act on the visible region.
type Buffer struct {
	View
}

// New allocates a zeroed buffer of size bytes.
func New(size int) Buffer {
	return Buffer{View{b: make([]byte, size)}}
}

// Wrap takes ownership of p. The caller must not touch p afterwards.
func Wrap(p []byte) Buffer {
	return Buffer{View{b: p}}
}

// Weak returns a non-owning view of the visible region.
func (b Buffer) Weak() View { return b.View }

// IsZero reports whether b holds no storage, e.g. after being released.
func (b Buffer) IsZero() bool { return b.b == nil }

// Truncate drops n bytes from the tail without reallocating.
func (b *Buffer) Truncate(n int) error {
	if n < 0 || n > len(b.b) {
		return ErrOutOfRange
	}
	b.TruncateUnsafe(n)
	return nil
}

// Cover hides the first n bytes, so the buffer starts at the old offset n.
func (b *Buffer) Cover(n int) error {
	if n < 0 || n > len(b.b) {
		return ErrOutOfRange
	}
	b.CoverUnsafe(n)
	return nil
}

func (b *Buffer) TruncateUnsafe(n int) { b.b = b.b[:len(b.b)-n] }

func (b *Buffer) CoverUnsafe(n int) { b.b = b.b[n:] }
