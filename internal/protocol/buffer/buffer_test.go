package buffer

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestLittleEndianRoundTrip(t *testing.T) {
	b := New(16)
	if err := b.PutUint16LE(0, 0xBEEF); err != nil {
		t.Fatalf("put u16: %v", err)
	}
	if err := b.PutUint32LE(2, 0xDEADBEEF); err != nil {
		t.Fatalf("put u32: %v", err)
	}
	if err := b.PutUint64LE(6, math.MaxUint64-1); err != nil {
		t.Fatalf("put u64: %v", err)
	}
	if err := b.PutUint8(14, 0x7f); err != nil {
		t.Fatalf("put u8: %v", err)
	}

	if !bytes.Equal(b.Bytes()[0:2], []byte{0xEF, 0xBE}) {
		t.Fatalf("u16 not little-endian: % x", b.Bytes()[0:2])
	}
	if got, _ := b.Uint16LE(0); got != 0xBEEF {
		t.Fatalf("u16 = %#x", got)
	}
	if got, _ := b.Uint32LE(2); got != 0xDEADBEEF {
		t.Fatalf("u32 = %#x", got)
	}
	if got, _ := b.Uint64LE(6); got != math.MaxUint64-1 {
		t.Fatalf("u64 = %#x", got)
	}
	if got, _ := b.Uint8(14); got != 0x7f {
		t.Fatalf("u8 = %#x", got)
	}
	if got := b.Uint32LEUnsafe(2); got != 0xDEADBEEF {
		t.Fatalf("unsafe u32 = %#x", got)
	}
}

func TestCheckedAccessRejectsOverrun(t *testing.T) {
	b := New(8)
	cases := []struct {
		name string
		err  error
	}{
		{"u8 past end", func() error { _, err := b.Uint8(8); return err }()},
		{"u16 straddles end", func() error { _, err := b.Uint16LE(7); return err }()},
		{"u32 straddles end", func() error { _, err := b.Uint32LE(5); return err }()},
		{"u64 straddles end", func() error { _, err := b.Uint64LE(1); return err }()},
		{"negative offset", func() error { _, err := b.Uint16LE(-1); return err }()},
		{"put u64 straddles end", b.PutUint64LE(4, 1)},
		{"write span too long", b.WriteAt(6, []byte{1, 2, 3})},
	}
	for _, tc := range cases {
		if !errors.Is(tc.err, ErrOutOfRange) {
			t.Fatalf("%s: expected ErrOutOfRange, got %v", tc.name, tc.err)
		}
	}
	if _, err := b.Uint64LE(0); err != nil {
		t.Fatalf("u64 at exact fit: %v", err)
	}
	if !bytes.Equal(b.Bytes(), make([]byte, 8)) {
		t.Fatalf("failed writes mutated buffer: % x", b.Bytes())
	}
}

func TestTruncateAndCover(t *testing.T) {
	b := Wrap([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	if err := b.Truncate(3); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	if b.Len() != 7 {
		t.Fatalf("len after truncate = %d, want 7", b.Len())
	}
	if err := b.Cover(2); err != nil {
		t.Fatalf("cover: %v", err)
	}
	if !bytes.Equal(b.Bytes(), []byte{2, 3, 4, 5, 6}) {
		t.Fatalf("visible after cover = % x", b.Bytes())
	}
	if got := b.Uint8Unsafe(0); got != 2 {
		t.Fatalf("offset 0 after cover = %d, want 2", got)
	}
	if err := b.Truncate(6); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange truncating past start, got %v", err)
	}
	if err := b.Cover(-1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for negative cover, got %v", err)
	}
}

func TestWeakViewSharesStorage(t *testing.T) {
	b := New(4)
	v := b.Weak()
	v.PutUint16LEUnsafe(1, 0x0102)
	if !bytes.Equal(b.Bytes(), []byte{0, 2, 1, 0}) {
		t.Fatalf("owner did not observe view write: % x", b.Bytes())
	}

	sub, err := v.Sub(2)
	if err != nil {
		t.Fatalf("sub: %v", err)
	}
	if sub.Len() != 2 || sub.Uint8Unsafe(0) != 1 {
		t.Fatalf("unexpected sub view: % x", sub.Bytes())
	}
	if _, err := v.Sub(5); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for sub past end, got %v", err)
	}
}
