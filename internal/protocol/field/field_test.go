package field

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/danmuck/streamwire/internal/protocol/buffer"
)

func TestUintFieldBoundaries(t *testing.T) {
	b := buffer.New(16)
	v := b.Weak()

	u16 := U16(0)
	u32 := U32(2)
	u64 := U64(6)

	for _, x := range []uint16{0, 1, math.MaxUint16} {
		u16.Set(v, x)
		if got := u16.Get(v); got != x {
			t.Fatalf("u16 round trip: got %d want %d", got, x)
		}
	}
	for _, x := range []uint32{0, 1, math.MaxUint32} {
		u32.Set(v, x)
		if got := u32.Get(v); got != x {
			t.Fatalf("u32 round trip: got %d want %d", got, x)
		}
	}
	for _, x := range []uint64{0, 1, math.MaxUint64} {
		u64.Set(v, x)
		if got := u64.Get(v); got != x {
			t.Fatalf("u64 round trip: got %d want %d", got, x)
		}
	}
	if u16.Width() != 2 || u32.Width() != 4 || u64.Width() != 8 {
		t.Fatalf("unexpected widths: %d %d %d", u16.Width(), u32.Width(), u64.Width())
	}
}

func TestSwappedFieldReadsOppositeOffset(t *testing.T) {
	b := buffer.New(10)
	v := b.Weak()
	src := Swapped32(6, 2)
	dst := Swapped32(2, 6)

	src.Set(v, 0x11111111)
	dst.Set(v, 0x22222222)

	if !bytes.Equal(v.Bytes()[2:6], []byte{0x11, 0x11, 0x11, 0x11}) {
		t.Fatalf("src not written at offset 2: % x", v.Bytes())
	}
	if got := dst.Get(v); got != 0x11111111 {
		t.Fatalf("dst read = %#x, want the peer's src", got)
	}
	if got := src.Get(v); got != 0x22222222 {
		t.Fatalf("src read = %#x, want the peer's dst", got)
	}
}

func TestCheckedLookupAndStore(t *testing.T) {
	b := buffer.New(9)
	v := b.Weak()
	f := U64(2)
	if err := f.Store(v, 7); !errors.Is(err, buffer.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange on store, got %v", err)
	}
	if _, err := f.Lookup(v); !errors.Is(err, buffer.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange on lookup, got %v", err)
	}
	g := U64(1)
	if err := g.Store(v, 7); err != nil {
		t.Fatalf("store at exact fit: %v", err)
	}
	if got, err := g.Lookup(v); err != nil || got != 7 {
		t.Fatalf("lookup = %d, %v", got, err)
	}
}

func TestPayloadRegion(t *testing.T) {
	b := buffer.New(14)
	p := Payload{Offset: 10}
	p.Set(b.Weak(), []byte("wire"))

	if got := p.Bytes(b.Weak()); string(got) != "wire" {
		t.Fatalf("payload bytes = %q", got)
	}
	if got := p.View(b.Weak()); got.Len() != 4 || string(got.Bytes()) != "wire" {
		t.Fatalf("payload view = %q", got.Bytes())
	}
	if got := p.Size(b.Weak()); got != 4 {
		t.Fatalf("payload size = %d", got)
	}

	owned := p.Take(b)
	if owned.Len() != 4 || string(owned.Bytes()) != "wire" {
		t.Fatalf("taken payload = %q", owned.Bytes())
	}
	if got := p.Size(buffer.New(3).Weak()); got != 0 {
		t.Fatalf("payload size of short view = %d", got)
	}
}
