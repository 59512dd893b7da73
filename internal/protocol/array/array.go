// Package array encodes homogeneous runs of fixed-size records.
//
// The record count is never stored next to the array; it comes from a header
// field owned by the enclosing message. Writing is split into sizing
// (RequiredLen), allocation (done by the caller) and Write, and the caller
// decides when to reclaim unused tail capacity.
package array

import (
	"iter"

	"github.com/danmuck/streamwire/internal/protocol/buffer"
)

// Record describes how one array element is laid out.
type Record[T any] interface {
	Size() int
	Read(v buffer.View, off int) T
	Write(v buffer.View, off int, val T)
}

// Uint64LE is an 8-byte little-endian record.
type Uint64LE struct{}

func (Uint64LE) Size() int { return 8 }

func (Uint64LE) Read(v buffer.View, off int) uint64 { return v.Uint64LEUnsafe(off) }

func (Uint64LE) Write(v buffer.View, off int, val uint64) { v.PutUint64LEUnsafe(off, val) }

// Field is an array starting at Begin.
type Field[T any] struct {
	Begin int
	Rec   Record[T]
}

// RequiredLen returns the message length needed to hold n records.
func (f Field[T]) RequiredLen(n int) int {
	return f.Begin + n*f.Rec.Size()
}

// Fits reports how many whole records a view of length size can hold.
func (f Field[T]) Fits(size int) int {
	if size <= f.Begin {
		return 0
	}
	return (size - f.Begin) / f.Rec.Size()
}

// Start returns a cursor on the first record.
func (f Field[T]) Start(v buffer.View) Cursor[T] {
	return Cursor[T]{v: v, rec: f.Rec, off: f.Begin}
}

// Stop returns the cursor one past the last of count records.
func (f Field[T]) Stop(v buffer.View, count int) Cursor[T] {
	return Cursor[T]{v: v, rec: f.Rec, off: f.RequiredLen(count)}
}

// All yields count records in order. The sequence can be ranged over any
// number of times. The view must hold RequiredLen(count) bytes.
func (f Field[T]) All(v buffer.View, count int) iter.Seq[T] {
	return func(yield func(T) bool) {
		end := f.Stop(v, count)
		for c := f.Start(v); !c.Equal(end); c = c.Next() {
			if !yield(c.Value()) {
				return
			}
		}
	}
}

// Collect reads count records, failing with buffer.ErrOutOfRange instead of
// reading past the view.
func (f Field[T]) Collect(v buffer.View, count int) ([]T, error) {
	if count < 0 || v.Len() < f.RequiredLen(count) {
		return nil, buffer.ErrOutOfRange
	}
	out := make([]T, 0, count)
	for val := range f.All(v, count) {
		out = append(out, val)
	}
	return out, nil
}

// Write stores values from Begin onward, stopping when values run out or the
// next record would not fit in v. It returns the number of records written
// and the offset just past the last one.
func (f Field[T]) Write(v buffer.View, values []T) (n int, end int) {
	end = f.Begin
	for _, val := range values {
		if end+f.Rec.Size() > v.Len() {
			break
		}
		f.Rec.Write(v, end, val)
		end += f.Rec.Size()
		n++
	}
	return n, end
}

// Cursor is a position within an array. Two cursors are equal when they point
// at the same offset; the record values are not compared.
type Cursor[T any] struct {
	v   buffer.View
	rec Record[T]
	off int
}

func (c Cursor[T]) Value() T { return c.rec.Read(c.v, c.off) }

func (c Cursor[T]) Next() Cursor[T] {
	c.off += c.rec.Size()
	return c
}

func (c Cursor[T]) Offset() int { return c.off }

func (c Cursor[T]) Equal(o Cursor[T]) bool { return c.off == o.off }
