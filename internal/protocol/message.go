package protocol

import (
	"github.com/danmuck/streamwire/internal/protocol/buffer"
	"github.com/danmuck/streamwire/internal/protocol/field"
)

// Message lengths. Variable-length messages list their fixed header size.
const (
	HeaderLen         = 2
	DataHeaderLen     = 30
	AckHeaderLen      = 20
	AckRangeLen       = 8
	DialHeaderLen     = 10
	DialConfHeaderLen = 10
	ConfLen           = 10
	RstLen            = 10
	SkipStreamLen     = 20
	FlushStreamLen    = 20
	FlushConfLen      = 12
)

const opcodeOffset = 1

// Fields shared by every message.
var (
	srcConnID = field.Swapped32(6, 2)
	dstConnID = field.Swapped32(2, 6)
)

// Message is the behaviour common to all typed messages.
type Message interface {
	Opcode() Opcode
	SrcConnID() uint32
	DstConnID() uint32
	Len() int
	Release() buffer.Buffer
}

// base holds the buffer a typed message wraps.
type base struct {
	buf buffer.Buffer
}

func newBase(size int, op Opcode) base {
	b := buffer.New(size)
	b.PutUint8Unsafe(opcodeOffset, uint8(op))
	return base{buf: b}
}

func (m *base) view() buffer.View { return m.buf.Weak() }

func (m *base) atLeast(n int) bool { return n >= 0 && m.buf.Len() >= n }

// holds reports whether the buffer carries a fixed header of headerLen bytes
// followed by at least payloadSize bytes.
func (m *base) holds(headerLen, payloadSize int) bool {
	return payloadSize >= 0 && m.atLeast(headerLen) && m.atLeast(headerLen+payloadSize)
}

// Opcode returns the tag at byte 1. Received messages must be validated first.
func (m *base) Opcode() Opcode { return Opcode(m.buf.Uint8Unsafe(opcodeOffset)) }

// SrcConnID is the local connection id from the reader's point of view.
func (m *base) SrcConnID() uint32 { return srcConnID.Get(m.view()) }

// DstConnID is the remote connection id from the reader's point of view.
func (m *base) DstConnID() uint32 { return dstConnID.Get(m.view()) }

func (m *base) Len() int { return m.buf.Len() }

// Bytes returns the encoded message without copying.
func (m *base) Bytes() []byte { return m.buf.Bytes() }

// Release hands the buffer back to the caller. The message is empty
// afterwards and must not be used again.
func (m *base) Release() buffer.Buffer {
	b := m.buf
	m.buf = buffer.Buffer{}
	return b
}
