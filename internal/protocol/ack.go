package protocol

import (
	"iter"
	"math"

	"github.com/danmuck/streamwire/internal/protocol/array"
	"github.com/danmuck/streamwire/internal/protocol/buffer"
	"github.com/danmuck/streamwire/internal/protocol/field"
)

var (
	ackSize         = field.U16(10)
	ackPacketNumber = field.U64(12)
	ackRanges       = array.Field[uint64]{Begin: AckHeaderLen, Rec: array.Uint64LE{}}
)

// MaxAckRanges is the largest count the size field can describe.
const MaxAckRanges = math.MaxUint16

// Ack acknowledges received packets as a list of 8-byte ranges. The number
// of ranges is the size header field; nothing follows the last range.
type Ack struct {
	base
}

// AckLen returns the encoded length of an ACK carrying n ranges.
func AckLen(n int) int { return ackRanges.RequiredLen(n) }

// NewAck allocates an ACK able to hold up to maxRanges ranges. WriteRanges
// reclaims whatever capacity ends up unused.
func NewAck(maxRanges int) *Ack {
	return &Ack{newBase(AckLen(maxRanges), OpAck)}
}

// AsAck wraps a received buffer. Call Validate before reading fields.
func AsAck(buf buffer.Buffer) *Ack { return &Ack{base{buf: buf}} }

// Validate reports whether the buffer is exactly the header plus Size ranges.
func (m *Ack) Validate() bool {
	if !m.atLeast(AckHeaderLen) {
		return false
	}
	return m.buf.Len() == AckLen(int(m.Size()))
}

func (m *Ack) SetSrcConnID(id uint32) *Ack {
	srcConnID.Set(m.view(), id)
	return m
}

func (m *Ack) SetDstConnID(id uint32) *Ack {
	dstConnID.Set(m.view(), id)
	return m
}

// Size is the number of ranges carried.
func (m *Ack) Size() uint16 { return ackSize.Get(m.view()) }

func (m *Ack) SetSize(n uint16) *Ack {
	ackSize.Set(m.view(), n)
	return m
}

func (m *Ack) PacketNumber() uint64 { return ackPacketNumber.Get(m.view()) }

func (m *Ack) SetPacketNumber(n uint64) *Ack {
	ackPacketNumber.Set(m.view(), n)
	return m
}

// RangesBegin and RangesEnd bound the ranges declared by Size.
func (m *Ack) RangesBegin() array.Cursor[uint64] { return ackRanges.Start(m.view()) }

func (m *Ack) RangesEnd() array.Cursor[uint64] {
	return ackRanges.Stop(m.view(), int(m.Size()))
}

// Ranges yields the ranges declared by Size. The message must be valid.
func (m *Ack) Ranges() iter.Seq[uint64] {
	return ackRanges.All(m.view(), int(m.Size()))
}

// CollectRanges copies the ranges declared by Size, failing with
// buffer.ErrOutOfRange when the buffer is too short to hold them.
func (m *Ack) CollectRanges() ([]uint64, error) {
	return ackRanges.Collect(m.view(), int(m.Size()))
}

// WriteRanges stores as many ranges as fit in the allocated buffer, records
// the count in Size and truncates capacity left unused past the last range.
// It returns the number of ranges written.
func (m *Ack) WriteRanges(ranges []uint64) int {
	if len(ranges) > MaxAckRanges {
		ranges = ranges[:MaxAckRanges]
	}
	n, end := ackRanges.Write(m.view(), ranges)
	ackSize.Set(m.view(), uint16(n))
	m.buf.TruncateUnsafe(m.buf.Len() - end)
	return n
}

// SetRanges is WriteRanges for builder chains.
func (m *Ack) SetRanges(ranges []uint64) *Ack {
	m.WriteRanges(ranges)
	return m
}
