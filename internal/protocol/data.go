package protocol

import (
	"github.com/danmuck/streamwire/internal/protocol/buffer"
	"github.com/danmuck/streamwire/internal/protocol/field"
)

var (
	dataPacketNumber = field.U64(10)
	dataStreamID     = field.U16(18)
	dataOffset       = field.U64(20)
	dataLength       = field.U16(28)
	dataPayload      = field.Payload{Offset: DataHeaderLen}
)

// Data carries one fragment of a stream. Byte 1 doubles as the fin flag:
// OpData for an ordinary fragment, OpDataFin for the last one.
type Data struct {
	base
}

// NewData allocates a DATA message with room for payloadSize bytes.
func NewData(payloadSize int, fin bool) *Data {
	op := OpData
	if fin {
		op = OpDataFin
	}
	return &Data{newBase(DataHeaderLen+payloadSize, op)}
}

// AsData wraps a received buffer. Call Validate before reading fields.
func AsData(buf buffer.Buffer) *Data { return &Data{base{buf: buf}} }

// Validate reports whether the buffer holds the header and payloadSize bytes.
func (m *Data) Validate(payloadSize int) bool {
	return m.holds(DataHeaderLen, payloadSize)
}

func (m *Data) IsFin() bool { return m.buf.Uint8Unsafe(opcodeOffset) == 1 }

func (m *Data) SetSrcConnID(id uint32) *Data {
	srcConnID.Set(m.view(), id)
	return m
}

func (m *Data) SetDstConnID(id uint32) *Data {
	dstConnID.Set(m.view(), id)
	return m
}

func (m *Data) PacketNumber() uint64 { return dataPacketNumber.Get(m.view()) }

func (m *Data) SetPacketNumber(n uint64) *Data {
	dataPacketNumber.Set(m.view(), n)
	return m
}

func (m *Data) StreamID() uint16 { return dataStreamID.Get(m.view()) }

func (m *Data) SetStreamID(id uint16) *Data {
	dataStreamID.Set(m.view(), id)
	return m
}

// Offset is the stream byte offset of the first payload byte.
func (m *Data) Offset() uint64 { return dataOffset.Get(m.view()) }

func (m *Data) SetOffset(off uint64) *Data {
	dataOffset.Set(m.view(), off)
	return m
}

func (m *Data) Length() uint16 { return dataLength.Get(m.view()) }

func (m *Data) SetLength(n uint16) *Data {
	dataLength.Set(m.view(), n)
	return m
}

func (m *Data) SetPayload(p []byte) *Data {
	dataPayload.Set(m.view(), p)
	return m
}

// PayloadView borrows the payload region.
func (m *Data) PayloadView() buffer.View { return dataPayload.View(m.view()) }

// TakePayload consumes the message and returns the payload as an owned buffer.
func (m *Data) TakePayload() buffer.Buffer { return dataPayload.Take(m.Release()) }

func (m *Data) Payload() []byte { return dataPayload.Bytes(m.view()) }
