package protocol

import (
	"github.com/danmuck/streamwire/internal/protocol/buffer"
	"github.com/danmuck/streamwire/internal/protocol/field"
)

// Stream control messages share the stream id slot; skip and flush also
// carry the stream offset they refer to.
var (
	ctlStreamID = field.U16(10)
	ctlOffset   = field.U64(12)
)

// SkipStream tells the peer to skip a stream ahead to Offset.
type SkipStream struct {
	base
}

func NewSkipStream() *SkipStream { return &SkipStream{newBase(SkipStreamLen, OpSkipStream)} }

// AsSkipStream wraps a received buffer. Call Validate before reading fields.
func AsSkipStream(buf buffer.Buffer) *SkipStream { return &SkipStream{base{buf: buf}} }

func (m *SkipStream) Validate() bool { return m.atLeast(SkipStreamLen) }

func (m *SkipStream) SetSrcConnID(id uint32) *SkipStream {
	srcConnID.Set(m.view(), id)
	return m
}

func (m *SkipStream) SetDstConnID(id uint32) *SkipStream {
	dstConnID.Set(m.view(), id)
	return m
}

func (m *SkipStream) StreamID() uint16 { return ctlStreamID.Get(m.view()) }

func (m *SkipStream) SetStreamID(id uint16) *SkipStream {
	ctlStreamID.Set(m.view(), id)
	return m
}

func (m *SkipStream) Offset() uint64 { return ctlOffset.Get(m.view()) }

func (m *SkipStream) SetOffset(off uint64) *SkipStream {
	ctlOffset.Set(m.view(), off)
	return m
}

// FlushStream asks the peer to flush a stream up to Offset.
type FlushStream struct {
	base
}

func NewFlushStream() *FlushStream { return &FlushStream{newBase(FlushStreamLen, OpFlushStream)} }

// AsFlushStream wraps a received buffer. Call Validate before reading fields.
func AsFlushStream(buf buffer.Buffer) *FlushStream { return &FlushStream{base{buf: buf}} }

func (m *FlushStream) Validate() bool { return m.atLeast(FlushStreamLen) }

func (m *FlushStream) SetSrcConnID(id uint32) *FlushStream {
	srcConnID.Set(m.view(), id)
	return m
}

func (m *FlushStream) SetDstConnID(id uint32) *FlushStream {
	dstConnID.Set(m.view(), id)
	return m
}

func (m *FlushStream) StreamID() uint16 { return ctlStreamID.Get(m.view()) }

func (m *FlushStream) SetStreamID(id uint16) *FlushStream {
	ctlStreamID.Set(m.view(), id)
	return m
}

func (m *FlushStream) Offset() uint64 { return ctlOffset.Get(m.view()) }

func (m *FlushStream) SetOffset(off uint64) *FlushStream {
	ctlOffset.Set(m.view(), off)
	return m
}

// FlushConf confirms a FlushStream.
type FlushConf struct {
	base
}

func NewFlushConf() *FlushConf { return &FlushConf{newBase(FlushConfLen, OpFlushConf)} }

// AsFlushConf wraps a received buffer. Call Validate before reading fields.
func AsFlushConf(buf buffer.Buffer) *FlushConf { return &FlushConf{base{buf: buf}} }

func (m *FlushConf) Validate() bool { return m.atLeast(FlushConfLen) }

func (m *FlushConf) SetSrcConnID(id uint32) *FlushConf {
	srcConnID.Set(m.view(), id)
	return m
}

func (m *FlushConf) SetDstConnID(id uint32) *FlushConf {
	dstConnID.Set(m.view(), id)
	return m
}

func (m *FlushConf) StreamID() uint16 { return ctlStreamID.Get(m.view()) }

func (m *FlushConf) SetStreamID(id uint16) *FlushConf {
	ctlStreamID.Set(m.view(), id)
	return m
}
