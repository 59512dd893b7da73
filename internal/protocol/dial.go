package protocol

import (
	"github.com/danmuck/streamwire/internal/protocol/buffer"
	"github.com/danmuck/streamwire/internal/protocol/field"
)

var (
	dialPayload     = field.Payload{Offset: DialHeaderLen}
	dialConfPayload = field.Payload{Offset: DialConfHeaderLen}
)

// Dial opens a connection. Its payload is opaque to the codec; the
// handshake layer decides what goes there and how long it is.
type Dial struct {
	base
}

func NewDial(payloadSize int) *Dial {
	return &Dial{newBase(DialHeaderLen+payloadSize, OpDial)}
}

// AsDial wraps a received buffer. Call Validate before reading fields.
func AsDial(buf buffer.Buffer) *Dial { return &Dial{base{buf: buf}} }

func (m *Dial) Validate(payloadSize int) bool {
	return m.holds(DialHeaderLen, payloadSize)
}

func (m *Dial) SetSrcConnID(id uint32) *Dial {
	srcConnID.Set(m.view(), id)
	return m
}

func (m *Dial) SetDstConnID(id uint32) *Dial {
	dstConnID.Set(m.view(), id)
	return m
}

func (m *Dial) SetPayload(p []byte) *Dial {
	dialPayload.Set(m.view(), p)
	return m
}

func (m *Dial) PayloadView() buffer.View { return dialPayload.View(m.view()) }

func (m *Dial) TakePayload() buffer.Buffer { return dialPayload.Take(m.Release()) }

func (m *Dial) Payload() []byte { return dialPayload.Bytes(m.view()) }

// DialConf answers a Dial and shares its layout.
type DialConf struct {
	base
}

func NewDialConf(payloadSize int) *DialConf {
	return &DialConf{newBase(DialConfHeaderLen+payloadSize, OpDialConf)}
}

// AsDialConf wraps a received buffer. Call Validate before reading fields.
func AsDialConf(buf buffer.Buffer) *DialConf { return &DialConf{base{buf: buf}} }

func (m *DialConf) Validate(payloadSize int) bool {
	return m.holds(DialConfHeaderLen, payloadSize)
}

func (m *DialConf) SetSrcConnID(id uint32) *DialConf {
	srcConnID.Set(m.view(), id)
	return m
}

func (m *DialConf) SetDstConnID(id uint32) *DialConf {
	dstConnID.Set(m.view(), id)
	return m
}

func (m *DialConf) SetPayload(p []byte) *DialConf {
	dialConfPayload.Set(m.view(), p)
	return m
}

func (m *DialConf) PayloadView() buffer.View { return dialConfPayload.View(m.view()) }

func (m *DialConf) TakePayload() buffer.Buffer { return dialConfPayload.Take(m.Release()) }

func (m *DialConf) Payload() []byte { return dialConfPayload.Bytes(m.view()) }
