package protocol

import "github.com/danmuck/streamwire/internal/protocol/buffer"

// Conf confirms a connection after DialConf.
type Conf struct {
	base
}

func NewConf() *Conf { return &Conf{newBase(ConfLen, OpConf)} }

// AsConf wraps a received buffer. Call Validate before reading fields.
func AsConf(buf buffer.Buffer) *Conf { return &Conf{base{buf: buf}} }

func (m *Conf) Validate() bool { return m.atLeast(ConfLen) }

func (m *Conf) SetSrcConnID(id uint32) *Conf {
	srcConnID.Set(m.view(), id)
	return m
}

func (m *Conf) SetDstConnID(id uint32) *Conf {
	dstConnID.Set(m.view(), id)
	return m
}

// Rst tears a connection down.
type Rst struct {
	base
}

func NewRst() *Rst { return &Rst{newBase(RstLen, OpRst)} }

// AsRst wraps a received buffer. Call Validate before reading fields.
func AsRst(buf buffer.Buffer) *Rst { return &Rst{base{buf: buf}} }

func (m *Rst) Validate() bool { return m.atLeast(RstLen) }

func (m *Rst) SetSrcConnID(id uint32) *Rst {
	srcConnID.Set(m.view(), id)
	return m
}

func (m *Rst) SetDstConnID(id uint32) *Rst {
	dstConnID.Set(m.view(), id)
	return m
}
