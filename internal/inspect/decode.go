// Package inspect turns raw datagrams into readable reports and back.
//
// It is a consumer of the protocol codec, used by wirectl and by tests that
// need to look at captured traffic. Every decode is counted and logged.
package inspect

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/danmuck/streamwire/internal/observability"
	"github.com/danmuck/streamwire/internal/protocol"
	"github.com/danmuck/streamwire/internal/protocol/buffer"
	"github.com/rs/zerolog"
)

var ErrInvalid = errors.New("inspect: datagram failed validation")

// Options carries the payload sizes only the handshake layer knows.
type Options struct {
	DialPayloadSize     int
	DialConfPayloadSize int
}

// Report is a flat view of one decoded message. Fields a message type does
// not carry are left zero.
type Report struct {
	Opcode       protocol.Opcode
	Len          int
	SrcConnID    uint32
	DstConnID    uint32
	PacketNumber uint64
	StreamID     uint16
	Offset       uint64
	Length       uint16
	Fin          bool
	Ranges       []uint64
	Payload      []byte
}

// MarshalZerologObject lets a report be attached to a log event.
func (r Report) MarshalZerologObject(e *zerolog.Event) {
	e.Str("opcode", r.Opcode.String()).
		Int("len", r.Len).
		Uint32("src_conn_id", r.SrcConnID).
		Uint32("dst_conn_id", r.DstConnID)
	switch r.Opcode {
	case protocol.OpData, protocol.OpDataFin:
		e.Uint64("packet_number", r.PacketNumber).
			Uint16("stream_id", r.StreamID).
			Uint64("offset", r.Offset).
			Uint16("length", r.Length).
			Bool("fin", r.Fin).
			Hex("payload", r.Payload)
	case protocol.OpAck:
		e.Uint64("packet_number", r.PacketNumber).
			Interface("ranges", r.Ranges)
	case protocol.OpDial, protocol.OpDialConf:
		e.Hex("payload", r.Payload)
	case protocol.OpSkipStream, protocol.OpFlushStream:
		e.Uint16("stream_id", r.StreamID).
			Uint64("offset", r.Offset)
	case protocol.OpFlushConf:
		e.Uint16("stream_id", r.StreamID)
	}
}

// Decode classifies raw, validates it and reports its fields. raw is copied,
// so the caller keeps ownership. DATA is validated against its own length
// field; DIAL and DIALCONF against opts.
func Decode(raw []byte, opts Options) (Report, error) {
	logger := observability.Logger("inspect")
	buf := buffer.Wrap(bytes.Clone(raw))

	op, err := protocol.PeekOpcode(buf.Weak())
	if err != nil {
		observability.RecordInspect("unknown", false, len(raw))
		observability.DatagramEvent(logger, "unknown", false, len(raw)).Err(err).Msg("datagram rejected")
		return Report{}, err
	}

	r, ok := decode(op, buf, opts)
	observability.RecordInspect(op.String(), ok, len(raw))
	if !ok {
		observability.DatagramEvent(logger, op.String(), false, len(raw)).Msg("datagram rejected")
		return Report{Opcode: op, Len: len(raw)}, fmt.Errorf("%w: %s of %d bytes", ErrInvalid, op, len(raw))
	}
	observability.DatagramEvent(logger, op.String(), true, len(raw)).EmbedObject(r).Msg("datagram")
	return r, nil
}

func decode(op protocol.Opcode, buf buffer.Buffer, opts Options) (Report, bool) {
	r := Report{Opcode: op, Len: buf.Len()}
	switch op {
	case protocol.OpData, protocol.OpDataFin:
		m := protocol.AsData(buf)
		if !m.Validate(0) || !m.Validate(int(m.Length())) {
			return r, false
		}
		fillConn(&r, m)
		r.PacketNumber = m.PacketNumber()
		r.StreamID = m.StreamID()
		r.Offset = m.Offset()
		r.Length = m.Length()
		r.Fin = m.IsFin()
		r.Payload = m.Payload()[:m.Length()]
	case protocol.OpAck:
		m := protocol.AsAck(buf)
		if !m.Validate() {
			return r, false
		}
		fillConn(&r, m)
		r.PacketNumber = m.PacketNumber()
		ranges, err := m.CollectRanges()
		if err != nil {
			return r, false
		}
		r.Ranges = ranges
	case protocol.OpDial:
		m := protocol.AsDial(buf)
		if !m.Validate(opts.DialPayloadSize) {
			return r, false
		}
		fillConn(&r, m)
		r.Payload = m.Payload()
	case protocol.OpDialConf:
		m := protocol.AsDialConf(buf)
		if !m.Validate(opts.DialConfPayloadSize) {
			return r, false
		}
		fillConn(&r, m)
		r.Payload = m.Payload()
	case protocol.OpConf:
		m := protocol.AsConf(buf)
		if !m.Validate() {
			return r, false
		}
		fillConn(&r, m)
	case protocol.OpRst:
		m := protocol.AsRst(buf)
		if !m.Validate() {
			return r, false
		}
		fillConn(&r, m)
	case protocol.OpSkipStream:
		m := protocol.AsSkipStream(buf)
		if !m.Validate() {
			return r, false
		}
		fillConn(&r, m)
		r.StreamID = m.StreamID()
		r.Offset = m.Offset()
	case protocol.OpFlushStream:
		m := protocol.AsFlushStream(buf)
		if !m.Validate() {
			return r, false
		}
		fillConn(&r, m)
		r.StreamID = m.StreamID()
		r.Offset = m.Offset()
	case protocol.OpFlushConf:
		m := protocol.AsFlushConf(buf)
		if !m.Validate() {
			return r, false
		}
		fillConn(&r, m)
		r.StreamID = m.StreamID()
	default:
		return r, false
	}
	return r, true
}

func fillConn(r *Report, m protocol.Message) {
	r.SrcConnID = m.SrcConnID()
	r.DstConnID = m.DstConnID()
}
