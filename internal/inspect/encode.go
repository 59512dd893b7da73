package inspect

import (
	"fmt"
	"math"

	"github.com/danmuck/streamwire/internal/observability"
	"github.com/danmuck/streamwire/internal/protocol"
)

// Draft describes a message to build. Only the fields its opcode carries are
// used.
type Draft struct {
	Opcode       protocol.Opcode
	SrcConnID    uint32
	DstConnID    uint32
	PacketNumber uint64
	StreamID     uint16
	Offset       uint64
	Ranges       []uint64
	Payload      []byte
}

// Encode builds the message described by s and returns its wire bytes.
func Encode(s Draft) ([]byte, error) {
	var msg protocol.Message
	switch s.Opcode {
	case protocol.OpData, protocol.OpDataFin:
		if len(s.Payload) > math.MaxUint16 {
			return nil, fmt.Errorf("%w: %d bytes", protocol.ErrPayloadTooLarge, len(s.Payload))
		}
		msg = protocol.NewData(len(s.Payload), s.Opcode == protocol.OpDataFin).
			SetSrcConnID(s.SrcConnID).
			SetDstConnID(s.DstConnID).
			SetPacketNumber(s.PacketNumber).
			SetStreamID(s.StreamID).
			SetOffset(s.Offset).
			SetLength(uint16(len(s.Payload))).
			SetPayload(s.Payload)
	case protocol.OpAck:
		if len(s.Ranges) > protocol.MaxAckRanges {
			return nil, fmt.Errorf("%w: %d", protocol.ErrTooManyRanges, len(s.Ranges))
		}
		msg = protocol.NewAck(len(s.Ranges)).
			SetSrcConnID(s.SrcConnID).
			SetDstConnID(s.DstConnID).
			SetPacketNumber(s.PacketNumber).
			SetRanges(s.Ranges)
	case protocol.OpDial:
		msg = protocol.NewDial(len(s.Payload)).
			SetSrcConnID(s.SrcConnID).
			SetDstConnID(s.DstConnID).
			SetPayload(s.Payload)
	case protocol.OpDialConf:
		msg = protocol.NewDialConf(len(s.Payload)).
			SetSrcConnID(s.SrcConnID).
			SetDstConnID(s.DstConnID).
			SetPayload(s.Payload)
	case protocol.OpConf:
		msg = protocol.NewConf().SetSrcConnID(s.SrcConnID).SetDstConnID(s.DstConnID)
	case protocol.OpRst:
		msg = protocol.NewRst().SetSrcConnID(s.SrcConnID).SetDstConnID(s.DstConnID)
	case protocol.OpSkipStream:
		msg = protocol.NewSkipStream().
			SetSrcConnID(s.SrcConnID).
			SetDstConnID(s.DstConnID).
			SetStreamID(s.StreamID).
			SetOffset(s.Offset)
	case protocol.OpFlushStream:
		msg = protocol.NewFlushStream().
			SetSrcConnID(s.SrcConnID).
			SetDstConnID(s.DstConnID).
			SetStreamID(s.StreamID).
			SetOffset(s.Offset)
	case protocol.OpFlushConf:
		msg = protocol.NewFlushConf().
			SetSrcConnID(s.SrcConnID).
			SetDstConnID(s.DstConnID).
			SetStreamID(s.StreamID)
	default:
		return nil, fmt.Errorf("%w: %d", protocol.ErrUnknownOpcode, uint8(s.Opcode))
	}
	observability.RecordEncode(s.Opcode.String())
	b := msg.Release()
	return b.Bytes(), nil
}
