package protocol

import "github.com/danmuck/streamwire/internal/protocol/buffer"

// PeekOpcode reads the opcode of a received datagram so the caller can pick
// the matching As constructor. It checks bounds and rejects unknown tags but
// does not validate the message body.
func PeekOpcode(v buffer.View) (Opcode, error) {
	b, err := v.Uint8(opcodeOffset)
	if err != nil {
		return 0, ErrShortHeader
	}
	op := Opcode(b)
	if !op.Known() {
		return op, ErrUnknownOpcode
	}
	return op, nil
}
