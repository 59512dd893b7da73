package protocol

import "errors"

var (
	ErrShortHeader     = errors.New("protocol: datagram shorter than message header")
	ErrUnknownOpcode   = errors.New("protocol: unknown opcode")
	ErrPayloadTooLarge = errors.New("protocol: payload too large")
	ErrTooManyRanges   = errors.New("protocol: too many ack ranges")
)
