package protocol

import (
	"fmt"
	"strings"
)

// Opcode is the wire tag stored at byte 1 of every message.
type Opcode uint8

// Values are fixed by deployed peers; do not reorder.
const (
	OpData Opcode = iota
	OpDataFin
	OpAck
	OpDial
	OpDialConf
	OpConf
	OpRst
	OpSkipStream
	OpFlushStream
	OpFlushConf
)

var opcodeNames = map[Opcode]string{
	OpData:        "DATA",
	OpDataFin:     "DATA_FIN",
	OpAck:         "ACK",
	OpDial:        "DIAL",
	OpDialConf:    "DIALCONF",
	OpConf:        "CONF",
	OpRst:         "RST",
	OpSkipStream:  "SKIPSTREAM",
	OpFlushStream: "FLUSHSTREAM",
	OpFlushConf:   "FLUSHCONF",
}

// Known reports whether o is a defined opcode.
func (o Opcode) Known() bool {
	_, ok := opcodeNames[o]
	return ok
}

// IsData reports whether o tags a DATA message, with or without fin.
func (o Opcode) IsData() bool { return o == OpData || o == OpDataFin }

func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("OPCODE(%d)", uint8(o))
}

// ParseOpcode resolves a name as printed by String, case-insensitively.
func ParseOpcode(name string) (Opcode, error) {
	for op, n := range opcodeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOpcode, name)
}
