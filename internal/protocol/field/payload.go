package field

import "github.com/danmuck/streamwire/internal/protocol/buffer"

// Payload is the opaque region that runs from Offset to the end of a message.
type Payload struct {
	Offset int
}

// Set copies p to Offset. The message must have been sized to hold it.
func (p Payload) Set(v buffer.View, data []byte) {
	v.WriteAtUnsafe(p.Offset, data)
}

// View borrows the region; the result is only valid while the message is.
func (p Payload) View(v buffer.View) buffer.View {
	return v.SubUnsafe(p.Offset)
}

// Take converts a released message buffer into an owned payload buffer.
func (p Payload) Take(b buffer.Buffer) buffer.Buffer {
	b.CoverUnsafe(p.Offset)
	return b
}

// Bytes returns the region without copying.
func (p Payload) Bytes(v buffer.View) []byte {
	return v.Bytes()[p.Offset:]
}

// Size returns the number of payload bytes present in v.
func (p Payload) Size(v buffer.View) int {
	if v.Len() < p.Offset {
		return 0
	}
	return v.Len() - p.Offset
}
