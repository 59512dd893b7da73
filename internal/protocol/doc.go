// Package protocol owns the stream transport's datagram wire format.
//
// Ownership boundary:
// - opcodes and fixed field layouts
// - typed message views over a buffer.Buffer
// - per-message Validate gates for received datagrams
//
// Every message starts with a reserved zero byte followed by its opcode.
// Multi-byte integers are little-endian. Connection ids are stored from the
// sender's point of view: the source id a sender writes is the destination id
// its peer reads, with no decode step in between.
package protocol
