// Package capture stores datagrams in a simple append-only file so traffic
// can be replayed through the inspector.
//
// Each record is a fixed little-endian header followed by the datagram:
//
//	magic(4) version(2) header_len(2) timestamp_ns(8) length(4) datagram...
package capture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

const (
	Magic     uint32 = 0x31435753 // "SWC1" on disk
	Version   uint16 = 1
	HeaderLen uint16 = 20
)

var (
	ErrShortHeader       = errors.New("capture: short record header")
	ErrInvalidMagic      = errors.New("capture: invalid magic")
	ErrUnsupportedVer    = errors.New("capture: unsupported version")
	ErrHeaderLenTooSmall = errors.New("capture: header_len smaller than fixed header")
	ErrDatagramTooLarge  = errors.New("capture: datagram too large")
	ErrShortDatagram     = errors.New("capture: short datagram")
)

var le = binary.LittleEndian

// Header precedes every captured datagram.
type Header struct {
	Magic     uint32
	Version   uint16
	HeaderLen uint16
	Timestamp time.Time
	Length    uint32
}

// Record is one captured datagram.
type Record struct {
	Timestamp time.Time
	Datagram  []byte
}

// Limits constrains decode memory use.
type Limits struct {
	MaxDatagramBytes uint32
}

func DefaultLimits() Limits {
	return Limits{MaxDatagramBytes: 64 * 1024}
}

// ReadRecord reads the next record. It returns io.EOF at a clean end of
// stream.
func ReadRecord(r io.Reader, limits Limits) (Record, error) {
	var fixed [HeaderLen]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Record{}, ErrShortHeader
		}
		return Record{}, err
	}

	h := DecodeHeader(fixed[:])
	if h.Magic != Magic {
		return Record{}, ErrInvalidMagic
	}
	if h.Version != Version {
		return Record{}, fmt.Errorf("%w: %d", ErrUnsupportedVer, h.Version)
	}
	if h.HeaderLen < HeaderLen {
		return Record{}, ErrHeaderLenTooSmall
	}
	if h.Length > limits.MaxDatagramBytes {
		return Record{}, ErrDatagramTooLarge
	}

	// Newer writers may extend the header; skip what we do not understand.
	if extra := int64(h.HeaderLen - HeaderLen); extra > 0 {
		if _, err := io.CopyN(io.Discard, r, extra); err != nil {
			return Record{}, ErrShortHeader
		}
	}

	datagram := make([]byte, h.Length)
	if _, err := io.ReadFull(r, datagram); err != nil {
		return Record{}, ErrShortDatagram
	}
	return Record{Timestamp: h.Timestamp, Datagram: datagram}, nil
}

func WriteRecord(w io.Writer, rec Record, limits Limits) error {
	if uint64(len(rec.Datagram)) > uint64(limits.MaxDatagramBytes) {
		return ErrDatagramTooLarge
	}
	h := Header{
		Magic:     Magic,
		Version:   Version,
		HeaderLen: HeaderLen,
		Timestamp: rec.Timestamp,
		Length:    uint32(len(rec.Datagram)),
	}
	if _, err := w.Write(EncodeHeader(h)); err != nil {
		return err
	}
	if len(rec.Datagram) > 0 {
		if _, err := w.Write(rec.Datagram); err != nil {
			return err
		}
	}
	return nil
}

func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderLen)
	le.PutUint32(buf[0:4], h.Magic)
	le.PutUint16(buf[4:6], h.Version)
	le.PutUint16(buf[6:8], h.HeaderLen)
	var ts int64
	if !h.Timestamp.IsZero() {
		ts = h.Timestamp.UnixNano()
	}
	le.PutUint64(buf[8:16], uint64(ts))
	le.PutUint32(buf[16:20], h.Length)
	return buf
}

// DecodeHeader parses a fixed header; b must hold HeaderLen bytes.
func DecodeHeader(b []byte) Header {
	h := Header{
		Magic:     le.Uint32(b[0:4]),
		Version:   le.Uint16(b[4:6]),
		HeaderLen: le.Uint16(b[6:8]),
		Length:    le.Uint32(b[16:20]),
	}
	if ts := int64(le.Uint64(b[8:16])); ts != 0 {
		h.Timestamp = time.Unix(0, ts)
	}
	return h
}

// ReadAll reads records until a clean end of stream.
func ReadAll(r io.Reader, limits Limits) ([]Record, error) {
	var out []Record
	for {
		rec, err := ReadRecord(r, limits)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}
