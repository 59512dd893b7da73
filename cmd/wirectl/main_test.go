package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/streamwire/internal/testutil/testlog"
)

func TestEncodeThenDecode(t *testing.T) {
	testlog.Start(t)
	var encoded bytes.Buffer
	err := runEncode([]string{"-op", "ack", "-src", "7", "-dst", "9", "-pn", "3", "-ranges", "1, 2,0x10"}, &encoded)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	hexLine := strings.TrimSpace(encoded.String())
	if len(hexLine) != 2*(20+3*8) {
		t.Fatalf("unexpected encoding length: %q", hexLine)
	}

	var decoded bytes.Buffer
	if err := runDecode(nil, strings.NewReader("# captured\n"+hexLine+"\n"), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var line struct {
		Opcode    string   `json:"opcode"`
		SrcConnID uint32   `json:"src_conn_id"`
		DstConnID uint32   `json:"dst_conn_id"`
		Ranges    []uint64 `json:"ranges"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(decoded.Bytes()), &line); err != nil {
		t.Fatalf("decode output %q: %v", decoded.String(), err)
	}
	if line.Opcode != "ACK" || line.SrcConnID != 9 || line.DstConnID != 7 {
		t.Fatalf("unexpected report: %+v", line)
	}
	if len(line.Ranges) != 3 || line.Ranges[2] != 16 {
		t.Fatalf("unexpected ranges: %v", line.Ranges)
	}
}

func TestDecodeReportsRejected(t *testing.T) {
	testlog.Start(t)
	var out bytes.Buffer
	err := runDecode([]string{"0005", "zz"}, nil, &out)
	if !errors.Is(err, errRejected) {
		t.Fatalf("expected errRejected, got %v", err)
	}
}

func TestEncodeRejectsOutOfRangeFlags(t *testing.T) {
	testlog.Start(t)
	var out bytes.Buffer
	cases := [][]string{
		{"-op", "bogus"},
		{"-op", "flushconf", "-stream", "70000"},
		{"-op", "dial", "-payload", "xyz"},
		{"-op", "ack", "-ranges", "1,two"},
	}
	for _, args := range cases {
		if err := runEncode(args, &out); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestEncodeDataFin(t *testing.T) {
	testlog.Start(t)
	var out bytes.Buffer
	if err := runEncode([]string{"-op", "data_fin", "-stream", "2", "-payload", "cafe"}, &out); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got := strings.TrimSpace(out.String())
	if !strings.HasPrefix(got, "0001") {
		t.Fatalf("expected DATA_FIN sub-header, got %q", got)
	}
	if !strings.HasSuffix(got, "cafe") || len(got) != 2*(30+2) {
		t.Fatalf("unexpected data encoding %q", got)
	}
}

func TestCaptureRoundTrip(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "traffic.swc")
	var hexOut bytes.Buffer
	for _, args := range [][]string{
		{"-op", "dial", "-src", "1", "-payload", strings.Repeat("ab", 32), "-capture", path},
		{"-op", "rst", "-src", "1", "-dst", "2", "-capture", path},
	} {
		if err := runEncode(args, &hexOut); err != nil {
			t.Fatalf("encode %v: %v", args, err)
		}
	}

	var decoded bytes.Buffer
	if err := runDecode([]string{"-capture", path}, nil, &decoded); err != nil {
		t.Fatalf("decode capture: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(decoded.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 reports, got %q", decoded.String())
	}
	if !strings.Contains(lines[0], `"opcode":"DIAL"`) || !strings.Contains(lines[1], `"opcode":"RST"`) {
		t.Fatalf("unexpected reports: %q", lines)
	}
}
