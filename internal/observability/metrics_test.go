package observability

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danmuck/streamwire/internal/testutil/testlog"
	"github.com/rs/zerolog"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)
	RegisterMetrics()
	RegisterMetrics()

	RecordInspect("ACK", true, 44)
	RecordInspect("DATA", false, 12)
	RecordEncode("DIAL")

	families, err := Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := make(map[string]bool)
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"streamwire_inspect_datagrams_total",
		"streamwire_inspect_datagram_bytes",
		"streamwire_encode_messages_total",
	} {
		if !names[want] {
			t.Fatalf("metric %s not gathered; have %v", want, names)
		}
	}
}

func TestDatagramEventLevel(t *testing.T) {
	var out bytes.Buffer
	logger := zerolog.New(&out).Level(zerolog.InfoLevel)

	DatagramEvent(logger, "ACK", true, 20).Msg("datagram")
	if out.Len() != 0 {
		t.Fatalf("valid datagram logged above debug: %q", out.String())
	}
	DatagramEvent(logger, "ACK", false, 21).Msg("datagram")
	if !strings.Contains(out.String(), `"level":"warn"`) || !strings.Contains(out.String(), `"valid":false`) {
		t.Fatalf("rejected datagram not logged at warn: %q", out.String())
	}
}

func TestHandlerExposesRegistry(t *testing.T) {
	testlog.Start(t)
	RecordEncode("RST")

	srv := httptest.NewServer(Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `streamwire_encode_messages_total{opcode="RST"}`) {
		t.Fatalf("encode counter missing from exposition:\n%s", body)
	}
}
