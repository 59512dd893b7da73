package main

import (
	"bufio"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/danmuck/streamwire/internal/capture"
	"github.com/danmuck/streamwire/internal/inspect"
	"github.com/danmuck/streamwire/internal/logging"
	"github.com/danmuck/streamwire/internal/observability"
	"github.com/danmuck/streamwire/internal/protocol"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: wirectl <command> [flags]

commands:
  decode    decode hex datagrams from arguments, stdin or a capture file
  encode    build a message, print it as hex and optionally capture it
  template  write an example config file
`

func main() {
	logging.ConfigureRuntime()
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "decode":
		err = runDecode(os.Args[2:], os.Stdin, os.Stdout)
	case "encode":
		err = runEncode(os.Args[2:], os.Stdout)
	case "template":
		err = runTemplate(os.Args[2:])
	case "-h", "-help", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "wirectl: unknown command %q\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "wirectl: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (serviceConfig, error) {
	if path == "" {
		return defaultServiceConfig(), nil
	}
	cfg, err := loadServiceConfig(path)
	if err != nil {
		return serviceConfig{}, err
	}
	lc := logging.DefaultConfig()
	lc.Level = cfg.LogLevel
	logging.Apply(lc)
	return cfg, nil
}

var errRejected = errors.New("one or more datagrams were rejected")

func runDecode(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to wirectl TOML config")
	metrics := fs.Bool("metrics", false, "print inspection counters when done")
	capturePath := fs.String("capture", "", "read datagrams from a capture file instead of hex")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	out := zerolog.New(stdout)
	rejected := 0
	decodeRaw := func(raw []byte) {
		r, err := inspect.Decode(raw, cfg.Inspect)
		if err != nil {
			log.Warn().Err(err).Msg("datagram rejected")
			rejected++
			return
		}
		out.Log().EmbedObject(r).Send()
	}
	decodeOne := func(line string) {
		line = strings.Join(strings.Fields(line), "")
		if line == "" || strings.HasPrefix(line, "#") {
			return
		}
		raw, err := hex.DecodeString(line)
		if err != nil {
			log.Warn().Err(err).Str("input", line).Msg("not hex")
			rejected++
			return
		}
		decodeRaw(raw)
	}

	if *capturePath != "" {
		f, err := os.Open(*capturePath)
		if err != nil {
			return fmt.Errorf("open capture: %w", err)
		}
		records, err := capture.ReadAll(bufio.NewReader(f), capture.DefaultLimits())
		f.Close()
		for _, rec := range records {
			decodeRaw(rec.Datagram)
		}
		if err != nil {
			return fmt.Errorf("read capture %s: %w", *capturePath, err)
		}
	} else if fs.NArg() > 0 {
		for _, a := range fs.Args() {
			decodeOne(a)
		}
	} else {
		sc := bufio.NewScanner(stdin)
		sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for sc.Scan() {
			decodeOne(sc.Text())
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	if *metrics || cfg.Metrics {
		if err := printMetrics(out); err != nil {
			return err
		}
	}
	if rejected > 0 {
		return fmt.Errorf("%w: %d", errRejected, rejected)
	}
	return nil
}

func printMetrics(out zerolog.Logger) error {
	families, err := observability.Registry().Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			ev := out.Log().Str("metric", mf.GetName()).Interface("labels", labels)
			switch {
			case m.GetCounter() != nil:
				ev = ev.Float64("value", m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				ev = ev.Uint64("count", m.GetHistogram().GetSampleCount()).
					Float64("sum", m.GetHistogram().GetSampleSum())
			}
			ev.Send()
		}
	}
	return nil
}

func runEncode(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to wirectl TOML config")
	op := fs.String("op", "", "message type: data|data_fin|ack|dial|dialconf|conf|rst|skipstream|flushstream|flushconf")
	src := fs.Uint("src", 0, "source connection id")
	dst := fs.Uint("dst", 0, "destination connection id")
	pn := fs.Uint64("pn", 0, "packet number (data, ack)")
	stream := fs.Uint("stream", 0, "stream id")
	offset := fs.Uint64("offset", 0, "stream offset")
	ranges := fs.String("ranges", "", "comma separated ack ranges")
	payload := fs.String("payload", "", "hex payload (data, dial, dialconf)")
	capturePath := fs.String("capture", "", "also append the message to this capture file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	if *src > 0xFFFFFFFF || *dst > 0xFFFFFFFF {
		return fmt.Errorf("connection ids must fit in 32 bits")
	}
	if *stream > 0xFFFF {
		return fmt.Errorf("stream id must fit in 16 bits")
	}
	opcode, err := protocol.ParseOpcode(*op)
	if err != nil {
		return err
	}
	draft := inspect.Draft{
		Opcode:       opcode,
		SrcConnID:    uint32(*src),
		DstConnID:    uint32(*dst),
		PacketNumber: *pn,
		StreamID:     uint16(*stream),
		Offset:       *offset,
	}
	if draft.Ranges, err = parseRanges(*ranges); err != nil {
		return err
	}
	if len(draft.Ranges) > cfg.MaxAckRanges {
		return fmt.Errorf("%w: %d > max_ack_ranges %d", protocol.ErrTooManyRanges, len(draft.Ranges), cfg.MaxAckRanges)
	}
	if draft.Payload, err = hex.DecodeString(*payload); err != nil {
		return fmt.Errorf("parse payload: %w", err)
	}

	raw, err := inspect.Encode(draft)
	if err != nil {
		return err
	}
	if *capturePath != "" {
		if err := appendCapture(*capturePath, raw); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(stdout, hex.EncodeToString(raw))
	return err
}

func appendCapture(path string, raw []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open capture: %w", err)
	}
	if err := capture.WriteRecord(f, capture.Record{Timestamp: time.Now(), Datagram: raw}, capture.DefaultLimits()); err != nil {
		f.Close()
		return fmt.Errorf("append capture: %w", err)
	}
	return f.Close()
}

func parseRanges(raw string) ([]uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]uint64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("parse range %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func runTemplate(args []string) error {
	fs := flag.NewFlagSet("template", flag.ContinueOnError)
	output := fs.String("output", "wirectl.toml", "output path for config template")
	force := fs.Bool("force", false, "overwrite existing config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := writeTemplate(*output, *force); err != nil {
		return err
	}
	log.Info().Str("path", *output).Msg("wrote config template")
	return nil
}
