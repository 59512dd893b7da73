package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/streamwire/internal/inspect"
	"github.com/danmuck/streamwire/internal/logging"
	"github.com/rs/zerolog"
)

type fileConfig struct {
	LogLevel            string `toml:"log_level"`
	DialPayloadSize     int    `toml:"dial_payload_size"`
	DialConfPayloadSize int    `toml:"dialconf_payload_size"`
	MaxAckRanges        int    `toml:"max_ack_ranges"`
	Metrics             bool   `toml:"metrics"`
}

type serviceConfig struct {
	LogLevel     zerolog.Level
	Inspect      inspect.Options
	MaxAckRanges int
	Metrics      bool
}

func defaultServiceConfig() serviceConfig {
	return serviceConfig{
		LogLevel: zerolog.InfoLevel,
		Inspect: inspect.Options{
			DialPayloadSize:     32,
			DialConfPayloadSize: 32,
		},
		MaxAckRanges: 128,
	}
}

func loadServiceConfig(path string) (serviceConfig, error) {
	cfg := defaultServiceConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return serviceConfig{}, fmt.Errorf("load wirectl config: %w", err)
	}

	if meta.IsDefined("log_level") {
		lvl, ok := logging.ParseLevel(raw.LogLevel)
		if !ok {
			return serviceConfig{}, fmt.Errorf("parse log_level: unknown level %q", raw.LogLevel)
		}
		cfg.LogLevel = lvl
	}

	if meta.IsDefined("dial_payload_size") {
		if raw.DialPayloadSize < 0 {
			return serviceConfig{}, fmt.Errorf("dial_payload_size must be >= 0, got %d", raw.DialPayloadSize)
		}
		cfg.Inspect.DialPayloadSize = raw.DialPayloadSize
	}

	if meta.IsDefined("dialconf_payload_size") {
		if raw.DialConfPayloadSize < 0 {
			return serviceConfig{}, fmt.Errorf("dialconf_payload_size must be >= 0, got %d", raw.DialConfPayloadSize)
		}
		cfg.Inspect.DialConfPayloadSize = raw.DialConfPayloadSize
	}

	if meta.IsDefined("max_ack_ranges") {
		if raw.MaxAckRanges <= 0 {
			return serviceConfig{}, fmt.Errorf("max_ack_ranges must be > 0, got %d", raw.MaxAckRanges)
		}
		cfg.MaxAckRanges = raw.MaxAckRanges
	}

	if meta.IsDefined("metrics") {
		cfg.Metrics = raw.Metrics
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return serviceConfig{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	return cfg, nil
}

const configTemplate = `# wirectl configuration
log_level = "info"

# Expected opaque payload sizes for connection setup messages.
dial_payload_size = 32
dialconf_payload_size = 32

# Upper bound on ranges accepted by "wirectl encode -op ack".
max_ack_ranges = 128

# Print inspection counters after "wirectl decode".
metrics = false
`

func writeTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(configTemplate), 0o600)
}
