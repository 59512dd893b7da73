package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		raw  string
		want zerolog.Level
		ok   bool
	}{
		{"", zerolog.InfoLevel, false},
		{"TRACE", zerolog.TraceLevel, true},
		{" debug ", zerolog.DebugLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"off", zerolog.Disabled, true},
		{"loud", zerolog.InfoLevel, false},
	}
	for _, tc := range cases {
		got, ok := ParseLevel(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseLevel(%q) = (%v,%v), want (%v,%v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogTimestamp, "false")
	t.Setenv(EnvLogNoColor, "1")
	t.Setenv(EnvLogBypass, "not-a-bool")

	cfg := defaultConfig(ProfileRuntime)
	applyEnvOverrides(&cfg)
	if cfg.Level != zerolog.ErrorLevel || cfg.Timestamp || !cfg.NoColor || cfg.Bypass {
		t.Fatalf("unexpected config after overrides: %+v", cfg)
	}
}

func TestApplyWritesToConfiguredOutput(t *testing.T) {
	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var out bytes.Buffer
	Apply(Config{Level: zerolog.InfoLevel, NoColor: true, Out: &out})
	log.Debug().Msg("hidden")
	log.Info().Str("opcode", "ACK").Msg("visible")

	got := out.String()
	if strings.Contains(got, "hidden") {
		t.Fatalf("debug line leaked at info level: %q", got)
	}
	if !strings.Contains(got, "visible") || !strings.Contains(got, "opcode=ACK") {
		t.Fatalf("missing info line: %q", got)
	}

	out.Reset()
	Apply(Config{Bypass: true, Out: &out})
	log.Error().Msg("dropped")
	if out.Len() != 0 {
		t.Fatalf("bypass still wrote: %q", out.String())
	}
}
