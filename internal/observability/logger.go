package observability

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger returns the global logger tagged with component. Call it at use
// time so it picks up the most recent logging.Apply.
func Logger(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}

// DatagramEvent starts a log event for one inspected datagram. Rejected
// datagrams are logged at warn, accepted ones at debug.
func DatagramEvent(logger zerolog.Logger, opcode string, valid bool, size int) *zerolog.Event {
	event := logger.Debug()
	if !valid {
		event = logger.Warn()
	}
	return event.
		Str("opcode", opcode).
		Bool("valid", valid).
		Int("bytes", size)
}
