package observability

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once
	registry     = prometheus.NewRegistry()

	inspectDatagrams = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "streamwire",
			Subsystem: "inspect",
			Name:      "datagrams_total",
			Help:      "Datagrams inspected, by opcode and validation outcome.",
		},
		[]string{"opcode", "valid"},
	)
	inspectBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "streamwire",
			Subsystem: "inspect",
			Name:      "datagram_bytes",
			Help:      "Size of inspected datagrams in bytes.",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 10),
		},
		[]string{"opcode"},
	)
	encodedMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "streamwire",
			Subsystem: "encode",
			Name:      "messages_total",
			Help:      "Messages built by the encoder, by opcode.",
		},
		[]string{"opcode"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		registry.MustRegister(inspectDatagrams, inspectBytes, encodedMessages)
	})
}

// Registry returns the registry holding streamwire metrics.
func Registry() *prometheus.Registry {
	RegisterMetrics()
	return registry
}

// Handler serves the streamwire registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}

func RecordInspect(opcode string, valid bool, size int) {
	RegisterMetrics()
	inspectDatagrams.WithLabelValues(opcode, strconv.FormatBool(valid)).Inc()
	inspectBytes.WithLabelValues(opcode).Observe(float64(size))
}

func RecordEncode(opcode string) {
	RegisterMetrics()
	encodedMessages.WithLabelValues(opcode).Inc()
}
