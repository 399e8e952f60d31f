package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK        = "ok"
	OutcomeTransport = "transport"
	OutcomeRejected  = "rejected"
)

// UpstreamMetrics records calls made to the remote REST backends.
type UpstreamMetrics struct {
	duration *prometheus.HistogramVec
	calls    *prometheus.CounterVec
}

// NewUpstreamMetrics registers the upstream call metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewUpstreamMetrics(reg prometheus.Registerer) *UpstreamMetrics {
	if reg == nil {
		return &UpstreamMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of calls to remote REST backends in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "operation"})
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Calls to remote REST backends by outcome.",
	}, []string{"backend", "operation", "outcome"})
	reg.MustRegister(duration, calls)
	return &UpstreamMetrics{
		duration: duration,
		calls:    calls,
	}
}

// Observe records a finished call.
func (m *UpstreamMetrics) Observe(backend, operation, outcome string, elapsed time.Duration) {
	if m == nil || m.duration == nil || m.calls == nil {
		return
	}
	backend = normalizeLabel(backend)
	operation = normalizeLabel(operation)
	m.duration.WithLabelValues(backend, operation).Observe(elapsed.Seconds())
	m.calls.WithLabelValues(backend, operation, normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
