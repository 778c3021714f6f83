package mbuzz

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess  = "success"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// Session decisions recorded by Metrics.
const (
	sessionDispatched    = "dispatched"
	sessionNoVisitor     = "no_visitor"
	sessionNotNavigation = "not_navigation"
)

// Metrics tracks SDK delivery with Prometheus.
//
// Metrics:
//   - mbuzz_api_requests_total: API calls by endpoint and outcome (success, rejected, error)
//   - mbuzz_api_request_duration_seconds: API call latency by endpoint
//   - mbuzz_validation_failures_total: calls refused before the network, by operation and reason
//   - mbuzz_session_decisions_total: session orchestration decisions
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	validationFailures *prometheus.CounterVec
	sessionDecisions   *prometheus.CounterVec
}

// NewMetrics creates the SDK metrics and registers them with registry.
// It panics if they are already registered, like prometheus.MustRegister.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mbuzz",
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total number of mbuzz API requests",
			},
			[]string{"endpoint", "outcome"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "mbuzz",
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "Duration of mbuzz API requests in seconds",
				Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint"},
		),
		validationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mbuzz",
				Name:      "validation_failures_total",
				Help:      "Tracking calls refused before reaching the API",
			},
			[]string{"operation", "reason"},
		),
		sessionDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mbuzz",
				Name:      "session_decisions_total",
				Help:      "Session creation decisions per request",
			},
			[]string{"decision"},
		),
	}

	registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.validationFailures,
		m.sessionDecisions,
	)

	return m
}

func (m *Metrics) observeRequest(path, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	endpoint := strings.TrimPrefix(path, "/")
	m.requestsTotal.WithLabelValues(endpoint, outcome).Inc()
	if elapsed > 0 {
		m.requestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	}
}

func (m *Metrics) observeValidation(operation, reason string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(operation, reason).Inc()
}

func (m *Metrics) observeSession(decision string) {
	if m == nil {
		return
	}
	m.sessionDecisions.WithLabelValues(decision).Inc()
}
