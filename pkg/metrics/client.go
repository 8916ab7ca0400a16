package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kisanmitra/kisanmitra/pkg/apiclient"
)

const outcomeOK = "ok"

// ClientMetrics records outbound API calls. It implements apiclient.Observer.
type ClientMetrics struct {
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
}

// NewClientMetrics registers the client metrics on the provided registerer.
func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	if reg == nil {
		return &ClientMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kisanmitra_api_request_duration_seconds",
		Help:    "Duration of backend API calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "method"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kisanmitra_api_requests_total",
		Help: "Backend API calls by outcome code.",
	}, []string{"operation", "code"})
	reg.MustRegister(duration, outcomes)
	return &ClientMetrics{
		duration: duration,
		outcomes: outcomes,
	}
}

func (m *ClientMetrics) ObserveRequest(_ context.Context, obs apiclient.Observation) {
	if m == nil || m.duration == nil {
		return
	}
	operation := normalizeLabel(obs.Operation)
	m.duration.WithLabelValues(operation, normalizeLabel(obs.Method)).Observe(obs.Duration.Seconds())

	code := outcomeOK
	if obs.Code != "" {
		code = string(obs.Code)
	}
	m.outcomes.WithLabelValues(operation, code).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
