package backend

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts backend calls by method, resource and status.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the backend collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "console_backend_requests_total",
		Help: "Calls made to the ISP backend, by method, resource and status code.",
	}, []string{"method", "path", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "console_backend_request_duration_seconds",
		Help:    "ISP backend call latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
	reg.MustRegister(requests, duration)
	return &Metrics{requests: requests, duration: duration}
}

func (m *Metrics) observe(method, path, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	resource := metricPath(path)
	m.requests.WithLabelValues(method, resource, code).Inc()
	m.duration.WithLabelValues(method, resource).Observe(elapsed.Seconds())
}

// metricPath keeps the first segment only so record ids do not explode the
// label set.
func metricPath(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "/"
	}
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return "/" + trimmed
}
