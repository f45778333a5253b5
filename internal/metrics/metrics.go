// Package metrics описывает метрики Prometheus портала.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Исходы вызова удалённого сервиса.
const (
	OutcomeOK          = "ok"
	OutcomeRemoteError = "remote_error"
	OutcomeTransport   = "transport_error"
)

// Remote собирает метрики обращений к удалённому сервису бронирования.
type Remote struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRemote создаёт метрики и регистрирует их в reg.
func NewRemote(reg prometheus.Registerer) *Remote {
	m := &Remote{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "remote_requests_total",
			Help: "Number of requests to the remote booking service.",
		}, []string{"endpoint", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "remote_request_duration_seconds",
			Help:    "Latency of requests to the remote booking service.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint", "outcome"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

// Observe учитывает один завершённый вызов. Допускает nil-получатель.
func (m *Remote) Observe(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(endpoint, outcome).Inc()
	m.duration.WithLabelValues(endpoint, outcome).Observe(elapsed.Seconds())
}
