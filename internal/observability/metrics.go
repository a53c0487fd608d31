package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	// Crypto metrics
	CryptoOperationsTotal *prometheus.CounterVec

	// Collaborator metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Dev ledger metrics
	HTTPRequestsTotal *prometheus.CounterVec
	RateLimitedTotal  prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// uses a fresh private registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		CryptoOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "suichat_crypto_operations_total",
				Help: "Cryptographic operations performed",
			},
			[]string{"operation", "result"},
		),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "suichat_collaborator_requests_total",
				Help: "Requests to the ledger and salt service",
			},
			[]string{"service", "operation", "result"},
		),

		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "suichat_collaborator_request_duration_seconds",
				Help:    "Collaborator request latency",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"service", "operation"},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "suichat_ledger_http_requests_total",
				Help: "Requests served by the dev ledger",
			},
			[]string{"route", "code"},
		),

		RateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "suichat_ledger_rate_limited_total",
				Help: "Requests rejected by the dev ledger rate limiter",
			},
		),

		gatherer: reg,
	}
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// RecordCryptoOperation counts one operation such as "derive" or "unwrap".
func (m *Metrics) RecordCryptoOperation(operation string, ok bool) {
	if m == nil {
		return
	}
	m.CryptoOperationsTotal.WithLabelValues(operation, result(ok)).Inc()
}

// RecordRequest records one collaborator request.
func (m *Metrics) RecordRequest(service, operation string, ok bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(service, operation, result(ok)).Inc()
	m.RequestDuration.WithLabelValues(service, operation).Observe(elapsed.Seconds())
}

// RecordHTTP counts one request served by the dev ledger.
func (m *Metrics) RecordHTTP(route, code string) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(route, code).Inc()
}

// RecordRateLimited counts one rejected request.
func (m *Metrics) RecordRateLimited() {
	if m == nil {
		return
	}
	m.RateLimitedTotal.Inc()
}

// Handler exposes the Prometheus metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
