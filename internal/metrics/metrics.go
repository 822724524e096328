// Package metrics exposes Prometheus collectors for generation and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests and multiple servers don't collide.
type Metrics struct {
	registry  *prometheus.Registry
	generated *prometheus.CounterVec
	entropy   prometheus.Histogram
	requests  *prometheus.HistogramVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "passforge",
			Name:      "passwords_generated_total",
			Help:      "Generated passwords by source and strength rating.",
		}, []string{"source", "strength"}),
		entropy: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "passforge",
			Name:      "password_entropy_bits",
			Help:      "Estimated entropy of generated passwords.",
			Buckets:   []float64{20, 40, 60, 80, 100, 128, 160, 256},
		}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "passforge",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}

	m.registry.MustRegister(m.generated, m.entropy, m.requests)
	return m
}

// ObserveGeneration counts one generated password.
func (m *Metrics) ObserveGeneration(source, strength string, entropyBits float64) {
	m.generated.WithLabelValues(source, strength).Inc()
	m.entropy.Observe(entropyBits)
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
