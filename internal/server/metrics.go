// SPDX-License-Identifier: MIT

package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	outcomeOK       = "ok"
	outcomeSoftFail = "soft_fail" // not converged / not applicable
	outcomeError    = "error"
)

// Metrics holds the Prometheus collectors of one Server. Each Server owns a
// private registry so several instances can coexist in tests.
type Metrics struct {
	registry     *prometheus.Registry
	computations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	iterations   *prometheus.HistogramVec
}

// NewMetrics registers the numlab collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		computations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "numlab_computations_total",
				Help: "Computations served, by engine, method and outcome",
			},
			[]string{"engine", "method", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "numlab_computation_duration_seconds",
				Help:    "Wall-clock duration of a computation in seconds",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"engine"},
		),
		iterations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "numlab_iterations",
				Help:    "Sweeps performed by iterative solves",
				Buckets: prometheus.ExponentialBuckets(1, 2, 14),
			},
			[]string{"method"},
		),
	}
	m.registry.MustRegister(m.computations, m.duration, m.iterations)

	return m
}

// observe records one computation.
func (m *Metrics) observe(engine, method, outcome string, started time.Time) {
	m.computations.WithLabelValues(engine, method, outcome).Inc()
	m.duration.WithLabelValues(engine).Observe(time.Since(started).Seconds())
}

// observeIterations records the sweep count of an iterative solve.
func (m *Metrics) observeIterations(method string, n int) {
	m.iterations.WithLabelValues(method).Observe(float64(n))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
