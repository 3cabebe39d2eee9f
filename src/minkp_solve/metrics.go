package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"min_knapsack/src/minkp"
)

type metrics struct {
	registry *prometheus.Registry
	solves   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "minkp_solves_total",
			Help: "Number of solves by backend, mode and outcome.",
		}, []string{"backend", "mode", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "minkp_solve_duration_seconds",
			Help:    "Wall time spent in the solver backend.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"backend", "mode"}),
	}
	m.registry.MustRegister(m.solves, m.duration)
	return m
}

func (m *metrics) observe(backendName string, mode minkp.Mode, status string, elapsed time.Duration) {
	m.solves.WithLabelValues(backendName, mode.String(), status).Inc()
	if elapsed > 0 {
		m.duration.WithLabelValues(backendName, mode.String()).Observe(elapsed.Seconds())
	}
}

func (m *metrics) write(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
