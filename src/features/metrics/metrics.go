// Package metrics exposes prometheus instrumentation for provider
// orchestration: every outbound provider call, resolution outcome and
// search is counted here.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for the orchestration layer. A nil *Metrics
// is valid and records nothing, so services can run uninstrumented in
// tests.
type Metrics struct {
	ProviderCalls  *prometheus.CounterVec
	Resolutions    *prometheus.CounterVec
	ResolveSeconds *prometheus.HistogramVec
	Searches       *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A dedicated
// registry (not the global one) keeps repeated construction safe.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ProviderCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harmonia_provider_calls_total",
				Help: "Total number of outbound provider calls",
			},
			[]string{"provider", "operation", "status"},
		),
		Resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harmonia_stream_resolutions_total",
				Help: "Total number of stream resolution attempts",
			},
			[]string{"status"},
		),
		ResolveSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "harmonia_stream_resolve_seconds",
				Help:    "Time spent resolving a track to a stream",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status"},
		),
		Searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harmonia_searches_total",
				Help: "Total number of unified searches by result source",
			},
			[]string{"source"},
		),
	}
	reg.MustRegister(m.ProviderCalls, m.Resolutions, m.ResolveSeconds, m.Searches)
	return m
}

// ObserveProviderCall counts one provider call with its outcome.
func (m *Metrics) ObserveProviderCall(provider, operation, status string) {
	if m == nil {
		return
	}
	m.ProviderCalls.WithLabelValues(provider, operation, status).Inc()
}

// ObserveResolution counts one resolution attempt and its duration.
func (m *Metrics) ObserveResolution(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Resolutions.WithLabelValues(status).Inc()
	m.ResolveSeconds.WithLabelValues(status).Observe(elapsed.Seconds())
}

// ObserveSearch counts one unified search by its result source.
func (m *Metrics) ObserveSearch(source string) {
	if m == nil {
		return
	}
	m.Searches.WithLabelValues(source).Inc()
}
