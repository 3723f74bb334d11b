package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's collectors on a private registry so several
// servers (and tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	Renders        *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec
	CacheHits      prometheus.Counter
	Panics         *prometheus.CounterVec
	Readings       *prometheus.CounterVec
}

// NewMetrics registers the landing collectors plus the Go and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "landing_renders_total",
				Help: "Total number of page renders",
			},
			[]string{"route"},
		),
		RenderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "landing_render_duration_seconds",
				Help:    "Duration of page renders",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"route"},
		),
		CacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "landing_cache_hits_total",
				Help: "Total number of requests served from the page cache",
			},
		),
		Panics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "landing_component_panics_total",
				Help: "Total number of recovered component panics",
			},
			[]string{"hook"},
		),
		Readings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "landing_readings_ingested_total",
				Help: "Total number of sensor ingest requests by result",
			},
			[]string{"result"},
		),
	}

	m.registry.MustRegister(
		m.Renders,
		m.RenderDuration,
		m.CacheHits,
		m.Panics,
		m.Readings,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
