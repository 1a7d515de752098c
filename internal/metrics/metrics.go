// Package metrics exposes Prometheus collectors for the layout engine and
// its HTTP surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TicksTotal counts simulation steps, including paused ones.
	TicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "galaxy_ticks_total",
			Help: "Total number of layout ticks executed",
		},
	)

	TickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "galaxy_tick_duration_seconds",
			Help:    "Wall time of one layout tick",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.016, 0.033, 0.1},
		},
	)

	// RebuildsTotal counts active-graph rebuilds by cause (select, reset).
	RebuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "galaxy_rebuilds_total",
			Help: "Total number of active graph rebuilds",
		},
		[]string{"cause"},
	)

	ActiveNodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "galaxy_active_nodes",
			Help: "Nodes in the active graph",
		},
	)

	ActiveEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "galaxy_active_edges",
			Help: "Edges in the active graph",
		},
	)

	KineticEnergy = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "galaxy_kinetic_energy",
			Help: "Total kinetic energy of the active graph after the last tick",
		},
	)

	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "galaxy_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "galaxy_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "path"},
	)
)
