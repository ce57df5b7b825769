package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "neighbourhoods"

// Registry holds all metrics for a pipeline run
type Registry struct {
	// Ingest Metrics
	ListingsLoadedTotal prometheus.Counter
	IngestErrorsTotal   *prometheus.CounterVec
	Neighbourhoods      prometheus.Gauge

	// Graph Metrics
	GraphNodes        prometheus.Gauge
	GraphEdges        prometheus.Gauge
	GraphThreshold    prometheus.Gauge
	ComponentSize     prometheus.Gauge
	AlgorithmDuration *prometheus.HistogramVec

	// Run Metrics
	RunsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initIngestMetrics()
	r.initGraphMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
