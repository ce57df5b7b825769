// Package metrics exposes Prometheus metrics for pipeline runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Run outcomes
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RecordListings records the number of decoded listings and neighbourhoods
func (r *Registry) RecordListings(listings, neighbourhoods int) {
	r.ListingsLoadedTotal.Add(float64(listings))
	r.Neighbourhoods.Set(float64(neighbourhoods))
}

// RecordIngestError records an aborted load at the given stage
func (r *Registry) RecordIngestError(stage string) {
	r.IngestErrorsTotal.WithLabelValues(stage).Inc()
}

// RecordGraph records the shape of the built graph
func (r *Registry) RecordGraph(nodes, edges int, threshold float32) {
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
	r.GraphThreshold.Set(float64(threshold))
}

// RecordAlgorithm records how long an algorithm took
func (r *Registry) RecordAlgorithm(algorithm string, duration time.Duration) {
	r.AlgorithmDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
}

// RecordTraversal records the size of the traversed component
func (r *Registry) RecordTraversal(componentSize int) {
	r.ComponentSize.Set(float64(componentSize))
}

// RecordRun records a finished run
func (r *Registry) RecordRun(err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	r.RunsTotal.WithLabelValues(status).Inc()
}

// WriteTextfile writes all metrics in the Prometheus text format, for pickup
// by the node exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
