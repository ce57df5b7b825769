package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Number of nodes in the similarity graph",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Number of edges in the similarity graph",
		},
	)

	r.GraphThreshold = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_threshold",
			Help:      "Average price difference threshold used to link neighbourhoods",
		},
	)

	r.ComponentSize = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "traversal_component_size",
			Help:      "Number of nodes reached by the breadth-first traversal",
		},
	)

	r.AlgorithmDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "algorithm_duration_seconds",
			Help:      "Duration of graph algorithms in seconds",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0},
		},
		[]string{"algorithm"},
	)
}
