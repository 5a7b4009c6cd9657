package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initTraversalMetrics() {
	r.DiameterComputationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphsim_diameter_computations_total",
			Help: "Total number of diameter computations that missed the cache",
		},
		[]string{"mode"}, // serial, parallel
	)

	r.DiameterCacheHitsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphsim_diameter_cache_hits_total",
			Help: "Total number of diameter requests served from the per-graph cache",
		},
	)

	r.SphereCacheTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphsim_sphere_cache_total",
			Help: "Sphere map memo lookups",
		},
		[]string{"result"}, // hit, miss
	)
}

func (r *Registry) initGraphMetrics() {
	r.GraphsLoadedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphsim_graphs_loaded_total",
			Help: "Total number of graphs loaded",
		},
		[]string{"format"}, // borland, gml
	)

	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphsim_graph_nodes",
			Help: "Node count of the most recently loaded graph",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphsim_graph_edges",
			Help: "Edge count of the most recently loaded graph",
		},
	)
}
