package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application. A nil *Registry is valid
// and records nothing, so library entry points can take one optionally.
type Registry struct {
	// Similarity Metrics
	SimilarityTasksTotal   *prometheus.CounterVec
	SimilarityTaskDuration *prometheus.HistogramVec
	WorkersInFlight        prometheus.Gauge

	// Traversal Metrics
	DiameterComputationsTotal *prometheus.CounterVec
	DiameterCacheHitsTotal    prometheus.Counter
	SphereCacheTotal          *prometheus.CounterVec

	// Graph Metrics
	GraphsLoadedTotal *prometheus.CounterVec
	GraphNodes        prometheus.Gauge
	GraphEdges        prometheus.Gauge

	registry *prometheus.Registry
	inFlight atomic.Int64
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initSimilarityMetrics()
	r.initTraversalMetrics()
	r.initGraphMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
