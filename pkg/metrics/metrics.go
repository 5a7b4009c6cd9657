package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Task status label values
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// RecordSimilarityTask records one finished similarity task
func (r *Registry) RecordSimilarityTask(metric, status string, duration time.Duration) {
	if r == nil {
		return
	}
	r.SimilarityTasksTotal.WithLabelValues(metric, status).Inc()
	r.SimilarityTaskDuration.WithLabelValues(metric).Observe(duration.Seconds())
}

// TaskStarted increments the in-flight gauge
func (r *Registry) TaskStarted() {
	if r == nil {
		return
	}
	r.WorkersInFlight.Inc()
	r.inFlight.Add(1)
}

// TaskFinished decrements the in-flight gauge
func (r *Registry) TaskFinished() {
	if r == nil {
		return
	}
	r.WorkersInFlight.Dec()
	r.inFlight.Add(-1)
}

// InFlight returns the number of tasks currently running
func (r *Registry) InFlight() int {
	if r == nil {
		return 0
	}
	return int(r.inFlight.Load())
}

// RecordDiameter records a diameter request; cached requests only count hits
func (r *Registry) RecordDiameter(mode string, cached bool) {
	if r == nil {
		return
	}
	if cached {
		r.DiameterCacheHitsTotal.Inc()
		return
	}
	r.DiameterComputationsTotal.WithLabelValues(mode).Inc()
}

// RecordSphereCache adds sphere memo hit and miss deltas
func (r *Registry) RecordSphereCache(hits, misses int64) {
	if r == nil {
		return
	}
	r.SphereCacheTotal.WithLabelValues("hit").Add(float64(hits))
	r.SphereCacheTotal.WithLabelValues("miss").Add(float64(misses))
}

// RecordGraphLoaded records a loaded graph and its size
func (r *Registry) RecordGraphLoaded(format string, nodes, edges int) {
	if r == nil {
		return
	}
	r.GraphsLoadedTotal.WithLabelValues(format).Inc()
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
}

// Handler exposes the registry in the Prometheus text format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
