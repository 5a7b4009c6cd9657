package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSimilarityMetrics() {
	r.SimilarityTasksTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphsim_similarity_tasks_total",
			Help: "Total number of graph pair similarity tasks",
		},
		[]string{"metric", "status"}, // status: success, failed
	)

	r.SimilarityTaskDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphsim_similarity_task_duration_seconds",
			Help:    "Duration of a single graph pair similarity task in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 30, 120},
		},
		[]string{"metric"},
	)

	r.WorkersInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphsim_workers_in_flight",
			Help: "Number of scheduler tasks currently running",
		},
	)
}
