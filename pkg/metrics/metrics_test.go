package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.SimilarityTasksTotal == nil {
		t.Error("SimilarityTasksTotal not initialized")
	}
	if r.DiameterComputationsTotal == nil {
		t.Error("DiameterComputationsTotal not initialized")
	}
	if r.GraphsLoadedTotal == nil {
		t.Error("GraphsLoadedTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestRecordSimilarityTask(t *testing.T) {
	r := NewRegistry()

	r.RecordSimilarityTask("veo", StatusSuccess, 10*time.Millisecond)
	r.RecordSimilarityTask("veo", StatusSuccess, 20*time.Millisecond)
	r.RecordSimilarityTask("veo", StatusFailed, 5*time.Millisecond)

	if got := counterValue(t, r.SimilarityTasksTotal.WithLabelValues("veo", StatusSuccess)); got != 2 {
		t.Errorf("Success counter = %v, want 2", got)
	}
	if got := counterValue(t, r.SimilarityTasksTotal.WithLabelValues("veo", StatusFailed)); got != 1 {
		t.Errorf("Failed counter = %v, want 1", got)
	}

	hist, err := r.SimilarityTaskDuration.GetMetricWithLabelValues("veo")
	if err != nil {
		t.Fatalf("Failed to get histogram: %v", err)
	}
	var metric dto.Metric
	if err := hist.(prometheus.Metric).Write(&metric); err != nil {
		t.Fatalf("Failed to write histogram: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 3 {
		t.Errorf("Histogram sample count = %v, want 3", metric.Histogram.GetSampleCount())
	}
}

func TestWorkersInFlight(t *testing.T) {
	r := NewRegistry()
	r.TaskStarted()
	r.TaskStarted()
	r.TaskFinished()

	if got := gaugeValue(t, r.WorkersInFlight); got != 1 {
		t.Errorf("WorkersInFlight = %v, want 1", got)
	}
	if got := r.InFlight(); got != 1 {
		t.Errorf("InFlight() = %d, want 1", got)
	}
}

func TestRecordDiameter(t *testing.T) {
	r := NewRegistry()
	r.RecordDiameter("parallel", false)
	r.RecordDiameter("parallel", true)
	r.RecordDiameter("serial", true)

	if got := counterValue(t, r.DiameterComputationsTotal.WithLabelValues("parallel")); got != 1 {
		t.Errorf("parallel computations = %v, want 1", got)
	}
	if got := counterValue(t, r.DiameterCacheHitsTotal); got != 2 {
		t.Errorf("cache hits = %v, want 2", got)
	}
}

func TestRecordGraphLoaded(t *testing.T) {
	r := NewRegistry()
	r.RecordGraphLoaded("gml", 6, 6)
	r.RecordGraphLoaded("borland", 10, 12)

	if got := counterValue(t, r.GraphsLoadedTotal.WithLabelValues("gml")); got != 1 {
		t.Errorf("gml loads = %v, want 1", got)
	}
	if got := gaugeValue(t, r.GraphNodes); got != 10 {
		t.Errorf("GraphNodes = %v, want 10", got)
	}
	if got := gaugeValue(t, r.GraphEdges); got != 12 {
		t.Errorf("GraphEdges = %v, want 12", got)
	}
}

func TestNilRegistryIsNoop(t *testing.T) {
	var r *Registry
	r.RecordSimilarityTask("veo", StatusSuccess, time.Millisecond)
	r.TaskStarted()
	r.TaskFinished()
	r.RecordDiameter("serial", false)
	r.RecordSphereCache(1, 1)
	r.RecordGraphLoaded("gml", 1, 1)
	if got := r.InFlight(); got != 0 {
		t.Errorf("InFlight() = %d, want 0", got)
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.RecordSphereCache(3, 1)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		`graphsim_sphere_cache_total{result="hit"} 3`,
		`graphsim_sphere_cache_total{result="miss"} 1`,
		"graphsim_workers_in_flight",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("Expected %q in exposition output", want)
		}
	}
}

func TestGetPrometheusRegistry(t *testing.T) {
	r := NewRegistry()
	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	names := make(map[string]bool)
	for _, m := range families {
		names[m.GetName()] = true
	}
	for _, expected := range []string{
		"graphsim_workers_in_flight",
		"graphsim_diameter_cache_hits_total",
		"graphsim_graph_nodes",
	} {
		if !names[expected] {
			t.Errorf("Expected metric %s not found", expected)
		}
	}
}
