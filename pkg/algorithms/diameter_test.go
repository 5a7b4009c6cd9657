package algorithms

import (
	"errors"
	"sync"
	"testing"

	dto "github.com/prometheus/client_model/go"

	"github.com/dd0wney/cluso-graphsim/pkg/graph"
	"github.com/dd0wney/cluso-graphsim/pkg/graph/graphtest"
	"github.com/dd0wney/cluso-graphsim/pkg/metrics"
)

func TestDiameter_SixNode(t *testing.T) {
	g := graphtest.SixNode(graph.Directed)

	if got := Diameter(g, graph.Directed, Options{}); got != 3 {
		t.Errorf("Expected directed diameter 3, got %d", got)
	}
	if got := Diameter(g, graph.Undirected, Options{}); got != 4 {
		t.Errorf("Expected undirected diameter 4, got %d", got)
	}
}

func TestDiameter_EdgeCases(t *testing.T) {
	tests := []struct {
		name string
		g    *graph.Graph
		want int
	}{
		{"empty", graph.New(graph.Directed), 0},
		{"single node", graphtest.FromEdges(graph.Directed, []string{"a"}, nil), 0},
		{"isolated pair", graphtest.FromEdges(graph.Directed, []string{"a", "b"}, nil), 0},
		{"path of 5", graphtest.Path(graph.Directed, "p", 5), 4},
		{"cycle of 4", graphtest.FromEdges(graph.Directed, nil, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "a"}}), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Diameter(tt.g, graph.Directed, Options{}); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestDiameter_Memoized(t *testing.T) {
	g := graphtest.SixNode(graph.Directed)
	reg := metrics.NewRegistry()
	opts := Options{Metrics: reg}

	Diameter(g, graph.Directed, opts)
	Diameter(g, graph.Directed, opts)
	if _, ok := g.CachedDiameter(graph.Directed); !ok {
		t.Fatal("Expected directed diameter to be cached")
	}
	if _, ok := g.CachedDiameter(graph.Undirected); ok {
		t.Error("Undirected diameter must be cached separately")
	}

	var metric dto.Metric
	reg.DiameterCacheHitsTotal.Write(&metric)
	if metric.Counter.GetValue() != 1 {
		t.Errorf("Expected 1 cache hit, got %v", metric.Counter.GetValue())
	}
	reg.DiameterComputationsTotal.WithLabelValues("serial").Write(&metric)
	if metric.Counter.GetValue() != 1 {
		t.Errorf("Expected 1 computation, got %v", metric.Counter.GetValue())
	}
}

func TestDiameterParallel_MatchesSerial(t *testing.T) {
	for _, d := range []graph.Directedness{graph.Directed, graph.Undirected} {
		want := Diameter(graphtest.SixNode(graph.Directed), d, Options{})
		for workers := 1; workers <= 8; workers++ {
			g := graphtest.SixNode(graph.Directed)
			got, err := DiameterParallel(g, d, workers, Options{})
			if err != nil {
				t.Fatalf("DiameterParallel(%s, %d) failed: %v", d, workers, err)
			}
			if got != want {
				t.Errorf("%s with %d workers: expected %d, got %d", d, workers, want, got)
			}
		}
	}
}

func TestDiameterParallel_LargerGraph(t *testing.T) {
	g := graphtest.Path(graph.Undirected, "n", 40)
	got, err := DiameterParallel(g, graph.Undirected, 3, Options{})
	if err != nil {
		t.Fatalf("DiameterParallel failed: %v", err)
	}
	if got != 39 {
		t.Errorf("Expected 39, got %d", got)
	}

	// a cached value from the parallel path serves the serial call
	if v, ok := g.CachedDiameter(graph.Undirected); !ok || v != 39 {
		t.Errorf("Expected cached 39, got %d (%v)", v, ok)
	}
}

func TestDiameterParallel_InvalidWorkers(t *testing.T) {
	g := graphtest.SixNode(graph.Directed)
	if _, err := DiameterParallel(g, graph.Directed, 0, Options{}); err == nil {
		t.Error("Expected an error for zero workers")
	}
}

func TestDiameter_ConcurrentCallers(t *testing.T) {
	g := graphtest.SixNode(graph.Directed)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if got := Diameter(g, graph.Undirected, Options{}); got != 4 {
				errs <- errors.New("serial returned wrong diameter")
			}
		}()
		go func() {
			defer wg.Done()
			got, err := DiameterParallel(g, graph.Undirected, 2, Options{})
			if err != nil || got != 4 {
				errs <- errors.New("parallel returned wrong diameter")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestEccentricity(t *testing.T) {
	g := graphtest.SixNode(graph.Directed)
	n1, _ := g.Node("1")
	n5, _ := g.Node("5")

	if got := Eccentricity(n1, graph.Directed); got != 3 {
		t.Errorf("Expected eccentricity 3 for node 1, got %d", got)
	}
	if got := Eccentricity(n5, graph.Directed); got != 0 {
		t.Errorf("Expected eccentricity 0 for sink node 5, got %d", got)
	}
	if got := Eccentricity(n5, graph.Undirected); got != 3 {
		t.Errorf("Expected undirected eccentricity 3 for node 5, got %d", got)
	}
}
