package graph_test

import (
	"sync"
	"testing"

	"github.com/dd0wney/cluso-graphsim/pkg/graph"
	"github.com/dd0wney/cluso-graphsim/pkg/graph/graphtest"
)

func sphereSizes(sm *graph.SphereMap) []int {
	sizes := make([]int, sm.Len())
	for i := range sizes {
		sizes[i] = sm.Size(i)
	}
	return sizes
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSphereMap_SixNode(t *testing.T) {
	tests := []struct {
		name string
		d    graph.Directedness
		want []int
	}{
		{"directed", graph.Directed, []int{1, 2, 1, 1}},
		{"undirected", graph.Undirected, []int{1, 2, 1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graphtest.SixNode(graph.Directed)
			n, _ := g.Node("1")

			sm := n.SphereMap(graph.Unbounded, tt.d)
			if got := sphereSizes(sm); !equalInts(got, tt.want) {
				t.Errorf("Expected sphere sizes %v, got %v", tt.want, got)
			}
			if !sm.Contains(0, "1") {
				t.Error("Depth 0 must contain the root")
			}
		})
	}
}

func TestSphereMap_DepthLimit(t *testing.T) {
	g := graphtest.SixNode(graph.Directed)
	n, _ := g.Node("1")

	sm := n.SphereMap(1, graph.Directed)
	if sm.Len() != 2 {
		t.Fatalf("Expected 2 levels at max depth 1, got %d", sm.Len())
	}
	if !sm.Contains(1, "2") || !sm.Contains(1, "3") {
		t.Error("Depth 1 should contain nodes 2 and 3")
	}
	if sm.Size(2) != 0 {
		t.Errorf("Expected nothing beyond max depth, got %d", sm.Size(2))
	}
	if sm.IDs(7) != nil {
		t.Error("Out-of-range depth should yield a nil set")
	}
}

func TestSphereMap_SingleSlotMemo(t *testing.T) {
	g := graphtest.SixNode(graph.Directed)
	n, _ := g.Node("1")

	first := n.SphereMap(graph.Unbounded, graph.Directed)
	again := n.SphereMap(graph.Unbounded, graph.Directed)
	if first != again {
		t.Error("Expected the memoized map for identical parameters")
	}

	undirected := n.SphereMap(graph.Unbounded, graph.Undirected)
	if undirected == first {
		t.Error("Directedness change must recompute")
	}

	// the slot now holds the undirected map, so asking for the directed one recomputes
	back := n.SphereMap(graph.Unbounded, graph.Directed)
	if back == first {
		t.Error("Single-slot memo should not retain the evicted entry")
	}
	if !equalInts(sphereSizes(back), sphereSizes(first)) {
		t.Error("Recomputed map must match the original layering")
	}

	stats := g.CacheStats()
	if stats.SphereHits != 1 || stats.SphereMisses != 3 {
		t.Errorf("Expected 1 hit and 3 misses, got %d hits %d misses", stats.SphereHits, stats.SphereMisses)
	}
}

func TestSphereMap_InvalidatedByMutation(t *testing.T) {
	g := graphtest.SixNode(graph.Directed)
	n, _ := g.Node("1")

	before := n.SphereMap(graph.Unbounded, graph.Directed)
	if _, err := g.AddEdgeByID("5", "6", nil); err != nil {
		t.Fatalf("AddEdge failed: %v", err)
	}
	after := n.SphereMap(graph.Unbounded, graph.Directed)

	if before == after {
		t.Fatal("Topology change must invalidate the memo")
	}
	if after.Len() != 5 {
		t.Errorf("Expected 5 levels after adding 5 -> 6, got %d", after.Len())
	}
}

func TestSphereMap_ConcurrentReaders(t *testing.T) {
	g := graphtest.SixNode(graph.Directed)
	n, _ := g.Node("1")
	want := []int{1, 2, 1, 1, 1}

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := sphereSizes(n.SphereMap(graph.Unbounded, graph.Undirected))
			if !equalInts(got, want) {
				errs <- "unexpected sphere sizes"
			}
		}()
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}
