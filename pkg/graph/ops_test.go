package graph_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dd0wney/cluso-graphsim/pkg/graph"
	"github.com/dd0wney/cluso-graphsim/pkg/graph/graphtest"
)

func TestCopy_DeepAndEqual(t *testing.T) {
	g := graphtest.SixNodeLabeled(graph.Directed)
	g.SetHead("directed\n")

	c := g.Copy()
	if !c.EqualDirected(g) || !g.EqualDirected(c) {
		t.Fatal("Copy must be directed-equal to the source")
	}
	if c.Head() != g.Head() {
		t.Errorf("Expected head %q, got %q", g.Head(), c.Head())
	}
	if c.EdgeCount() != g.EdgeCount() {
		t.Errorf("Expected %d edges, got %d", g.EdgeCount(), c.EdgeCount())
	}

	// mutating the copy must not touch the source
	c.AddEdgeByID("5", "1", nil)
	if g.EdgeCount() != len(graphtest.SixNodeEdges) {
		t.Errorf("Source graph changed: %d edges", g.EdgeCount())
	}
	if g.EqualDirected(c) {
		t.Error("Graphs should differ after mutating the copy")
	}
}

func TestUnion_Directed(t *testing.T) {
	g1 := graphtest.FromEdges(graph.Directed, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})
	g2 := graphtest.FromEdges(graph.Directed, []string{"b", "c", "d"}, [][2]string{{"b", "c"}, {"c", "d"}, {"c", "b"}})
	want := graphtest.FromEdges(graph.Directed, []string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"c", "b"}})

	u := graph.Union([]*graph.Graph{g1, g2}, graph.Directed)
	if !u.EqualDirected(want) {
		t.Fatal("Union does not match the expected graph")
	}

	again := graph.Union([]*graph.Graph{u, g2, g1}, graph.Directed)
	if !again.EqualDirected(want) {
		t.Error("Repeated union must be idempotent on topology")
	}
}

func TestUnion_UndirectedSkipsReversedEdges(t *testing.T) {
	g1 := graphtest.FromEdges(graph.Undirected, nil, [][2]string{{"a", "b"}})
	g2 := graphtest.FromEdges(graph.Undirected, nil, [][2]string{{"b", "a"}, {"b", "c"}})

	u := graph.Union([]*graph.Graph{g1, g2}, graph.Undirected)
	if u.NodeCount() != 3 {
		t.Errorf("Expected 3 nodes, got %d", u.NodeCount())
	}
	if u.EdgeCount() != 2 {
		t.Errorf("Expected 2 edges (b-a already linked), got %d", u.EdgeCount())
	}
}

func TestUnion_Empty(t *testing.T) {
	u := graph.Union(nil, graph.Undirected)
	if u.NodeCount() != 0 || u.Directedness() != graph.Undirected {
		t.Errorf("Expected empty undirected graph, got %d nodes (%s)", u.NodeCount(), u.Directedness())
	}
}

func TestEqualDirected_Differences(t *testing.T) {
	base := graphtest.SixNodeLabeled(graph.Directed)

	tests := []struct {
		name   string
		mutate func(g *graph.Graph)
	}{
		{"extra node", func(g *graph.Graph) { g.AddNode("7", nil) }},
		{"extra edge", func(g *graph.Graph) { g.AddEdgeByID("6", "1", nil) }},
		{"edge attribute", func(g *graph.Graph) {
			n, _ := g.Node("1")
			out := n.Edges(graph.Out)
			g.RemoveEdge(out[0])
			g.AddEdge(out[0].Source(), out[0].Target(), map[string]string{graph.AttrType: "x"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := base.Copy()
			tt.mutate(other)
			if base.EqualDirected(other) {
				t.Error("Expected graphs to differ")
			}
		})
	}
}

func TestMemoizeDiameter(t *testing.T) {
	g := graphtest.SixNode(graph.Directed)
	var calls atomic.Int32
	compute := func() int {
		calls.Add(1)
		return 3
	}

	v, cached := g.MemoizeDiameter(graph.Directed, compute)
	if v != 3 || cached {
		t.Fatalf("Expected fresh value 3, got %d (cached=%v)", v, cached)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v, _ := g.MemoizeDiameter(graph.Directed, compute); v != 3 {
				t.Errorf("Expected 3, got %d", v)
			}
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("Expected a single computation, got %d", calls.Load())
	}
	if _, ok := g.CachedDiameter(graph.Undirected); ok {
		t.Error("Undirected diameter should not be cached yet")
	}

	g.AddEdgeByID("5", "6", nil)
	if _, ok := g.CachedDiameter(graph.Directed); ok {
		t.Error("Mutation must invalidate the diameter cache")
	}
}

func TestSortedIDPair(t *testing.T) {
	if graph.SortedIDPair("b", "a") != graph.SortedIDPair("a", "b") {
		t.Error("SortedIDPair must be order independent")
	}
	if graph.SortedIDPair("ab", "c") == graph.SortedIDPair("a", "bc") {
		t.Error("SortedIDPair must not collide on concatenation")
	}
}
