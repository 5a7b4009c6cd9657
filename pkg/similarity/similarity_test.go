package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-graphsim/pkg/graph"
	"github.com/dd0wney/cluso-graphsim/pkg/graph/graphtest"
)

const delta = 1e-9

func nodeOf(t *testing.T, g *graph.Graph, id string) graph.Node {
	t.Helper()
	n, ok := g.Node(id)
	require.True(t, ok, "node %s missing", id)
	return n
}

func TestNeighborhoodSimilarity(t *testing.T) {
	tests := []struct {
		name   string
		g1, g2 *graph.Graph
		d      graph.Directedness
		want   float64
	}{
		{
			name: "shared and distinct first sphere",
			g1:   graphtest.FromEdges(graph.Directed, nil, [][2]string{{"a", "b"}, {"a", "c"}}),
			g2:   graphtest.FromEdges(graph.Directed, nil, [][2]string{{"a", "b"}, {"a", "d"}}),
			d:    graph.Directed,
			want: 1.0 / 3.0,
		},
		{
			name: "closer spheres weigh more",
			g1:   graphtest.FromEdges(graph.Directed, nil, [][2]string{{"a", "b"}, {"b", "c"}}),
			g2:   graphtest.FromEdges(graph.Directed, nil, [][2]string{{"a", "b"}, {"b", "d"}}),
			d:    graph.Directed,
			want: 2.0 / 3.0,
		},
		{
			name: "missing depth counts as empty",
			g1:   graphtest.FromEdges(graph.Directed, nil, [][2]string{{"a", "b"}, {"b", "c"}}),
			g2:   graphtest.FromEdges(graph.Directed, nil, [][2]string{{"a", "b"}}),
			d:    graph.Directed,
			want: 2.0 / 3.0,
		},
		{
			name: "both isolated",
			g1:   graphtest.FromEdges(graph.Directed, []string{"a"}, nil),
			g2:   graphtest.FromEdges(graph.Directed, []string{"a"}, nil),
			d:    graph.Directed,
			want: 1.0,
		},
		{
			name: "one isolated",
			g1:   graphtest.FromEdges(graph.Directed, []string{"a"}, nil),
			g2:   graphtest.FromEdges(graph.Directed, nil, [][2]string{{"a", "b"}}),
			d:    graph.Directed,
			want: 0.0,
		},
		{
			name: "sink node is isolated when directed",
			g1:   graphtest.FromEdges(graph.Directed, nil, [][2]string{{"b", "a"}}),
			g2:   graphtest.FromEdges(graph.Directed, nil, [][2]string{{"c", "a"}}),
			d:    graph.Directed,
			want: 1.0,
		},
		{
			name: "sink node sees predecessors when undirected",
			g1:   graphtest.FromEdges(graph.Directed, nil, [][2]string{{"b", "a"}}),
			g2:   graphtest.FromEdges(graph.Directed, nil, [][2]string{{"c", "a"}}),
			d:    graph.Undirected,
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NeighborhoodSimilarity(nodeOf(t, tt.g1, "a"), nodeOf(t, tt.g2, "a"), tt.d)
			assert.InDelta(t, tt.want, got, delta)
		})
	}
}

func TestNeighborhoodSimilarity_Identity(t *testing.T) {
	for _, d := range []graph.Directedness{graph.Directed, graph.Undirected} {
		g := graphtest.SixNode(graph.Directed)
		for _, n := range g.Nodes() {
			assert.InDelta(t, 1.0, NeighborhoodSimilarity(n, n, d), delta, "node %s %s", n.ID(), d)
		}
	}
}

func TestNeighborhoodSimilarity_SameGraphDifferentNodes(t *testing.T) {
	g := graphtest.SixNode(graph.Directed)

	// 2 and 3 both reach {4} then {5}
	assert.InDelta(t, 1.0, NeighborhoodSimilarity(nodeOf(t, g, "2"), nodeOf(t, g, "3"), graph.Directed), delta)
	// 1 reaches {2,3},{4},{5}; 4 reaches only {5}
	assert.InDelta(t, 0.0, NeighborhoodSimilarity(nodeOf(t, g, "1"), nodeOf(t, g, "4"), graph.Directed), delta)
}

func TestVEO(t *testing.T) {
	tests := []struct {
		name   string
		g1, g2 *graph.Graph
		d      graph.Directedness
		want   float64
	}{
		{
			name: "identical",
			g1:   graphtest.SixNode(graph.Directed),
			g2:   graphtest.SixNode(graph.Directed),
			d:    graph.Directed,
			want: 1.0,
		},
		{
			name: "partial overlap",
			g1:   graphtest.FromEdges(graph.Directed, nil, [][2]string{{"a", "b"}, {"a", "c"}}),
			g2:   graphtest.FromEdges(graph.Directed, nil, [][2]string{{"a", "b"}, {"a", "d"}}),
			d:    graph.Directed,
			want: 0.6,
		},
		{
			name: "reversed edge directed",
			g1:   graphtest.FromEdges(graph.Directed, nil, [][2]string{{"a", "b"}}),
			g2:   graphtest.FromEdges(graph.Directed, nil, [][2]string{{"b", "a"}}),
			d:    graph.Directed,
			want: 2.0 / 3.0,
		},
		{
			name: "reversed edge undirected",
			g1:   graphtest.FromEdges(graph.Directed, nil, [][2]string{{"a", "b"}}),
			g2:   graphtest.FromEdges(graph.Directed, nil, [][2]string{{"b", "a"}}),
			d:    graph.Undirected,
			want: 1.0,
		},
		{
			name: "both empty",
			g1:   graph.New(graph.Directed),
			g2:   graph.New(graph.Directed),
			d:    graph.Directed,
			want: 1.0,
		},
		{
			name: "one empty",
			g1:   graphtest.FromEdges(graph.Directed, []string{"a"}, nil),
			g2:   graph.New(graph.Directed),
			d:    graph.Directed,
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, VEO(tt.g1, tt.g2, tt.d), delta)
			assert.InDelta(t, tt.want, VEO(tt.g2, tt.g1, tt.d), delta, "VEO must be symmetric")
		})
	}
}

func TestSphereGraphSimilarity(t *testing.T) {
	g := graphtest.SixNode(graph.Directed)
	assert.InDelta(t, 1.0, SphereGraphSimilarity(g, g.Copy(), graph.Directed), delta)
	assert.InDelta(t, 1.0, SphereGraphSimilarity(g, g.Copy(), graph.Undirected), delta)

	// a: {a},{b} in both (1.0); b is a sink in both (1.0); z only in g2
	g1 := graphtest.FromEdges(graph.Directed, nil, [][2]string{{"a", "b"}})
	g2 := graphtest.FromEdges(graph.Directed, []string{"z"}, [][2]string{{"a", "b"}})
	assert.InDelta(t, 2.0/3.0, SphereGraphSimilarity(g1, g2, graph.Directed), delta)

	disjoint := graphtest.FromEdges(graph.Directed, nil, [][2]string{{"x", "y"}})
	assert.InDelta(t, 0.0, SphereGraphSimilarity(g1, disjoint, graph.Directed), delta)

	assert.InDelta(t, 1.0, SphereGraphSimilarity(graph.New(graph.Directed), graph.New(graph.Directed), graph.Directed), delta)
}

func TestFuzzyJaccard(t *testing.T) {
	tests := []struct {
		name   string
		g1, g2 *graph.Graph
		want   float64
	}{
		{
			name: "identical",
			g1:   graphtest.SixNode(graph.Directed),
			g2:   graphtest.SixNode(graph.Directed),
			want: 1.0,
		},
		{
			// g1: d(a,b)=1; g2: a and b in separate components, delta 1+1
			name: "edge against isolated pair",
			g1:   graphtest.FromEdges(graph.Directed, nil, [][2]string{{"a", "b"}}),
			g2:   graphtest.FromEdges(graph.Directed, []string{"a", "b"}, nil),
			want: 0.5,
		},
		{
			// padded to {a,b,c}; both deltas are 2+1
			// ab: 1 vs 1/3, ac: 1/3 vs 1/3, bc: 1/3 vs 1
			name: "padding with unmatched nodes",
			g1:   graphtest.FromEdges(graph.Directed, nil, [][2]string{{"a", "b"}}),
			g2:   graphtest.FromEdges(graph.Directed, nil, [][2]string{{"b", "c"}}),
			want: 3.0 / 7.0,
		},
		{
			name: "single shared node",
			g1:   graphtest.FromEdges(graph.Directed, []string{"a"}, nil),
			g2:   graphtest.FromEdges(graph.Directed, []string{"a"}, nil),
			want: 1.0,
		},
		{
			name: "both empty",
			g1:   graph.New(graph.Directed),
			g2:   graph.New(graph.Directed),
			want: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FuzzyJaccard(tt.g1, tt.g2), delta)
			assert.InDelta(t, tt.want, FuzzyJaccard(tt.g2, tt.g1), delta, "fuzzy Jaccard must be symmetric")
		})
	}
}

func TestFuzzyJaccard_LeavesInputsUntouched(t *testing.T) {
	g1 := graphtest.FromEdges(graph.Directed, nil, [][2]string{{"a", "b"}})
	g2 := graphtest.FromEdges(graph.Directed, nil, [][2]string{{"c", "d"}})

	FuzzyJaccard(g1, g2)

	assert.Equal(t, 2, g1.NodeCount())
	assert.Equal(t, 2, g2.NodeCount())
	assert.False(t, g1.HasNode("c"))
}

func TestParseStrategy(t *testing.T) {
	for _, s := range []Strategy{StrategySphere, StrategyVEO, StrategyFuzzy} {
		parsed, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
		assert.NotNil(t, s.Func())
	}

	parsed, err := ParseStrategy(" VEO ")
	require.NoError(t, err)
	assert.Equal(t, StrategyVEO, parsed)

	_, err = ParseStrategy("ged")
	assert.Error(t, err)
	assert.Nil(t, Strategy(42).Func())
}
