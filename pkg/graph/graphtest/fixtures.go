// Package graphtest provides graph fixtures shared by tests across packages.
package graphtest

import (
	"fmt"

	"github.com/dd0wney/cluso-graphsim/pkg/graph"
)

// SixNodeEdges is the edge list of the canonical six node fixture:
//
//	1 -> 2 -> 4 -> 5 <- 6
//	1 -> 3 -> 4
//
// Directed diameter is 3 (1 to 5), undirected diameter is 4 (1 to 6).
var SixNodeEdges = [][2]string{
	{"1", "2"},
	{"1", "3"},
	{"2", "4"},
	{"3", "4"},
	{"4", "5"},
	{"6", "5"},
}

// SixNode builds the six node fixture with bare ids.
func SixNode(d graph.Directedness) *graph.Graph {
	return FromEdges(d, []string{"1", "2", "3", "4", "5", "6"}, SixNodeEdges)
}

// SixNodeLabeled builds the six node fixture where every node carries a
// Label attribute "node<id>".
func SixNodeLabeled(d graph.Directedness) *graph.Graph {
	g := graph.New(d)
	for _, id := range []string{"1", "2", "3", "4", "5", "6"} {
		mustNode(g, id, map[string]string{graph.AttrLabel: "node" + id})
	}
	for _, e := range SixNodeEdges {
		mustEdge(g, e[0], e[1])
	}
	return g
}

// FromEdges builds a graph with the given nodes and unattributed edges.
// Nodes referenced only by edges are created on demand.
func FromEdges(d graph.Directedness, ids []string, edges [][2]string) *graph.Graph {
	g := graph.New(d)
	for _, id := range ids {
		mustNode(g, id, nil)
	}
	for _, e := range edges {
		for _, id := range e {
			if !g.HasNode(id) {
				mustNode(g, id, nil)
			}
		}
		mustEdge(g, e[0], e[1])
	}
	return g
}

// Path builds a directed path 0 -> 1 -> ... -> n-1 with ids prefixed by prefix.
func Path(d graph.Directedness, prefix string, n int) *graph.Graph {
	g := graph.New(d)
	for i := 0; i < n; i++ {
		mustNode(g, fmt.Sprintf("%s%d", prefix, i), nil)
	}
	for i := 0; i+1 < n; i++ {
		mustEdge(g, fmt.Sprintf("%s%d", prefix, i), fmt.Sprintf("%s%d", prefix, i+1))
	}
	return g
}

func mustNode(g *graph.Graph, id string, attrs map[string]string) {
	if _, err := g.AddNode(id, attrs); err != nil {
		panic(err)
	}
}

func mustEdge(g *graph.Graph, source, target string) {
	if _, err := g.AddEdgeByID(source, target, nil); err != nil {
		panic(err)
	}
}
