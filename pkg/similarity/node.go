// Package similarity scores nodes and whole graphs against each other and
// fills all-pairs similarity matrices over collections of graphs.
package similarity

import (
	"github.com/dd0wney/cluso-graphsim/pkg/graph"
)

// NeighborhoodSimilarity compares the full sphere decompositions of a and b,
// which may live in different graphs. Nodes match by id.
//
// With n the deeper of the two maps, the Jaccard ratio of the sphere sets at
// each depth i in 1..n is weighted by (n+1-i) and the sum normalized by
// 2/(n(n+1)). A depth where both sets are empty contributes ratio 1.
// Two isolated nodes (n == 0) have similarity 1.
func NeighborhoodSimilarity(a, b graph.Node, d graph.Directedness) float64 {
	sa := a.SphereMap(graph.Unbounded, d)
	sb := b.SphereMap(graph.Unbounded, d)

	n := max(sa.MaxDepth(), sb.MaxDepth())
	if n == 0 {
		return 1.0
	}

	sum := 0.0
	for i := 1; i <= n; i++ {
		sum += float64(n+1-i) * jaccard(sa.IDs(i), sb.IDs(i))
	}
	return sum * (2.0 / float64(n*(n+1)))
}

// jaccard returns |A∩B| / |A∪B| over key sets, 1 when both are empty.
func jaccard(a, b map[string]graph.NodeHandle) float64 {
	intersection := 0
	for id := range a {
		if _, ok := b[id]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}
