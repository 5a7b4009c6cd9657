package similarity

import (
	"github.com/dd0wney/cluso-graphsim/pkg/algorithms"
	"github.com/dd0wney/cluso-graphsim/pkg/graph"
)

// VEO is the vertex/edge overlap score of Papadimitriou et al.:
//
//	2(|V1∩V2| + |E1∩E2|) / (|V1| + |V2| + |E1| + |E2|)
//
// Vertices match by id and edges by (source id, target id); parallel edges
// count once. When undirected each edge is entered in both orientations so
// the edge sets ignore direction. Two empty graphs score 1.
func VEO(g1, g2 *graph.Graph, d graph.Directedness) float64 {
	v1, v2 := g1.NodeIDs(), g2.NodeIDs()
	e1, e2 := edgeKeys(g1, d), edgeKeys(g2, d)

	total := len(v1) + len(v2) + len(e1) + len(e2)
	if total == 0 {
		return 1.0
	}
	shared := intersectionSize(v1, v2) + intersectionSize(e1, e2)
	return 2.0 * float64(shared) / float64(total)
}

func edgeKeys(g *graph.Graph, d graph.Directedness) map[string]struct{} {
	keys := make(map[string]struct{}, g.EdgeCount())
	for _, n := range g.Nodes() {
		for _, target := range n.LinkedNodes(graph.Out) {
			keys[n.ID()+"\t"+target.ID()] = struct{}{}
			if d == graph.Undirected {
				keys[target.ID()+"\t"+n.ID()] = struct{}{}
			}
		}
	}
	return keys
}

func intersectionSize(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for k := range a {
		if _, ok := b[k]; ok {
			count++
		}
	}
	return count
}

// SphereGraphSimilarity averages NeighborhoodSimilarity over node ids: each
// node of g1 whose id also exists in g2 contributes its similarity to its
// counterpart, and the sum is divided by the number of distinct ids across
// both graphs. Two empty graphs score 1.
func SphereGraphSimilarity(g1, g2 *graph.Graph, d graph.Directedness) float64 {
	all := g1.NodeIDs()
	for id := range g2.NodeIDs() {
		all[id] = struct{}{}
	}
	if len(all) == 0 {
		return 1.0
	}

	sum := 0.0
	for _, n1 := range g1.Nodes() {
		if n2, ok := g2.Node(n1.ID()); ok {
			sum += NeighborhoodSimilarity(n1, n2, d)
		}
	}
	return sum / float64(len(all))
}

// FuzzyJaccard compares graphs whose node sets may differ. Each graph is
// copied and padded with isolated copies of the nodes only the other has,
// so both share one id set. Distances are undirected.
//
// For every unordered id pair the closeness in a graph is 1/shortest path,
// or 1/delta when the pair is unreachable, where delta sums (diameter+1)
// over the graph's weakly connected components. The score is the sum of
// pairwise minima over the sum of pairwise maxima. With fewer than two
// distinct ids the graphs are trivially equal and score 1.
func FuzzyJaccard(g1, g2 *graph.Graph) float64 {
	p1, p2 := g1.Copy(), g2.Copy()
	pad(p1, g2)
	pad(p2, g1)

	paths1, delta1 := componentPaths(p1)
	paths2, delta2 := componentPaths(p2)

	nodes := p1.Nodes()
	numerator, denominator := 0.0, 0.0
	for i := 0; i < len(nodes)-1; i++ {
		for k := i + 1; k < len(nodes); k++ {
			key := graph.SortedIDPair(nodes[i].ID(), nodes[k].ID())
			c1 := closeness(paths1, key, delta1)
			c2 := closeness(paths2, key, delta2)
			numerator += min(c1, c2)
			denominator += max(c1, c2)
		}
	}
	if denominator == 0 {
		return 1.0
	}
	return numerator / denominator
}

// pad adds to g an isolated copy of every node of other that g lacks.
func pad(g, other *graph.Graph) {
	for _, n := range other.Nodes() {
		if g.HasNode(n.ID()) {
			continue
		}
		// ids are unique in other and absent in g, so this cannot fail
		_, _ = g.CreateNodeFrom(n)
	}
}

func componentPaths(g *graph.Graph) (algorithms.PathLengths, int) {
	all := make(algorithms.PathLengths)
	delta := 0
	for _, c := range algorithms.WeaklyConnectedComponents(g) {
		paths := algorithms.UndirectedShortestPaths(c.Nodes)
		delta += paths.Max() + 1
		for k, v := range paths {
			all[k] = v
		}
	}
	return all, delta
}

func closeness(paths algorithms.PathLengths, key string, delta int) float64 {
	if d, ok := paths[key]; ok {
		return 1.0 / float64(d)
	}
	return 1.0 / float64(delta)
}
