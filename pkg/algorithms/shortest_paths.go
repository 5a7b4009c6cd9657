package algorithms

import (
	"github.com/dd0wney/cluso-graphsim/pkg/graph"
)

// PathLengths maps graph.SortedIDPair keys to undirected hop distances.
type PathLengths map[string]int

// Lookup returns the distance between two ids, if recorded.
func (p PathLengths) Lookup(a, b string) (int, bool) {
	d, ok := p[graph.SortedIDPair(a, b)]
	return d, ok
}

// Max returns the largest recorded distance, 0 for an empty table.
func (p PathLengths) Max() int {
	result := 0
	for _, d := range p {
		if d > result {
			result = d
		}
	}
	return result
}

// UndirectedShortestPaths computes hop distances between every pair of the
// given nodes, running a BFS over ANY edges from each node but never
// stepping outside the subset. Unreachable pairs are absent from the result.
// All nodes must belong to the same graph.
func UndirectedShortestPaths(nodes []graph.Node) PathLengths {
	result := make(PathLengths)
	if len(nodes) < 2 {
		return result
	}
	g := nodes[0].Graph()

	inSubset := make([]bool, g.NodeCount())
	for _, n := range nodes {
		inSubset[n.Handle()] = true
	}

	scratch := newBFSScratch(g)
	for i, source := range nodes {
		// a pair already recorded from an earlier source needs no second BFS
		if i == len(nodes)-1 || allRecorded(result, source, nodes[i+1:]) {
			continue
		}
		subsetBFS(g, source.Handle(), inSubset, scratch, func(h graph.NodeHandle, depth int) {
			result[graph.SortedIDPair(source.ID(), g.NodeAt(h).ID())] = depth
		})
	}
	return result
}

func allRecorded(table PathLengths, source graph.Node, rest []graph.Node) bool {
	for _, other := range rest {
		if _, ok := table[graph.SortedIDPair(source.ID(), other.ID())]; !ok {
			return false
		}
	}
	return true
}

func subsetBFS(g *graph.Graph, start graph.NodeHandle, inSubset []bool, s *bfsScratch, visit func(graph.NodeHandle, int)) {
	s.reset()
	s.dist[start] = 0
	s.seen = append(s.seen, start)
	s.queue = append(s.queue, start)

	for head := 0; head < len(s.queue); head++ {
		current := s.queue[head]
		depth := s.dist[current]
		g.Neighbors(current, graph.Any, func(other graph.NodeHandle) {
			if !inSubset[other] || s.dist[other] >= 0 {
				return
			}
			s.dist[other] = depth + 1
			s.seen = append(s.seen, other)
			s.queue = append(s.queue, other)
			visit(other, int(depth+1))
		})
	}
}
