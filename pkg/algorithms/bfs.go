// Package algorithms implements traversal-based analyses over graph.Graph:
// diameter, weakly connected components, shortest path tables, clustering
// and geodesic statistics.
package algorithms

import (
	"github.com/dd0wney/cluso-graphsim/pkg/graph"
)

// bfsScratch holds per-traversal state sized to the graph's arena so a
// worker can run many BFS passes without reallocating.
type bfsScratch struct {
	dist  []int32 // -1 = unvisited
	queue []graph.NodeHandle
	seen  []graph.NodeHandle // handles touched in the last pass, for cheap reset
}

func newBFSScratch(g *graph.Graph) *bfsScratch {
	s := &bfsScratch{
		dist:  make([]int32, g.NodeCount()),
		queue: make([]graph.NodeHandle, 0, g.NodeCount()),
	}
	for i := range s.dist {
		s.dist[i] = -1
	}
	return s
}

func (s *bfsScratch) reset() {
	for _, h := range s.seen {
		s.dist[h] = -1
	}
	s.seen = s.seen[:0]
	s.queue = s.queue[:0]
}

// eccentricity runs a BFS from start along dir and returns the deepest
// level reached. visit, if non-nil, is called for every reached node other
// than start with its distance.
func (s *bfsScratch) eccentricity(g *graph.Graph, start graph.NodeHandle, dir graph.Direction, visit func(graph.NodeHandle, int)) int {
	s.reset()
	s.dist[start] = 0
	s.seen = append(s.seen, start)
	s.queue = append(s.queue, start)

	maxDepth := 0
	for head := 0; head < len(s.queue); head++ {
		current := s.queue[head]
		depth := s.dist[current]
		if int(depth) > maxDepth {
			maxDepth = int(depth)
		}
		g.Neighbors(current, dir, func(other graph.NodeHandle) {
			if s.dist[other] >= 0 {
				return
			}
			s.dist[other] = depth + 1
			s.seen = append(s.seen, other)
			s.queue = append(s.queue, other)
			if visit != nil {
				visit(other, int(depth+1))
			}
		})
	}
	return maxDepth
}

// distance returns the distance from the last BFS root to h, -1 if unreached.
func (s *bfsScratch) distance(h graph.NodeHandle) int {
	return int(s.dist[h])
}
