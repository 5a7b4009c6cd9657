package graph

import (
	"sync"
)

// SphereMap holds the BFS layering of a node: level i is the set of nodes
// at exactly distance i from the root (level 0 is the root itself).
// Levels are keyed by node id so maps from different graphs compare by
// identity. A SphereMap is immutable once built.
type SphereMap struct {
	g      *Graph
	levels []map[string]NodeHandle
}

// sphereMemo is a single-slot cache: it remembers only the last
// (maxDepth, directedness) request and recomputes on any mismatch.
type sphereMemo struct {
	mu           sync.Mutex
	cached       *SphereMap
	maxDepth     int
	directedness Directedness
	generation   uint64
}

// Len returns the number of depth levels.
func (s *SphereMap) Len() int {
	return len(s.levels)
}

// MaxDepth returns the deepest level reached, 0 for an isolated root.
func (s *SphereMap) MaxDepth() int {
	return len(s.levels) - 1
}

// Size returns the number of nodes at the depth, 0 beyond MaxDepth.
func (s *SphereMap) Size(depth int) int {
	if depth < 0 || depth >= len(s.levels) {
		return 0
	}
	return len(s.levels[depth])
}

// Contains reports whether the node id lies at the given depth.
func (s *SphereMap) Contains(depth int, id string) bool {
	if depth < 0 || depth >= len(s.levels) {
		return false
	}
	_, ok := s.levels[depth][id]
	return ok
}

// IDs returns the node ids at the given depth. The map must not be modified.
// Depths outside the map yield nil, which behaves as an empty set.
func (s *SphereMap) IDs(depth int) map[string]NodeHandle {
	if depth < 0 || depth >= len(s.levels) {
		return nil
	}
	return s.levels[depth]
}

// Nodes returns the nodes at the given depth.
func (s *SphereMap) Nodes(depth int) []Node {
	level := s.IDs(depth)
	out := make([]Node, 0, len(level))
	for _, h := range level {
		out = append(out, Node{g: s.g, h: h})
	}
	return out
}

// SphereMap returns the sphere decomposition of n up to maxDepth, following
// OUT edges when directed and ANY edges otherwise. The result is memoized on
// the node; only the most recent (maxDepth, directedness) pair is kept.
func (n Node) SphereMap(maxDepth int, d Directedness) *SphereMap {
	memo := n.g.nodes[n.h].memo
	gen := n.g.generation.Load()

	memo.mu.Lock()
	defer memo.mu.Unlock()

	if memo.cached != nil && memo.maxDepth == maxDepth && memo.directedness == d && memo.generation == gen {
		n.g.sphereHits.Add(1)
		return memo.cached
	}
	n.g.sphereMisses.Add(1)

	sm := n.g.buildSphereMap(n.h, maxDepth, d)
	memo.cached = sm
	memo.maxDepth = maxDepth
	memo.directedness = d
	memo.generation = gen
	return sm
}

func (g *Graph) buildSphereMap(root NodeHandle, maxDepth int, d Directedness) *SphereMap {
	dir := d.TraversalDirection()
	visited := map[NodeHandle]struct{}{root: {}}
	frontier := []NodeHandle{root}
	sm := &SphereMap{g: g}

	for depth := 0; len(frontier) > 0; depth++ {
		level := make(map[string]NodeHandle, len(frontier))
		for _, h := range frontier {
			level[g.nodes[h].id] = h
		}
		sm.levels = append(sm.levels, level)

		if depth >= maxDepth {
			break
		}
		var next []NodeHandle
		for _, h := range frontier {
			g.forEachNeighbor(h, dir, func(other NodeHandle) {
				if _, seen := visited[other]; seen {
					return
				}
				visited[other] = struct{}{}
				next = append(next, other)
			})
		}
		frontier = next
	}
	return sm
}
