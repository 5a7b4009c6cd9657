package algorithms

import (
	"github.com/dd0wney/cluso-graphsim/pkg/graph"
)

// EccentricityPaths runs a BFS from start over OUT edges whose Type
// attribute is one of edgeTypes (a missing Type matches ""), and returns one
// shortest path from start to each node at the maximum distance reached.
// Paths start with start and end with the far node. An isolated start
// yields the single path [start].
func EccentricityPaths(start graph.Node, edgeTypes map[string]struct{}) [][]graph.Node {
	g := start.Graph()
	predecessor := map[graph.NodeHandle]graph.NodeHandle{}
	known := map[graph.NodeHandle]int{start.Handle(): 0}
	queue := []graph.NodeHandle{start.Handle()}

	maxDistance := 0
	farthest := []graph.NodeHandle{start.Handle()}

	for head := 0; head < len(queue); head++ {
		current := queue[head]
		distance := known[current]
		if distance > maxDistance {
			maxDistance = distance
			farthest = farthest[:0]
		}
		if distance == maxDistance && current != start.Handle() {
			farthest = append(farthest, current)
		}

		for _, e := range g.NodeAt(current).Edges(graph.Out) {
			if _, ok := edgeTypes[e.Attr(graph.AttrType, "")]; !ok {
				continue
			}
			target := e.Target().Handle()
			if _, seen := known[target]; seen {
				continue
			}
			known[target] = distance + 1
			predecessor[target] = current
			queue = append(queue, target)
		}
	}

	paths := make([][]graph.Node, 0, len(farthest))
	for _, end := range farthest {
		var path []graph.Node
		for h := end; ; h = predecessor[h] {
			path = append(path, g.NodeAt(h))
			if h == start.Handle() {
				break
			}
		}
		reverse(path)
		paths = append(paths, path)
	}
	return paths
}

func reverse(nodes []graph.Node) {
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
}
