package algorithms

import (
	"sort"

	"github.com/dd0wney/cluso-graphsim/pkg/graph"
)

// Component is a weakly connected component: the nodes mutually reachable
// when edge direction is ignored.
type Component struct {
	Nodes []graph.Node
}

// Size returns the number of nodes in the component
func (c Component) Size() int {
	return len(c.Nodes)
}

// IDs returns the node ids of the component as a set
func (c Component) IDs() map[string]struct{} {
	out := make(map[string]struct{}, len(c.Nodes))
	for _, n := range c.Nodes {
		out[n.ID()] = struct{}{}
	}
	return out
}

// WeaklyConnectedComponents partitions every node into exactly one
// component, traversing ANY edges. Components are sorted by size,
// largest first; ties keep discovery order.
func WeaklyConnectedComponents(g *graph.Graph) []Component {
	visited := make([]bool, g.NodeCount())
	var components []Component

	// BFS to find each component
	for _, start := range g.Nodes() {
		if visited[start.Handle()] {
			continue
		}

		queue := []graph.NodeHandle{start.Handle()}
		visited[start.Handle()] = true
		var members []graph.Node

		for head := 0; head < len(queue); head++ {
			current := queue[head]
			members = append(members, g.NodeAt(current))

			g.Neighbors(current, graph.Any, func(other graph.NodeHandle) {
				if !visited[other] {
					visited[other] = true
					queue = append(queue, other)
				}
			})
		}

		components = append(components, Component{Nodes: members})
	}

	sort.SliceStable(components, func(i, j int) bool {
		return components[i].Size() > components[j].Size()
	})
	return components
}
