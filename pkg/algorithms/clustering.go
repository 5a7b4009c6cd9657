package algorithms

import (
	"github.com/dd0wney/cluso-graphsim/pkg/graph"
	"github.com/dd0wney/cluso-graphsim/pkg/logging"
)

// LocalClusteringCoefficients computes the local clustering coefficient of
// every node with at least two distinct undirected neighbours: the share of
// neighbour pairs that are themselves linked (in either direction, parallel
// edges counted once). Nodes with fewer neighbours are omitted.
func LocalClusteringCoefficients(g *graph.Graph, opts Options) map[string]float64 {
	coefficients := make(map[string]float64)
	progress := logging.NewProgress(opts.logger().With(logging.Component("clustering")), "clustering coefficient", g.NodeCount())

	for _, node := range g.Nodes() {
		progress.Step()

		neighbors := make(map[graph.NodeHandle]struct{})
		g.Neighbors(node.Handle(), graph.Any, func(h graph.NodeHandle) {
			if h != node.Handle() {
				neighbors[h] = struct{}{}
			}
		})
		k := len(neighbors)
		if k < 2 {
			continue
		}

		// Count distinct linked neighbour pairs via their OUT edges
		links := make(map[[2]graph.NodeHandle]struct{})
		for u := range neighbors {
			g.Neighbors(u, graph.Out, func(v graph.NodeHandle) {
				if v == u {
					return
				}
				if _, ok := neighbors[v]; !ok {
					return
				}
				if u < v {
					links[[2]graph.NodeHandle{u, v}] = struct{}{}
				} else {
					links[[2]graph.NodeHandle{v, u}] = struct{}{}
				}
			})
		}

		possible := k * (k - 1) / 2
		coefficients[node.ID()] = float64(len(links)) / float64(possible)
	}

	return coefficients
}

// ClusteringCoefficient returns the Watts-Strogatz clustering coefficient:
// the mean local coefficient over nodes with at least two undirected
// neighbours. A graph without such nodes yields 0.
func ClusteringCoefficient(g *graph.Graph, opts Options) float64 {
	coefficients := LocalClusteringCoefficients(g, opts)
	if len(coefficients) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, coef := range coefficients {
		sum += coef
	}
	return sum / float64(len(coefficients))
}
