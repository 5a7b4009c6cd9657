package similarity

import (
	"fmt"

	"github.com/dd0wney/cluso-graphsim/pkg/graph"
	"github.com/dd0wney/cluso-graphsim/pkg/logging"
	"github.com/dd0wney/cluso-graphsim/pkg/metrics"
	"github.com/dd0wney/cluso-graphsim/pkg/parallel"
)

// Options configures matrix runs.
type Options struct {
	// Workers bounds concurrent pair comparisons. Required, >= 1.
	Workers int
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// Matrix scores every pair of graphs with the strategy and returns the
// symmetric n x n result; the diagonal is 0. Pairs run on a bounded worker
// pool. Graphs are only read, so one graph may appear in many pairs at
// once; sphere maps are memoized per node across the run.
func Matrix(graphs []*graph.Graph, strategy Strategy, d graph.Directedness, opts Options) ([][]float64, error) {
	fn := strategy.Func()
	if fn == nil {
		return nil, fmt.Errorf("similarity: %s is not a graph strategy", strategy)
	}

	before := sphereStats(graphs)
	matrix, err := parallel.SymmetricMatrix(graphs, func(g1, g2 *graph.Graph) (float64, error) {
		return fn(g1, g2, d), nil
	}, parallel.MatrixOptions{
		Workers: opts.Workers,
		Metric:  strategy.String(),
		Logger:  opts.Logger,
		Metrics: opts.Metrics,
	})
	after := sphereStats(graphs)
	opts.Metrics.RecordSphereCache(after.SphereHits-before.SphereHits, after.SphereMisses-before.SphereMisses)

	return matrix, err
}

// SingleNodeMatrix compares one node id across every pair of graphs using
// NeighborhoodSimilarity. Every graph must contain the node; otherwise the
// error wraps graph.ErrNodeNotFound and nothing is computed. Runs serially.
func SingleNodeMatrix(graphs []*graph.Graph, nodeID string, d graph.Directedness, logger logging.Logger) ([][]float64, error) {
	nodes := make([]graph.Node, len(graphs))
	for i, g := range graphs {
		n, ok := g.Node(nodeID)
		if !ok {
			return nil, graph.NewError("SingleNodeMatrix").
				Node(nodeID).
				Context(fmt.Sprintf("graph %d", i)).
				Cause(graph.ErrNodeNotFound).
				Err()
		}
		nodes[i] = n
	}

	return parallel.SymmetricMatrix(nodes, func(a, b graph.Node) (float64, error) {
		return NeighborhoodSimilarity(a, b, d), nil
	}, parallel.MatrixOptions{
		Workers: 1,
		Metric:  "node",
		Logger:  logger,
	})
}

func sphereStats(graphs []*graph.Graph) graph.CacheStats {
	var total graph.CacheStats
	for _, g := range graphs {
		s := g.CacheStats()
		total.SphereHits += s.SphereHits
		total.SphereMisses += s.SphereMisses
	}
	return total
}
