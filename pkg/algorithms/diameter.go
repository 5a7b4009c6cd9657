package algorithms

import (
	"github.com/dd0wney/cluso-graphsim/pkg/graph"
	"github.com/dd0wney/cluso-graphsim/pkg/logging"
	"github.com/dd0wney/cluso-graphsim/pkg/metrics"
)

// Options carries the ambient collaborators of long-running analyses.
// The zero value is usable.
type Options struct {
	Logger  logging.Logger
	Metrics *metrics.Registry
}

func (o Options) logger() logging.Logger {
	return logging.OrNop(o.Logger)
}

// Eccentricity returns the maximum BFS depth reached from n, following OUT
// edges when directed and ANY edges otherwise.
func Eccentricity(n graph.Node, d graph.Directedness) int {
	g := n.Graph()
	return newBFSScratch(g).eccentricity(g, n.Handle(), d.TraversalDirection(), nil)
}

// Diameter returns the maximum eccentricity over all nodes. The result is
// memoized on the graph per directedness; a second call for the same
// directedness returns the cached value without traversing.
func Diameter(g *graph.Graph, d graph.Directedness, opts Options) int {
	v, cached := g.MemoizeDiameter(d, func() int {
		return serialDiameter(g, d, opts.logger())
	})
	opts.Metrics.RecordDiameter("serial", cached)
	return v
}

func serialDiameter(g *graph.Graph, d graph.Directedness, logger logging.Logger) int {
	timer := logging.StartTimer(logger, "diameter computed", logging.Directedness(d.String()), logging.Count(g.NodeCount()))
	progress := logging.NewProgress(logger.With(logging.Directedness(d.String())), "diameter", g.NodeCount())

	dir := d.TraversalDirection()
	scratch := newBFSScratch(g)
	result := 0
	for _, n := range g.Nodes() {
		if e := scratch.eccentricity(g, n.Handle(), dir, nil); e > result {
			result = e
		}
		progress.Step()
	}

	timer.End(logging.Int("diameter", result))
	return result
}
