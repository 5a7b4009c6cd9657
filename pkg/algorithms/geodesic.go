package algorithms

import (
	"math/rand/v2"

	"github.com/dd0wney/cluso-graphsim/pkg/graph"
	"github.com/dd0wney/cluso-graphsim/pkg/logging"
)

// GeodesicStats summarises undirected pairwise distances.
type GeodesicStats struct {
	Diameter     int
	MeanDistance float64
	Pairs        int
}

// ExactGeodesicStats computes the undirected diameter and mean geodesic
// distance over every unordered node pair. Unreachable pairs count with
// distance 0, so MeanDistance is only a true mean on connected graphs.
func ExactGeodesicStats(g *graph.Graph, opts Options) GeodesicStats {
	nodes := g.Nodes()
	n := len(nodes)
	progress := logging.NewProgress(opts.logger().With(logging.Component("geodesic")), "geodesic distance", n)

	scratch := newBFSScratch(g)
	var stats GeodesicStats
	var sum int64
	for i, source := range nodes {
		progress.Step()
		if i == n-1 {
			break
		}
		scratch.eccentricity(g, source.Handle(), graph.Any, nil)
		for _, target := range nodes[i+1:] {
			d := scratch.distance(target.Handle())
			if d < 0 {
				d = 0
			}
			sum += int64(d)
			stats.Pairs++
			if d > stats.Diameter {
				stats.Diameter = d
			}
		}
	}
	if stats.Pairs > 0 {
		stats.MeanDistance = float64(sum) / float64(stats.Pairs)
	}
	return stats
}

// SampledGeodesicStats estimates GeodesicStats from up to samples distinct
// random unordered pairs drawn with rng. The sample count is capped at the
// number of pairs in the graph.
func SampledGeodesicStats(g *graph.Graph, samples int, rng *rand.Rand, opts Options) GeodesicStats {
	nodes := g.Nodes()
	n := len(nodes)
	if total := n * (n - 1) / 2; samples > total {
		samples = total
	}
	if samples <= 0 {
		return GeodesicStats{}
	}

	pairs := make(map[[2]int]struct{}, samples)
	for len(pairs) < samples {
		i, k := rng.IntN(n), rng.IntN(n)
		if i == k {
			continue
		}
		if i > k {
			i, k = k, i
		}
		pairs[[2]int{i, k}] = struct{}{}
	}

	progress := logging.NewProgress(opts.logger().With(logging.Component("geodesic")), "sampled geodesic distance", samples)
	scratch := newBFSScratch(g)
	var stats GeodesicStats
	var sum int64
	for p := range pairs {
		scratch.eccentricity(g, nodes[p[0]].Handle(), graph.Any, nil)
		d := scratch.distance(nodes[p[1]].Handle())
		if d < 0 {
			d = 0
		}
		sum += int64(d)
		stats.Pairs++
		if d > stats.Diameter {
			stats.Diameter = d
		}
		progress.Step()
	}
	stats.MeanDistance = float64(sum) / float64(stats.Pairs)
	return stats
}
