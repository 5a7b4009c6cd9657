package algorithms

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/dd0wney/cluso-graphsim/pkg/graph"
	"github.com/dd0wney/cluso-graphsim/pkg/logging"
	"github.com/dd0wney/cluso-graphsim/pkg/parallel"
)

// DiameterParallel computes the same value as Diameter by splitting the
// start nodes round-robin into `workers` buckets and running one goroutine
// per bucket. Each BFS still explores the whole reachable graph; only the
// set of start nodes is partitioned. Bucket maxima are reduced after every
// bucket goroutine has returned, and the result shares the memo with
// Diameter.
//
// workers must be >= 1. A panic inside a bucket aborts the computation with
// an error wrapping parallel.ErrTaskFailed and nothing is cached.
func DiameterParallel(g *graph.Graph, d graph.Directedness, workers int, opts Options) (int, error) {
	if workers < 1 {
		return 0, fmt.Errorf("algorithms: workers must be >= 1, got %d", workers)
	}
	v, cached, err := g.MemoizeDiameterErr(d, func() (int, error) {
		return partitionedDiameter(g, d, workers, opts.logger())
	})
	if err != nil {
		return 0, err
	}
	opts.Metrics.RecordDiameter("parallel", cached)
	return v, nil
}

func partitionedDiameter(g *graph.Graph, d graph.Directedness, workers int, logger logging.Logger) (int, error) {
	logger = logger.With(logging.Component("diameter"), logging.Directedness(d.String()), logging.Workers(workers))
	timer := logging.StartTimer(logger, "diameter computed")

	buckets := make([][]graph.NodeHandle, workers)
	for i, n := range g.Nodes() {
		buckets[i%workers] = append(buckets[i%workers], n.Handle())
	}

	dir := d.TraversalDirection()
	maxima := make([]int, workers)
	var finished atomic.Int32

	var eg errgroup.Group
	eg.SetLimit(workers)
	for b := range buckets {
		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: bucket %d: panic: %v", parallel.ErrTaskFailed, b, r)
					logger.Error("diameter bucket failed", logging.Int("bucket", b), logging.Error(err))
				}
			}()

			scratch := newBFSScratch(g)
			local := 0
			for _, h := range buckets[b] {
				if e := scratch.eccentricity(g, h, dir, nil); e > local {
					local = e
				}
			}
			maxima[b] = local

			done := finished.Add(1)
			logger.Info("diameter", logging.Percent(int(done)*100/workers))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		timer.EndError(err)
		return 0, err
	}

	// Wait returns after every bucket goroutine, so maxima is fully written.
	result := 0
	for _, m := range maxima {
		if m > result {
			result = m
		}
	}
	timer.End(logging.Int("diameter", result))
	return result, nil
}
