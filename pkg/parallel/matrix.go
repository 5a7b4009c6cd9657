package parallel

import (
	"fmt"
	"time"

	"github.com/dd0wney/cluso-graphsim/pkg/logging"
	"github.com/dd0wney/cluso-graphsim/pkg/metrics"
)

// PairFunc scores one unordered pair of items.
type PairFunc[T any] func(a, b T) (float64, error)

// MatrixOptions configures SymmetricMatrix.
type MatrixOptions struct {
	// Workers bounds the number of pair tasks in flight. Required, >= 1.
	Workers int
	// Metric labels log lines and task metrics.
	Metric  string
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// SymmetricMatrix fills an n x n matrix with fn over every pair (i, k),
// 0 <= i < k < n, enumerated row-major over the upper triangle. Each task
// writes matrix[i][k] and matrix[k][i]; no two tasks share a cell. The
// diagonal is left at 0.
//
// Admission blocks while Workers tasks are running, and the call returns
// only after every task has finished. If any task fails or panics the whole
// batch is discarded: the result is nil and the error wraps ErrTaskFailed.
func SymmetricMatrix[T any](items []T, fn PairFunc[T], opts MatrixOptions) ([][]float64, error) {
	if opts.Workers < 1 {
		return nil, fmt.Errorf("parallel: workers must be >= 1, got %d", opts.Workers)
	}
	logger := logging.OrNop(opts.Logger).With(logging.Component("scheduler"), logging.Metric(opts.Metric))

	n := len(items)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}
	total := n * (n - 1) / 2
	if total == 0 {
		return matrix, nil
	}

	pool, err := NewWorkerPool(opts.Workers, logger)
	if err != nil {
		return nil, err
	}
	progress := logging.NewProgress(logger, "similarity pairs", total)
	logger.Info("starting similarity matrix", logging.Count(n), logging.Workers(opts.Workers))

	for i := 0; i < n-1; i++ {
		for k := i + 1; k < n; k++ {
			i, k := i, k
			pool.Submit(func() error {
				opts.Metrics.TaskStarted()
				defer opts.Metrics.TaskFinished()

				start := time.Now()
				v, err := fn(items[i], items[k])
				if err != nil {
					opts.Metrics.RecordSimilarityTask(opts.Metric, metrics.StatusFailed, time.Since(start))
					return fmt.Errorf("pair (%d,%d): %w", i, k, err)
				}
				opts.Metrics.RecordSimilarityTask(opts.Metric, metrics.StatusSuccess, time.Since(start))

				matrix[i][k] = v
				matrix[k][i] = v
				logger.Debug("pair done", logging.Pair(i, k), logging.Float64("similarity", v))
				progress.Step()
				return nil
			})
		}
	}

	if err := pool.Wait(); err != nil {
		logger.Error("similarity matrix aborted", logging.Error(err))
		return nil, err
	}
	return matrix, nil
}
