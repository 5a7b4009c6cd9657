package parallel

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/dd0wney/cluso-graphsim/pkg/logging"
)

// ErrTooManyWorkers is returned when the worker count exceeds the maximum allowed.
var ErrTooManyWorkers = errors.New("worker count exceeds maximum")

// ErrTaskFailed wraps the first error or recovered panic of a pool task.
// A pool that has seen a failure runs no further tasks.
var ErrTaskFailed = errors.New("parallel task failed")

// MaxWorkers is the maximum number of workers allowed in a pool.
const MaxWorkers = math.MaxInt32

// WorkerPool runs tasks on a fixed set of worker goroutines. The task
// queue is unbuffered: Submit blocks until a worker is free, so at most
// `workers` tasks are ever in flight.
type WorkerPool struct {
	workers   int
	taskQueue chan func() error
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // Protects taskQueue from concurrent close during send
	closed    bool         // Protected by mu
	logger    logging.Logger

	errMu sync.Mutex
	err   error
}

// NewWorkerPool creates a new worker pool with specified number of workers.
// Non-positive counts become 1. A nil logger discards output.
func NewWorkerPool(workers int, logger logging.Logger) (*WorkerPool, error) {
	if workers <= 0 {
		workers = 1
	}
	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxWorkers)
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func() error),
		logger:    logging.OrNop(logger),
	}

	pool.start()
	return pool, nil
}

// Workers returns the number of worker goroutines.
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

func (wp *WorkerPool) start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		if wp.Err() != nil {
			continue
		}
		if err := wp.run(task); err != nil {
			wp.fail(err)
		}
	}
}

func (wp *WorkerPool) run(task func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return task()
}

func (wp *WorkerPool) fail(err error) {
	wp.errMu.Lock()
	defer wp.errMu.Unlock()
	if wp.err != nil {
		return
	}
	wp.err = fmt.Errorf("%w: %w", ErrTaskFailed, err)
	wp.logger.Error("worker task failed", logging.Error(err))
}

// Err returns the first task failure, if any.
func (wp *WorkerPool) Err() error {
	wp.errMu.Lock()
	defer wp.errMu.Unlock()
	return wp.err
}

// Submit hands a task to an idle worker, blocking while all workers are
// busy. Returns false if the pool is closed.
func (wp *WorkerPool) Submit(task func() error) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return false
	}
	wp.taskQueue <- task
	return true
}

// Close stops accepting tasks and waits for running ones to finish.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// Wait closes the pool, drains every submitted task and returns the first
// failure wrapped in ErrTaskFailed.
func (wp *WorkerPool) Wait() error {
	wp.Close()
	return wp.Err()
}
