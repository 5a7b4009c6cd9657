// Package store persists similarity runs: the parameters of a batch
// comparison and its resulting matrix.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("run not found")

// Run is one similarity matrix computation.
type Run struct {
	ID           uuid.UUID         `json:"id"`
	Metric       string            `json:"metric"`
	Directedness string            `json:"directedness"`
	Workers      int               `json:"workers"`
	NodeID       string            `json:"node_id,omitempty"`
	Graphs       []string          `json:"graphs"`
	Matrix       [][]float64       `json:"matrix"`
	CreatedAt    time.Time         `json:"created_at"`
	Duration     time.Duration     `json:"duration"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// NewRun creates a run with a fresh id and creation time.
func NewRun(metric, directedness string, workers int, graphs []string) *Run {
	return &Run{
		ID:           uuid.New(),
		Metric:       metric,
		Directedness: directedness,
		Workers:      workers,
		Graphs:       graphs,
		CreatedAt:    time.Now().UTC(),
	}
}

// Cell is one upper-triangle matrix entry.
type Cell struct {
	I, K  int
	Value float64
}

// Cells returns the upper triangle of the run's matrix in row-major order.
func (r *Run) Cells() []Cell {
	var cells []Cell
	for i := range r.Matrix {
		for k := i + 1; k < len(r.Matrix[i]); k++ {
			cells = append(cells, Cell{I: i, K: k, Value: r.Matrix[i][k]})
		}
	}
	return cells
}

// SetCells rebuilds a symmetric n x n matrix from upper-triangle cells.
func (r *Run) SetCells(n int, cells []Cell) {
	r.Matrix = make([][]float64, n)
	for i := range r.Matrix {
		r.Matrix[i] = make([]float64, n)
	}
	for _, c := range cells {
		r.Matrix[c.I][c.K] = c.Value
		r.Matrix[c.K][c.I] = c.Value
	}
}

// Store persists runs.
type Store interface {
	SaveRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id uuid.UUID) (*Run, error)
	// ListRuns returns runs newest first, without matrices.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
	Ping(ctx context.Context) error
	Close() error
}
