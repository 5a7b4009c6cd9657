package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists runs in PostgreSQL. Matrices are stored as their upper
// triangle in similarity_cells.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore connects, verifies the connection and creates the schema.
func NewPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 8
	config.MinConns = 1
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &PGStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return s, nil
}

func (s *PGStore) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS similarity_runs (
		id UUID PRIMARY KEY,
		metric TEXT NOT NULL,
		directedness TEXT NOT NULL,
		workers INTEGER NOT NULL,
		node_id TEXT,
		graphs JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		duration_ms BIGINT NOT NULL,
		metadata JSONB
	);

	CREATE TABLE IF NOT EXISTS similarity_cells (
		run_id UUID NOT NULL REFERENCES similarity_runs(id) ON DELETE CASCADE,
		i INTEGER NOT NULL,
		k INTEGER NOT NULL,
		value DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (run_id, i, k)
	);

	CREATE INDEX IF NOT EXISTS idx_similarity_runs_created_at ON similarity_runs(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_similarity_runs_metric ON similarity_runs(metric);
	`

	_, err := s.pool.Exec(ctx, schema)
	return err
}

// SaveRun stores a run and its matrix in one transaction, replacing any
// earlier version of the same run.
func (s *PGStore) SaveRun(ctx context.Context, run *Run) error {
	graphsJSON, err := json.Marshal(run.Graphs)
	if err != nil {
		return fmt.Errorf("failed to marshal graphs: %w", err)
	}
	metadataJSON, err := json.Marshal(run.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM similarity_runs WHERE id = $1`, run.ID); err != nil {
		return fmt.Errorf("failed to replace run: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO similarity_runs (id, metric, directedness, workers, node_id, graphs, created_at, duration_ms, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		run.ID,
		run.Metric,
		run.Directedness,
		run.Workers,
		run.NodeID,
		graphsJSON,
		run.CreatedAt,
		run.Duration.Milliseconds(),
		metadataJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	cells := run.Cells()
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"similarity_cells"},
		[]string{"run_id", "i", "k", "value"},
		pgx.CopyFromSlice(len(cells), func(idx int) ([]any, error) {
			c := cells[idx]
			return []any{run.ID, c.I, c.K, c.Value}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to insert cells: %w", err)
	}

	return tx.Commit(ctx)
}

// GetRun loads a run with its matrix.
func (s *PGStore) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	run, err := scanRun(s.pool.QueryRow(ctx, `
		SELECT id, metric, directedness, workers, node_id, graphs, created_at, duration_ms, metadata
		FROM similarity_runs
		WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	rows, err := s.pool.Query(ctx, `SELECT i, k, value FROM similarity_cells WHERE run_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get cells: %w", err)
	}
	cells, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Cell, error) {
		var c Cell
		err := row.Scan(&c.I, &c.K, &c.Value)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan cells: %w", err)
	}

	run.SetCells(len(run.Graphs), cells)
	return run, nil
}

// ListRuns returns up to limit runs, newest first, without matrices.
// A limit <= 0 returns all.
func (s *PGStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `
		SELECT id, metric, directedness, workers, node_id, graphs, created_at, duration_ms, metadata
		FROM similarity_runs
		ORDER BY created_at DESC
	`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Ping checks database connectivity
func (s *PGStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}

func scanRun(row pgx.Row) (*Run, error) {
	run := &Run{}
	var (
		nodeID       *string
		graphsJSON   []byte
		metadataJSON []byte
		durationMS   int64
	)
	err := row.Scan(
		&run.ID,
		&run.Metric,
		&run.Directedness,
		&run.Workers,
		&nodeID,
		&graphsJSON,
		&run.CreatedAt,
		&durationMS,
		&metadataJSON,
	)
	if err != nil {
		return nil, err
	}

	if nodeID != nil {
		run.NodeID = *nodeID
	}
	run.Duration = time.Duration(durationMS) * time.Millisecond
	if err := json.Unmarshal(graphsJSON, &run.Graphs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal graphs: %w", err)
	}
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &run.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}
	return run, nil
}
