package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
)

const runsFile = "runs.json"

// FileStore keeps runs in a JSON file under a data directory.
type FileStore struct {
	dataDir string
	runs    map[uuid.UUID]*Run
	mu      sync.RWMutex
}

// NewFileStore opens or creates a file store in dataDir.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	s := &FileStore{
		dataDir: dataDir,
		runs:    make(map[uuid.UUID]*Run),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// SaveRun stores or replaces a run
func (s *FileStore) SaveRun(_ context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = run
	return s.save()
}

// GetRun retrieves a run by ID
func (s *FileStore) GetRun(_ context.Context, id uuid.UUID) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, nil
}

// ListRuns returns up to limit runs, newest first. A limit <= 0 returns all.
func (s *FileStore) ListRuns(_ context.Context, limit int) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]*Run, 0, len(s.runs))
	for _, run := range s.runs {
		summary := *run
		summary.Matrix = nil
		runs = append(runs, &summary)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Ping checks that the data directory is still present
func (s *FileStore) Ping(_ context.Context) error {
	info, err := os.Stat(s.dataDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dataDir)
	}
	return nil
}

// Close is a no-op; every save is written through.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.runs, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(s.dataDir, runsFile)
	return os.WriteFile(path, data, 0600)
}

func (s *FileStore) load() error {
	path := filepath.Join(s.dataDir, runsFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &s.runs)
}
