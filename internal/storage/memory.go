package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/youngjoone/ai-code-reviewer/internal/core"
)

// MemoryStore is an in-process RunStore. The CLI uses it so one-shot
// operations need no database; tests use it to observe run lifecycles.
type MemoryStore struct {
	mu   sync.Mutex
	runs map[string]core.Run
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]core.Run)}
}

// CreateRun records a new run in the running state.
func (s *MemoryStore) CreateRun(_ context.Context, run *core.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.ID]; exists {
		return fmt.Errorf("run %s already exists", run.ID)
	}
	now := time.Now().UTC()
	run.Status = core.RunRunning
	run.CreatedAt = now
	run.UpdatedAt = now
	s.runs[run.ID] = *run
	return nil
}

// FinalizeRun transitions a running run to a terminal status exactly once.
func (s *MemoryStore) FinalizeRun(_ context.Context, id string, status core.RunStatus, result json.RawMessage, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[id]
	if !ok {
		return fmt.Errorf("run %s: %w", id, ErrRunNotFound)
	}
	if err := run.ValidateTransition(status); err != nil {
		return err
	}
	run.Status = status
	run.Result = result
	run.Error = errMsg
	run.UpdatedAt = time.Now().UTC()
	s.runs[id] = run
	return nil
}

// GetRun fetches a run by id.
func (s *MemoryStore) GetRun(_ context.Context, id string) (*core.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("run %s: %w", id, ErrRunNotFound)
	}
	return &run, nil
}

// ListRunsByThread returns the runs of a thread, newest first.
func (s *MemoryStore) ListRunsByThread(_ context.Context, threadID string) ([]core.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var runs []core.Run
	for _, run := range s.runs {
		if run.ThreadID == threadID {
			runs = append(runs, run)
		}
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}
