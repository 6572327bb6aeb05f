package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// RunStatus is the lifecycle state of a persisted run. A run transitions
// running -> {success | failed | cancelled} exactly once; no other
// transitions are valid.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunSuccess   RunStatus = "success"
	RunFailed    RunStatus = "failed"
	RunCancelled RunStatus = "cancelled"
)

// Terminal reports whether the status is a final state.
func (s RunStatus) Terminal() bool {
	return s == RunSuccess || s == RunFailed || s == RunCancelled
}

// Run is one persisted attempt at executing an operation within a thread.
type Run struct {
	ID        string          `db:"id" json:"id"`
	ThreadID  string          `db:"thread_id" json:"threadId,omitempty"`
	Operation OperationKind   `db:"operation" json:"operation"`
	Status    RunStatus       `db:"status" json:"status"`
	Result    json.RawMessage `db:"result" json:"result,omitempty"`
	Error     string          `db:"error" json:"error,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// ValidateTransition checks that moving from the run's current status to
// next is a legal lifecycle step.
func (r *Run) ValidateTransition(next RunStatus) error {
	if r.Status != RunRunning {
		return fmt.Errorf("run %s is already finalized as %s", r.ID, r.Status)
	}
	if !next.Terminal() {
		return fmt.Errorf("run %s cannot transition from running to %s", r.ID, next)
	}
	return nil
}
