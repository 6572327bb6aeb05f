// Package storage persists run records. The Postgres implementation backs
// the HTTP service; the in-memory implementation backs the CLI and tests.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	// Postgres driver.
	_ "github.com/lib/pq"

	"github.com/youngjoone/ai-code-reviewer/internal/core"
)

//go:generate mockgen -destination=../../mocks/mock_run_store.go -package=mocks . RunStore

// ErrRunNotFound is returned when no run exists for the given id, or when a
// finalization targets a run that is not in the running state.
var ErrRunNotFound = errors.New("run not found")

// RunStore is the persistence contract for run records. A run is created as
// running and finalized to exactly one terminal status.
type RunStore interface {
	CreateRun(ctx context.Context, run *core.Run) error
	FinalizeRun(ctx context.Context, id string, status core.RunStatus, result json.RawMessage, errMsg string) error
	GetRun(ctx context.Context, id string) (*core.Run, error)
	ListRunsByThread(ctx context.Context, threadID string) ([]core.Run, error)
}

type postgresStore struct {
	db *sqlx.DB
}

// NewStore creates a Postgres-backed RunStore.
func NewStore(db *sqlx.DB) RunStore {
	return &postgresStore{db: db}
}

// CreateRun inserts a new run record in the running state.
func (s *postgresStore) CreateRun(ctx context.Context, run *core.Run) error {
	now := time.Now().UTC()
	run.Status = core.RunRunning
	run.CreatedAt = now
	run.UpdatedAt = now

	query := `INSERT INTO runs (id, thread_id, operation, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.db.ExecContext(ctx, query, run.ID, nullable(run.ThreadID), run.Operation, run.Status, run.CreatedAt, run.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}
	return nil
}

// FinalizeRun moves a running run to a terminal status exactly once. The
// guard on the current status makes a second finalization fail rather than
// overwrite the first.
func (s *postgresStore) FinalizeRun(ctx context.Context, id string, status core.RunStatus, result json.RawMessage, errMsg string) error {
	if !status.Terminal() {
		return fmt.Errorf("status %s is not a terminal run status", status)
	}

	query := `UPDATE runs
	          SET status = $2, result = $3, error = $4, updated_at = $5
	          WHERE id = $1 AND status = $6`
	res, err := s.db.ExecContext(ctx, query, id, status, nullableRaw(result), nullable(errMsg), time.Now().UTC(), core.RunRunning)
	if err != nil {
		return fmt.Errorf("failed to finalize run %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to finalize run %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("run %s is not running: %w", id, ErrRunNotFound)
	}
	return nil
}

// GetRun fetches a single run by id.
func (s *postgresStore) GetRun(ctx context.Context, id string) (*core.Run, error) {
	query := `SELECT id, thread_id, operation, status, result, error, created_at, updated_at
	          FROM runs WHERE id = $1`

	var row runRow
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	return row.toRun(), nil
}

// ListRunsByThread returns the runs of a thread, newest first.
func (s *postgresStore) ListRunsByThread(ctx context.Context, threadID string) ([]core.Run, error) {
	query := `SELECT id, thread_id, operation, status, result, error, created_at, updated_at
	          FROM runs WHERE thread_id = $1 ORDER BY created_at DESC`

	var rows []runRow
	if err := s.db.SelectContext(ctx, &rows, query, threadID); err != nil {
		return nil, fmt.Errorf("failed to list runs for thread %s: %w", threadID, err)
	}

	runs := make([]core.Run, 0, len(rows))
	for _, row := range rows {
		runs = append(runs, *row.toRun())
	}
	return runs, nil
}

// runRow maps the nullable columns of the runs table.
type runRow struct {
	ID        string         `db:"id"`
	ThreadID  sql.NullString `db:"thread_id"`
	Operation string         `db:"operation"`
	Status    string         `db:"status"`
	Result    []byte         `db:"result"`
	Error     sql.NullString `db:"error"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (r runRow) toRun() *core.Run {
	return &core.Run{
		ID:        r.ID,
		ThreadID:  r.ThreadID.String,
		Operation: core.OperationKind(r.Operation),
		Status:    core.RunStatus(r.Status),
		Result:    r.Result,
		Error:     r.Error.String,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullableRaw(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
