package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youngjoone/ai-code-reviewer/internal/core"
)

func createRun(t *testing.T, store *MemoryStore, id, threadID string) *core.Run {
	t.Helper()
	run := &core.Run{ID: id, ThreadID: threadID, Operation: core.OperationReview}
	require.NoError(t, store.CreateRun(context.Background(), run))
	return run
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	createRun(t, store, "run-1", "thread-1")

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, core.RunRunning, got.Status)
	assert.False(t, got.CreatedAt.IsZero())

	result := json.RawMessage(`{"summary":"ok"}`)
	require.NoError(t, store.FinalizeRun(ctx, "run-1", core.RunSuccess, result, ""))

	got, err = store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, core.RunSuccess, got.Status)
	assert.JSONEq(t, `{"summary":"ok"}`, string(got.Result))
}

func TestMemoryStore_FinalizeExactlyOnce(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	createRun(t, store, "run-1", "thread-1")
	require.NoError(t, store.FinalizeRun(ctx, "run-1", core.RunFailed, nil, "provider retries exhausted"))

	err := store.FinalizeRun(ctx, "run-1", core.RunSuccess, nil, "")
	require.Error(t, err, "a terminal run must reject a second finalization")

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, core.RunFailed, got.Status)
	assert.Equal(t, "provider retries exhausted", got.Error)
}

func TestMemoryStore_DuplicateCreateRejected(t *testing.T) {
	store := NewMemoryStore()
	createRun(t, store, "run-1", "thread-1")

	err := store.CreateRun(context.Background(), &core.Run{ID: "run-1", ThreadID: "thread-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestMemoryStore_GetRunNotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetRun(context.Background(), "missing")
	require.ErrorIs(t, err, ErrRunNotFound)

	err = store.FinalizeRun(context.Background(), "missing", core.RunFailed, nil, "x")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestMemoryStore_ListRunsByThreadNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i, id := range []string{"run-a", "run-b", "run-c"} {
		run := &core.Run{ID: id, ThreadID: "thread-1", Operation: core.OperationGenerate}
		require.NoError(t, store.CreateRun(ctx, run))
		// Nudge the clock so ordering is deterministic.
		store.mu.Lock()
		stored := store.runs[id]
		stored.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Second)
		store.runs[id] = stored
		store.mu.Unlock()
	}
	createRun(t, store, "run-other", "thread-2")

	runs, err := store.ListRunsByThread(ctx, "thread-1")
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "run-c", runs[0].ID)
	assert.Equal(t, "run-b", runs[1].ID)
	assert.Equal(t, "run-a", runs[2].ID)

	empty, err := store.ListRunsByThread(ctx, "thread-none")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
