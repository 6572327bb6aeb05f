package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/youngjoone/ai-code-reviewer/internal/contract"
	"github.com/youngjoone/ai-code-reviewer/internal/storage"
)

// RunsHandler exposes persisted run records.
type RunsHandler struct {
	store  storage.RunStore
	logger *slog.Logger
}

// NewRunsHandler creates the handler for run lookups.
func NewRunsHandler(store storage.RunStore, logger *slog.Logger) *RunsHandler {
	return &RunsHandler{store: store, logger: logger}
}

// GetRun handles GET /api/v1/runs/{runID}.
func (h *RunsHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")

	run, err := h.store.GetRun(r.Context(), runID)
	if err != nil {
		if errors.Is(err, storage.ErrRunNotFound) {
			contract.WriteError(w, http.StatusNotFound, "run not found")
			return
		}
		h.logger.Error("failed to load run", "run_id", runID, "error", err)
		contract.WriteError(w, http.StatusInternalServerError, "failed to load run")
		return
	}
	contract.WriteJSON(w, http.StatusOK, run)
}

// ListThreadRuns handles GET /api/v1/threads/{threadID}/runs. Runs are
// ordered by creation time, newest first.
func (h *RunsHandler) ListThreadRuns(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadID")

	runs, err := h.store.ListRunsByThread(r.Context(), threadID)
	if err != nil {
		h.logger.Error("failed to list runs", "thread_id", threadID, "error", err)
		contract.WriteError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	contract.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "runs": runs})
}
