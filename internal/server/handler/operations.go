// Package handler provides the HTTP handlers of the service.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/youngjoone/ai-code-reviewer/internal/contract"
	"github.com/youngjoone/ai-code-reviewer/internal/core"
	"github.com/youngjoone/ai-code-reviewer/internal/service"
)

// OperationsHandler serves the review and generate endpoints.
type OperationsHandler struct {
	ops    service.Operations
	logger *slog.Logger
}

// NewOperationsHandler creates the handler for the two operations.
func NewOperationsHandler(ops service.Operations, logger *slog.Logger) *OperationsHandler {
	return &OperationsHandler{ops: ops, logger: logger}
}

// Review handles POST /api/v1/review.
func (h *OperationsHandler) Review(w http.ResponseWriter, r *http.Request) {
	var req contract.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		contract.WriteError(w, http.StatusBadRequest, "invalid request body", "root: body must be valid JSON")
		return
	}

	resp, err := h.ops.Review(r.Context(), req)
	if err != nil {
		h.writeOperationError(w, core.OperationReview, err)
		return
	}
	contract.WriteJSON(w, http.StatusOK, resp)
}

// Generate handles POST /api/v1/generate.
func (h *OperationsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req contract.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		contract.WriteError(w, http.StatusBadRequest, "invalid request body", "root: body must be valid JSON")
		return
	}

	resp, err := h.ops.Generate(r.Context(), req)
	if err != nil {
		h.writeOperationError(w, core.OperationGenerate, err)
		return
	}
	contract.WriteJSON(w, http.StatusOK, resp)
}

// writeOperationError maps the failure taxonomy onto HTTP classes:
// request-validation failures are the caller's fault (400), everything
// after validation is a provider/pipeline failure (502).
func (h *OperationsHandler) writeOperationError(w http.ResponseWriter, kind core.OperationKind, err error) {
	var ve *core.ValidationError
	if errors.As(err, &ve) {
		contract.WriteError(w, http.StatusBadRequest, "invalid request", ve.Violations...)
		return
	}

	var pe *core.PipelineError
	if errors.As(err, &pe) {
		h.logger.Error("operation failed",
			"operation", kind,
			"class", pe.Class.String(),
			"error", pe.Message,
		)
		details := pe.Details
		if len(details) == 0 {
			details = []string{pe.Message}
		}
		contract.WriteError(w, http.StatusBadGateway, classMessage(pe.Class), details...)
		return
	}

	h.logger.Error("operation failed unexpectedly", "operation", kind, "error", err)
	contract.WriteError(w, http.StatusInternalServerError, "internal error", err.Error())
}

func classMessage(class core.FailureClass) string {
	switch class {
	case core.FailureCancelled:
		return "operation cancelled"
	case core.FailureOutputFormat:
		return "model produced non-JSON output"
	case core.FailureOutputSchema:
		return "model output failed schema validation"
	case core.FailureRetriesExhausted:
		return "provider retries exhausted"
	default:
		return "provider request failed"
	}
}
