// Package service orchestrates the two public operations. Each invocation
// validates the caller's request, renders the prompt, drives the resilient
// provider call, validates the model output, and records exactly one run.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/youngjoone/ai-code-reviewer/internal/contract"
	"github.com/youngjoone/ai-code-reviewer/internal/core"
	"github.com/youngjoone/ai-code-reviewer/internal/llm"
	"github.com/youngjoone/ai-code-reviewer/internal/prompt"
	"github.com/youngjoone/ai-code-reviewer/internal/storage"
)

// Operations is the inbound contract of the orchestrator, implemented by
// Service and mocked in handler tests.
type Operations interface {
	Review(ctx context.Context, req contract.ReviewRequest) (*contract.ReviewResponse, error)
	Generate(ctx context.Context, req contract.GenerateRequest) (*contract.GenerateResponse, error)
}

// Service wires the pipeline stages together. The provider client is
// injected explicitly; its lifetime is owned by the caller, not cached at
// module level.
type Service struct {
	client  llm.Client
	retry   llm.RetryPolicy
	prompts *prompt.Builder
	schemas *contract.ResultSchemas
	store   storage.RunStore
	logger  *slog.Logger
}

// New constructs the orchestrator from its collaborators.
func New(client llm.Client, retry llm.RetryPolicy, prompts *prompt.Builder, schemas *contract.ResultSchemas, store storage.RunStore, logger *slog.Logger) *Service {
	return &Service{
		client:  client,
		retry:   retry,
		prompts: prompts,
		schemas: schemas,
		store:   store,
		logger:  logger,
	}
}

// Review runs the review operation. Request-validation failures return a
// *core.ValidationError before any provider call or run record; every
// post-validation failure finalizes the run to failed or cancelled.
func (s *Service) Review(ctx context.Context, req contract.ReviewRequest) (*contract.ReviewResponse, error) {
	input, err := contract.NormalizeReview(req)
	if err != nil {
		return nil, err
	}

	run, err := s.beginRun(ctx, req.ThreadID, core.OperationReview)
	if err != nil {
		return nil, err
	}

	promptText, err := s.prompts.Review(input)
	if err != nil {
		s.finalizeFailure(ctx, run.ID, err)
		return nil, fmt.Errorf("failed to render review prompt: %w", err)
	}

	var result *core.ReviewResult
	err = s.retry.Do(ctx, s.logger, func(ctx context.Context) error {
		text, callErr := s.client.GenerateContent(ctx, promptText)
		if callErr != nil {
			return callErr
		}
		decoded, decodeErr := s.schemas.DecodeReviewResult(text)
		if decodeErr != nil {
			return decodeErr
		}
		result = decoded
		return nil
	})
	if err != nil {
		s.finalizeFailure(ctx, run.ID, err)
		return nil, err
	}

	s.finalizeSuccess(ctx, run.ID, result)
	s.logger.Info("review operation completed",
		"run_id", run.ID,
		"files", len(input.Files),
		"issues", len(result.Issues),
	)
	return contract.NewReviewResponse(run.ID, input, result), nil
}

// Generate runs the generate operation with the same lifecycle as Review.
func (s *Service) Generate(ctx context.Context, req contract.GenerateRequest) (*contract.GenerateResponse, error) {
	input, err := contract.NormalizeGenerate(req)
	if err != nil {
		return nil, err
	}

	run, err := s.beginRun(ctx, req.ThreadID, core.OperationGenerate)
	if err != nil {
		return nil, err
	}

	promptText, err := s.prompts.Generate(input)
	if err != nil {
		s.finalizeFailure(ctx, run.ID, err)
		return nil, fmt.Errorf("failed to render generation prompt: %w", err)
	}

	var result *core.GenerateResult
	err = s.retry.Do(ctx, s.logger, func(ctx context.Context) error {
		text, callErr := s.client.GenerateContent(ctx, promptText)
		if callErr != nil {
			return callErr
		}
		decoded, decodeErr := s.schemas.DecodeGenerateResult(text)
		if decodeErr != nil {
			return decodeErr
		}
		result = decoded
		return nil
	})
	if err != nil {
		s.finalizeFailure(ctx, run.ID, err)
		return nil, err
	}

	s.finalizeSuccess(ctx, run.ID, result)
	s.logger.Info("generate operation completed",
		"run_id", run.ID,
		"language", input.Language,
		"style", input.Style,
	)
	return contract.NewGenerateResponse(run.ID, input, result), nil
}

func (s *Service) beginRun(ctx context.Context, threadID string, kind core.OperationKind) (*core.Run, error) {
	run := &core.Run{
		ID:        uuid.NewString(),
		ThreadID:  threadID,
		Operation: kind,
	}
	if err := s.store.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create run record: %w", err)
	}
	return run, nil
}

// finalizeSuccess stores the validated result on the run. A storage fault
// at this point does not fail the operation the caller already paid for; it
// is logged and the response still returned.
func (s *Service) finalizeSuccess(ctx context.Context, runID string, result any) {
	raw, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("failed to encode run result", "run_id", runID, "error", err)
		raw = nil
	}
	if err := s.store.FinalizeRun(context.WithoutCancel(ctx), runID, core.RunSuccess, raw, ""); err != nil {
		s.logger.Error("failed to finalize run", "run_id", runID, "status", core.RunSuccess, "error", err)
	}
}

// finalizeFailure moves the run to failed or cancelled. The store call uses
// a cancellation-free context so a caller abort cannot leave the run stuck
// in running.
func (s *Service) finalizeFailure(ctx context.Context, runID string, cause error) {
	status := core.RunFailed
	if core.IsCancelled(cause) {
		status = core.RunCancelled
	}
	if err := s.store.FinalizeRun(context.WithoutCancel(ctx), runID, status, nil, cause.Error()); err != nil {
		s.logger.Error("failed to finalize run", "run_id", runID, "status", status, "error", err)
	}
}
