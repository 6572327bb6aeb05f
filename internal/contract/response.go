package contract

import (
	"encoding/json"
	"net/http"

	"github.com/youngjoone/ai-code-reviewer/internal/core"
)

// ReviewInputEcho mirrors the review request metadata back to the caller.
type ReviewInputEcho struct {
	Filename         string `json:"filename"`
	Language         string `json:"language"`
	ResponseLanguage string `json:"responseLanguage"`
	LineCount        int    `json:"lineCount"`
	FileCount        int    `json:"fileCount"`
	TotalLineCount   int    `json:"totalLineCount"`
}

// ReviewResponse is the success envelope of the review operation.
type ReviewResponse struct {
	OK             bool               `json:"ok"`
	Mode           core.OperationKind `json:"mode"`
	RunID          string             `json:"runId,omitempty"`
	Input          ReviewInputEcho    `json:"input"`
	Summary        string             `json:"summary"`
	Issues         []core.ReviewIssue `json:"issues"`
	RefactoredCode string             `json:"refactoredCode"`
	SuggestedTests []string           `json:"suggestedTests"`
}

// GenerateInputEcho mirrors the generate request metadata back to the caller.
type GenerateInputEcho struct {
	Language         string `json:"language"`
	Style            string `json:"style"`
	ResponseLanguage string `json:"responseLanguage"`
	PromptLength     int    `json:"promptLength"`
}

// GenerateResponse is the success envelope of the generate operation.
type GenerateResponse struct {
	OK      bool               `json:"ok"`
	Mode    core.OperationKind `json:"mode"`
	RunID   string             `json:"runId,omitempty"`
	Input   GenerateInputEcho  `json:"input"`
	Summary string             `json:"summary"`
	Code    string             `json:"code"`
	Notes   []string           `json:"notes"`
}

// ErrorEnvelope is the failure shape of every operation.
type ErrorEnvelope struct {
	OK      bool     `json:"ok"`
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// NewReviewResponse assembles the review envelope from the normalized input
// and the validated model result.
func NewReviewResponse(runID string, input core.ReviewInput, result *core.ReviewResult) *ReviewResponse {
	primary := input.Primary()
	return &ReviewResponse{
		OK:    true,
		Mode:  core.OperationReview,
		RunID: runID,
		Input: ReviewInputEcho{
			Filename:         primary.Filename,
			Language:         primary.Language,
			ResponseLanguage: string(input.ResponseLanguage),
			LineCount:        primary.LineCount,
			FileCount:        len(input.Files),
			TotalLineCount:   input.TotalLineCount(),
		},
		Summary:        result.Summary,
		Issues:         result.Issues,
		RefactoredCode: result.RefactoredCode,
		SuggestedTests: result.SuggestedTests,
	}
}

// NewGenerateResponse assembles the generate envelope from the normalized
// input and the validated model result.
func NewGenerateResponse(runID string, input core.GenerateInput, result *core.GenerateResult) *GenerateResponse {
	return &GenerateResponse{
		OK:    true,
		Mode:  core.OperationGenerate,
		RunID: runID,
		Input: GenerateInputEcho{
			Language:         string(input.Language),
			Style:            string(input.Style),
			ResponseLanguage: string(input.ResponseLanguage),
			PromptLength:     len(input.Prompt),
		},
		Summary: result.Summary,
		Code:    result.Code,
		Notes:   result.Notes,
	}
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an ErrorEnvelope with the given status code.
func WriteError(w http.ResponseWriter, status int, message string, details ...string) {
	WriteJSON(w, status, ErrorEnvelope{OK: false, Error: message, Details: details})
}
