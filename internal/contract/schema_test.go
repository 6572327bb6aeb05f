package contract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youngjoone/ai-code-reviewer/internal/core"
)

func loadSchemas(t *testing.T) *ResultSchemas {
	t.Helper()
	schemas, err := LoadResultSchemas()
	require.NoError(t, err)
	return schemas
}

func TestDecodeReviewResult_Valid(t *testing.T) {
	schemas := loadSchemas(t)

	result, err := schemas.DecodeReviewResult(`{
		"summary": "looks fine",
		"issues": [
			{"id": "i1", "severity": "low", "title": "naming", "message": "rename x", "line": 3}
		],
		"refactoredCode": "package main",
		"suggestedTests": ["TestMain"]
	}`)
	require.NoError(t, err)

	assert.Equal(t, "looks fine", result.Summary)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, core.SeverityLow, result.Issues[0].Severity)
	assert.Equal(t, 3, result.Issues[0].Line)
	assert.Equal(t, []string{"TestMain"}, result.SuggestedTests)
}

func TestDecodeReviewResult_EmptyCollectionsNotNil(t *testing.T) {
	schemas := loadSchemas(t)

	result, err := schemas.DecodeReviewResult(`{"summary":"s","issues":[],"refactoredCode":"","suggestedTests":[]}`)
	require.NoError(t, err)
	assert.NotNil(t, result.Issues)
	assert.NotNil(t, result.SuggestedTests)
}

func TestDecodeReviewResult_Failures(t *testing.T) {
	schemas := loadSchemas(t)

	tests := []struct {
		name      string
		text      string
		wantClass core.FailureClass
		wantVio   string
	}{
		{
			name:      "not JSON at all",
			text:      "I am sorry, I cannot help with that.",
			wantClass: core.FailureOutputFormat,
		},
		{
			name:      "trailing garbage",
			text:      `{"summary":"s","issues":[],"refactoredCode":"","suggestedTests":[]} trailing`,
			wantClass: core.FailureOutputFormat,
		},
		{
			name:      "valid JSON wrong shape",
			text:      `{"foo": 1}`,
			wantClass: core.FailureOutputSchema,
			wantVio:   "root:",
		},
		{
			name:      "bad severity",
			text:      `{"summary":"s","issues":[{"id":"i1","severity":"fatal","title":"t","message":"m","line":1}],"refactoredCode":"","suggestedTests":[]}`,
			wantClass: core.FailureOutputSchema,
			wantVio:   "issues.0.severity",
		},
		{
			name:      "line not positive",
			text:      `{"summary":"s","issues":[{"id":"i1","severity":"low","title":"t","message":"m","line":0}],"refactoredCode":"","suggestedTests":[]}`,
			wantClass: core.FailureOutputSchema,
			wantVio:   "issues.0.line",
		},
		{
			name:      "duplicate issue ids",
			text:      `{"summary":"s","issues":[{"id":"i1","severity":"low","title":"t","message":"m","line":1},{"id":"i1","severity":"high","title":"t2","message":"m2","line":2}],"refactoredCode":"","suggestedTests":[]}`,
			wantClass: core.FailureOutputSchema,
			wantVio:   "issues.1.id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schemas.DecodeReviewResult(tt.text)
			require.Error(t, err)

			var pe *core.PipelineError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.wantClass, pe.Class)
			assert.False(t, pe.Retryable, "output failures must be terminal")

			if tt.wantVio != "" {
				found := false
				for _, d := range pe.Details {
					if strings.Contains(d, tt.wantVio) {
						found = true
					}
				}
				assert.True(t, found, "expected detail containing %q, got %v", tt.wantVio, pe.Details)
			}
		})
	}
}

func TestDecodeGenerateResult(t *testing.T) {
	schemas := loadSchemas(t)

	t.Run("valid", func(t *testing.T) {
		result, err := schemas.DecodeGenerateResult(`{"summary":"ok","code":"def f(s): return s[::-1]","notes":[]}`)
		require.NoError(t, err)
		assert.Equal(t, "ok", result.Summary)
		assert.Equal(t, "def f(s): return s[::-1]", result.Code)
		assert.NotNil(t, result.Notes)
		assert.Empty(t, result.Notes)
	})

	t.Run("missing code field", func(t *testing.T) {
		_, err := schemas.DecodeGenerateResult(`{"summary":"ok","notes":[]}`)
		var pe *core.PipelineError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, core.FailureOutputSchema, pe.Class)
	})

	t.Run("notes with wrong element type", func(t *testing.T) {
		_, err := schemas.DecodeGenerateResult(`{"summary":"ok","code":"x","notes":[1,2]}`)
		var pe *core.PipelineError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, core.FailureOutputSchema, pe.Class)
	})
}

func TestRenderViolation(t *testing.T) {
	assert.Equal(t, "root: boom", RenderViolation("", "boom"))
	assert.Equal(t, "issues.0.line: bad", RenderViolation("/issues/0/line", "bad"))
}

func TestSchemaDocsExposed(t *testing.T) {
	schemas := loadSchemas(t)
	assert.Contains(t, schemas.ReviewDoc(), `"refactoredCode"`)
	assert.Contains(t, schemas.ReviewDoc(), `"suggestedTests"`)
	assert.Contains(t, schemas.GenerateDoc(), `"notes"`)
}
