package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youngjoone/ai-code-reviewer/internal/contract"
	"github.com/youngjoone/ai-code-reviewer/internal/core"
)

func newBuilder(t *testing.T) *Builder {
	t.Helper()
	schemas, err := contract.LoadResultSchemas()
	require.NoError(t, err)
	builder, err := NewBuilder(schemas)
	require.NoError(t, err)
	return builder
}

func sampleReviewInput() core.ReviewInput {
	return core.ReviewInput{
		Files: []core.ReviewFile{
			{Filename: "main.go", Language: "go", Code: "package main\n", LineCount: 2},
			{Filename: "util.ts", Language: "typescript", Code: "export {};", LineCount: 1},
		},
		ResponseLanguage: core.ResponseLanguageKorean,
	}
}

func TestReviewPrompt_Deterministic(t *testing.T) {
	builder := newBuilder(t)
	input := sampleReviewInput()

	first, err := builder.Review(input)
	require.NoError(t, err)
	second, err := builder.Review(input)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same input must render byte-identical prompts")
}

func TestReviewPrompt_Content(t *testing.T) {
	builder := newBuilder(t)

	text, err := builder.Review(sampleReviewInput())
	require.NoError(t, err)

	assert.Contains(t, text, "Respond with valid JSON only.")
	assert.Contains(t, text, "Write all natural-language fields in Korean.")
	assert.Contains(t, text, "--- file: main.go (go) ---")
	assert.Contains(t, text, "--- file: util.ts (typescript) ---")
	assert.Contains(t, text, "package main")
	// The schema document embedded in the prompt is the validator's schema.
	assert.Contains(t, text, `"refactoredCode"`)
	assert.Contains(t, text, `"suggestedTests"`)
}

func TestReviewPrompt_EnglishDirective(t *testing.T) {
	builder := newBuilder(t)
	input := sampleReviewInput()
	input.ResponseLanguage = core.ResponseLanguageEnglish

	text, err := builder.Review(input)
	require.NoError(t, err)

	assert.Contains(t, text, "Write all natural-language fields in English.")
	assert.NotContains(t, text, "Korean")
}

func TestGeneratePrompt(t *testing.T) {
	builder := newBuilder(t)
	input := core.GenerateInput{
		Prompt:           "reverse a string",
		Language:         core.LanguagePython,
		Style:            core.StyleClean,
		ResponseLanguage: core.ResponseLanguageKorean,
	}

	first, err := builder.Generate(input)
	require.NoError(t, err)
	second, err := builder.Generate(input)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Contains(t, first, "Target language: python")
	assert.Contains(t, first, "Code style: clean")
	assert.Contains(t, first, "reverse a string")
	assert.Contains(t, first, `"notes"`)
	assert.Contains(t, first, "Write all natural-language fields in Korean.")
}
