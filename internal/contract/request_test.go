package contract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youngjoone/ai-code-reviewer/internal/core"
)

func TestNormalizeReview_MultiFile(t *testing.T) {
	input, err := NormalizeReview(ReviewRequest{
		Files: []ReviewFilePayload{
			{Filename: "main.go", Code: "package main\nfunc main() {}\n"},
			{Filename: "util.ts", Code: "export const x = 1;"},
		},
		ResponseLanguage: "en",
	})
	require.NoError(t, err)

	require.Len(t, input.Files, 2)
	assert.Equal(t, "main.go", input.Files[0].Filename)
	assert.Equal(t, "go", input.Files[0].Language)
	assert.Equal(t, 3, input.Files[0].LineCount)
	assert.Equal(t, "typescript", input.Files[1].Language)
	assert.Equal(t, 1, input.Files[1].LineCount)
	assert.Equal(t, core.ResponseLanguageEnglish, input.ResponseLanguage)
	assert.Equal(t, 4, input.TotalLineCount())
}

func TestNormalizeReview_LegacySingleFile(t *testing.T) {
	input, err := NormalizeReview(ReviewRequest{
		Code:     "print('hi')",
		Filename: "a.py",
	})
	require.NoError(t, err)

	require.Len(t, input.Files, 1)
	assert.Equal(t, "a.py", input.Files[0].Filename)
	assert.Equal(t, "python", input.Files[0].Language)
	assert.Equal(t, core.ResponseLanguageKorean, input.ResponseLanguage)
}

func TestNormalizeReview_Violations(t *testing.T) {
	hugeFiles := make([]ReviewFilePayload, MaxReviewFiles+1)
	for i := range hugeFiles {
		hugeFiles[i] = ReviewFilePayload{Filename: "f.go", Code: "x"}
	}

	tests := []struct {
		name    string
		req     ReviewRequest
		wantVio string
	}{
		{
			name:    "empty request",
			req:     ReviewRequest{},
			wantVio: "root: either files or code is required",
		},
		{
			name:    "legacy empty code",
			req:     ReviewRequest{Code: "", Filename: "a.ts"},
			wantVio: "code: must not be empty",
		},
		{
			name:    "empty code in file list",
			req:     ReviewRequest{Files: []ReviewFilePayload{{Filename: "a.go", Code: ""}}},
			wantVio: "files.0.code: must not be empty",
		},
		{
			name:    "too many files",
			req:     ReviewRequest{Files: hugeFiles},
			wantVio: "files: at most 12 files are allowed",
		},
		{
			name: "aggregate size over limit",
			req: ReviewRequest{Files: []ReviewFilePayload{
				{Filename: "big.go", Code: strings.Repeat("a", MaxReviewTotalChars+1)},
			}},
			wantVio: "files: total code size exceeds 80000 characters",
		},
		{
			name: "bad response language",
			req: ReviewRequest{
				Files:            []ReviewFilePayload{{Filename: "a.go", Code: "x"}},
				ResponseLanguage: "fr",
			},
			wantVio: "responseLanguage:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeReview(tt.req)
			require.Error(t, err)

			var ve *core.ValidationError
			require.ErrorAs(t, err, &ve)

			found := false
			for _, vio := range ve.Violations {
				if strings.Contains(vio, tt.wantVio) {
					found = true
				}
			}
			assert.True(t, found, "expected violation containing %q, got %v", tt.wantVio, ve.Violations)
		})
	}
}

func TestNormalizeReview_FilenameAndLanguageResolution(t *testing.T) {
	tests := []struct {
		name         string
		file         ReviewFilePayload
		wantFilename string
		wantLanguage string
	}{
		{
			name:         "both explicit",
			file:         ReviewFilePayload{Filename: "app.kt", Language: "kotlin", Code: "x"},
			wantFilename: "app.kt",
			wantLanguage: "kotlin",
		},
		{
			name:         "language inferred from filename",
			file:         ReviewFilePayload{Filename: "app.java", Code: "x"},
			wantFilename: "app.java",
			wantLanguage: "java",
		},
		{
			name:         "filename synthesized from language",
			file:         ReviewFilePayload{Language: "python", Code: "x"},
			wantFilename: "snippet.py",
			wantLanguage: "python",
		},
		{
			name:         "nothing to infer",
			file:         ReviewFilePayload{Code: "x"},
			wantFilename: "snippet.txt",
			wantLanguage: "plaintext",
		},
		{
			name:         "unknown extension",
			file:         ReviewFilePayload{Filename: "notes.org", Code: "x"},
			wantFilename: "notes.org",
			wantLanguage: "plaintext",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := NormalizeReview(ReviewRequest{Files: []ReviewFilePayload{tt.file}})
			require.NoError(t, err)
			assert.Equal(t, tt.wantFilename, input.Files[0].Filename)
			assert.Equal(t, tt.wantLanguage, input.Files[0].Language)
		})
	}
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"empty", "", 0},
		{"single line no newline", "hello", 1},
		{"two lines", "a\nb", 2},
		{"trailing newline counts a segment", "a\n", 2},
		{"crlf normalized", "a\r\nb\r\nc", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountLines(tt.code))
		})
	}
}

func TestNormalizeReview_TotalLineCountMatchesSum(t *testing.T) {
	input, err := NormalizeReview(ReviewRequest{
		Files: []ReviewFilePayload{
			{Filename: "a.go", Code: "1\n2\n3"},
			{Filename: "b.go", Code: "1\r\n2"},
			{Filename: "c.go", Code: "only"},
		},
	})
	require.NoError(t, err)

	sum := 0
	for _, f := range input.Files {
		sum += f.LineCount
	}
	assert.Equal(t, sum, input.TotalLineCount())
	assert.Equal(t, 6, input.TotalLineCount())
}

func TestNormalizeGenerate(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		input, err := NormalizeGenerate(GenerateRequest{Prompt: "reverse a string"})
		require.NoError(t, err)
		assert.Equal(t, core.LanguageTypeScript, input.Language)
		assert.Equal(t, core.StyleClean, input.Style)
		assert.Equal(t, core.ResponseLanguageKorean, input.ResponseLanguage)
	})

	t.Run("explicit values kept", func(t *testing.T) {
		input, err := NormalizeGenerate(GenerateRequest{
			Prompt:           "sort numbers",
			Language:         "kotlin",
			Style:            "explain",
			ResponseLanguage: "en",
		})
		require.NoError(t, err)
		assert.Equal(t, core.LanguageKotlin, input.Language)
		assert.Equal(t, core.StyleExplain, input.Style)
		assert.Equal(t, core.ResponseLanguageEnglish, input.ResponseLanguage)
	})

	t.Run("violations", func(t *testing.T) {
		_, err := NormalizeGenerate(GenerateRequest{Prompt: "  ", Language: "cobol", Style: "baroque"})
		var ve *core.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Len(t, ve.Violations, 3)
	})
}
