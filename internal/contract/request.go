package contract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/youngjoone/ai-code-reviewer/internal/core"
)

// Inbound payload limits. Requests beyond these bounds are rejected before
// any provider call.
const (
	MaxReviewFiles      = 12
	MaxReviewTotalChars = 80_000
)

// ReviewFilePayload is one source file in a review request.
type ReviewFilePayload struct {
	Filename string `json:"filename"`
	Language string `json:"language,omitempty"`
	Code     string `json:"code"`
}

// ReviewRequest is the inbound payload of the review operation. Either the
// multi-file form (Files) or the legacy single-file form (Code plus optional
// Filename/Language) must be present.
type ReviewRequest struct {
	Files []ReviewFilePayload `json:"files,omitempty"`

	// Legacy single-file form.
	Code     string `json:"code,omitempty"`
	Filename string `json:"filename,omitempty"`
	Language string `json:"language,omitempty"`

	ResponseLanguage string `json:"responseLanguage,omitempty"`
	ThreadID         string `json:"threadId,omitempty"`
}

// GenerateRequest is the inbound payload of the generate operation.
type GenerateRequest struct {
	Prompt           string `json:"prompt"`
	Language         string `json:"language,omitempty"`
	Style            string `json:"style,omitempty"`
	ResponseLanguage string `json:"responseLanguage,omitempty"`
	ThreadID         string `json:"threadId,omitempty"`
}

// NormalizeReview validates the request shape and produces a normalized
// ReviewInput: filenames and languages resolved, line counts computed. A
// *core.ValidationError is returned when the payload violates the contract.
func NormalizeReview(req ReviewRequest) (core.ReviewInput, error) {
	var violations []string

	files := req.Files
	if len(files) == 0 {
		if req.Code == "" && req.Filename == "" && req.Language == "" {
			return core.ReviewInput{}, core.NewValidationError("root: either files or code is required")
		}
		// Legacy form: violations keep the top-level field paths.
		if req.Code == "" {
			return core.ReviewInput{}, core.NewValidationError("code: must not be empty")
		}
		files = []ReviewFilePayload{{Filename: req.Filename, Language: req.Language, Code: req.Code}}
	} else {
		if len(files) > MaxReviewFiles {
			violations = append(violations, fmt.Sprintf("files: at most %d files are allowed, got %d", MaxReviewFiles, len(files)))
		}
		for i, f := range files {
			if f.Code == "" {
				violations = append(violations, fmt.Sprintf("files.%d.code: must not be empty", i))
			}
		}
	}

	totalChars := 0
	for _, f := range files {
		totalChars += len(f.Code)
	}
	if totalChars > MaxReviewTotalChars {
		violations = append(violations, fmt.Sprintf("files: total code size exceeds %d characters, got %d", MaxReviewTotalChars, totalChars))
	}

	responseLanguage, vio := normalizeResponseLanguage(req.ResponseLanguage)
	violations = append(violations, vio...)

	if len(violations) > 0 {
		return core.ReviewInput{}, core.NewValidationError(violations...)
	}

	input := core.ReviewInput{
		Files:            make([]core.ReviewFile, 0, len(files)),
		ResponseLanguage: responseLanguage,
	}
	for _, f := range files {
		filename := resolveFilename(f.Filename, f.Language)
		language := resolveLanguage(f.Language, filename)
		input.Files = append(input.Files, core.ReviewFile{
			Filename:  filename,
			Language:  language,
			Code:      f.Code,
			LineCount: CountLines(f.Code),
		})
	}
	return input, nil
}

// NormalizeGenerate validates the request shape and produces a normalized
// GenerateInput with defaults applied (typescript, clean, ko).
func NormalizeGenerate(req GenerateRequest) (core.GenerateInput, error) {
	var violations []string

	if strings.TrimSpace(req.Prompt) == "" {
		violations = append(violations, "prompt: must not be empty")
	}

	language := core.LanguageTypeScript
	if req.Language != "" {
		language = core.TargetLanguage(req.Language)
		if !language.Valid() {
			violations = append(violations, fmt.Sprintf("language: unsupported language %q", req.Language))
		}
	}

	style := core.StyleClean
	if req.Style != "" {
		style = core.GenerationStyle(req.Style)
		if !style.Valid() {
			violations = append(violations, fmt.Sprintf("style: unsupported style %q", req.Style))
		}
	}

	responseLanguage, vio := normalizeResponseLanguage(req.ResponseLanguage)
	violations = append(violations, vio...)

	if len(violations) > 0 {
		return core.GenerateInput{}, core.NewValidationError(violations...)
	}

	return core.GenerateInput{
		Prompt:           req.Prompt,
		Language:         language,
		Style:            style,
		ResponseLanguage: responseLanguage,
	}, nil
}

func normalizeResponseLanguage(raw string) (core.ResponseLanguage, []string) {
	if raw == "" {
		return core.ResponseLanguageKorean, nil
	}
	lang := core.ResponseLanguage(raw)
	if !lang.Valid() {
		return lang, []string{fmt.Sprintf("responseLanguage: must be %q or %q, got %q",
			core.ResponseLanguageKorean, core.ResponseLanguageEnglish, raw)}
	}
	return lang, nil
}

// CountLines returns the number of newline-delimited segments after
// normalizing CRLF line endings. Empty code has zero lines.
func CountLines(code string) int {
	if code == "" {
		return 0
	}
	normalized := strings.ReplaceAll(code, "\r\n", "\n")
	return len(strings.Split(normalized, "\n"))
}

const (
	defaultFilename = "snippet.txt"
	defaultLanguage = "plaintext"
)

// languageExtensions maps free-form language names to a file extension for
// synthesized filenames.
var languageExtensions = map[string]string{
	"typescript": ".ts",
	"javascript": ".js",
	"python":     ".py",
	"java":       ".java",
	"kotlin":     ".kt",
	"go":         ".go",
	"rust":       ".rs",
	"ruby":       ".rb",
	"c":          ".c",
	"cpp":        ".cpp",
	"c++":        ".cpp",
	"csharp":     ".cs",
	"swift":      ".swift",
	"php":        ".php",
	"scala":      ".scala",
}

// extensionLanguages is the reverse mapping, used to infer a language from
// an explicit filename.
var extensionLanguages = map[string]string{
	".ts":    "typescript",
	".tsx":   "typescript",
	".js":    "javascript",
	".jsx":   "javascript",
	".py":    "python",
	".java":  "java",
	".kt":    "kotlin",
	".go":    "go",
	".rs":    "rust",
	".rb":    "ruby",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".hpp":   "cpp",
	".cs":    "csharp",
	".swift": "swift",
	".php":   "php",
	".scala": "scala",
}

// resolveFilename keeps an explicit filename, synthesizes one from the
// language's extension, or falls back to the default.
func resolveFilename(filename, language string) string {
	if filename != "" {
		return filename
	}
	if ext, ok := languageExtensions[strings.ToLower(language)]; ok {
		return "snippet" + ext
	}
	return defaultFilename
}

// resolveLanguage keeps an explicit language, infers one from the filename
// extension, or falls back to plaintext.
func resolveLanguage(language, filename string) string {
	if language != "" {
		return language
	}
	if lang, ok := extensionLanguages[strings.ToLower(filepath.Ext(filename))]; ok {
		return lang
	}
	return defaultLanguage
}
