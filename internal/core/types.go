// Package core defines the domain types and failure taxonomy shared by the
// request pipeline: operation inputs, validated model results, and the run
// lifecycle. These types are deliberately free of transport or storage
// concerns so every other package can depend on them.
package core

// OperationKind identifies one of the two supported request kinds.
type OperationKind string

const (
	OperationReview   OperationKind = "review"
	OperationGenerate OperationKind = "generate"
)

// ResponseLanguage selects the natural language for all prose fields the
// model produces.
type ResponseLanguage string

const (
	ResponseLanguageKorean  ResponseLanguage = "ko"
	ResponseLanguageEnglish ResponseLanguage = "en"
)

// Valid reports whether the selector is one of the supported languages.
func (l ResponseLanguage) Valid() bool {
	return l == ResponseLanguageKorean || l == ResponseLanguageEnglish
}

// ReviewFile is one normalized source file submitted for review. Filename and
// Language are always resolved by the time a ReviewFile reaches the prompt
// builder; LineCount is the number of newline-delimited segments after CRLF
// normalization, zero for empty code.
type ReviewFile struct {
	Filename  string
	Language  string
	Code      string
	LineCount int
}

// ReviewInput is the normalized input for a review operation.
type ReviewInput struct {
	Files            []ReviewFile
	ResponseLanguage ResponseLanguage
}

// Primary returns the file whose metadata is echoed in the response. The
// first submitted file is primary.
func (in ReviewInput) Primary() ReviewFile {
	if len(in.Files) == 0 {
		return ReviewFile{}
	}
	return in.Files[0]
}

// TotalLineCount sums the line counts of all files.
func (in ReviewInput) TotalLineCount() int {
	total := 0
	for _, f := range in.Files {
		total += f.LineCount
	}
	return total
}

// TargetLanguage is one of the languages the generate operation can emit.
type TargetLanguage string

const (
	LanguageTypeScript TargetLanguage = "typescript"
	LanguageJavaScript TargetLanguage = "javascript"
	LanguagePython     TargetLanguage = "python"
	LanguageJava       TargetLanguage = "java"
	LanguageKotlin     TargetLanguage = "kotlin"
)

// Valid reports whether the language is a member of the fixed set.
func (l TargetLanguage) Valid() bool {
	switch l {
	case LanguageTypeScript, LanguageJavaScript, LanguagePython, LanguageJava, LanguageKotlin:
		return true
	}
	return false
}

// GenerationStyle shapes the generated code.
type GenerationStyle string

const (
	StyleClean   GenerationStyle = "clean"
	StyleFast    GenerationStyle = "fast"
	StyleExplain GenerationStyle = "explain"
)

// Valid reports whether the style is a member of the fixed set.
func (s GenerationStyle) Valid() bool {
	switch s {
	case StyleClean, StyleFast, StyleExplain:
		return true
	}
	return false
}

// GenerateInput is the normalized input for a generate operation.
type GenerateInput struct {
	Prompt           string
	Language         TargetLanguage
	Style            GenerationStyle
	ResponseLanguage ResponseLanguage
}

// IssueSeverity grades a review issue.
type IssueSeverity string

const (
	SeverityLow    IssueSeverity = "low"
	SeverityMedium IssueSeverity = "medium"
	SeverityHigh   IssueSeverity = "high"
)

// ReviewIssue is a single model-produced finding, bound to a line of the
// submitted code. Issues are never synthesized by the pipeline itself.
type ReviewIssue struct {
	ID       string        `json:"id"`
	Severity IssueSeverity `json:"severity"`
	Title    string        `json:"title"`
	Message  string        `json:"message"`
	Line     int           `json:"line"`
}

// ReviewResult is the validated structured output of one review round-trip.
// Constructed once per successful model call, immutable thereafter.
type ReviewResult struct {
	Summary        string        `json:"summary"`
	Issues         []ReviewIssue `json:"issues"`
	RefactoredCode string        `json:"refactoredCode"`
	SuggestedTests []string      `json:"suggestedTests"`
}

// GenerateResult is the validated structured output of one generate
// round-trip.
type GenerateResult struct {
	Summary string   `json:"summary"`
	Code    string   `json:"code"`
	Notes   []string `json:"notes"`
}
