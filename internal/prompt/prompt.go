// Package prompt renders the instruction documents sent to the model. The
// renderer is pure: given the same operation input it produces byte-identical
// text, which keeps prompts golden-testable. Templates are embedded so the
// binary carries everything it needs.
package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/youngjoone/ai-code-reviewer/internal/core"
)

//go:embed prompts/*.prompt
var promptFiles embed.FS

// Key names one of the prompt templates.
type Key string

const (
	CodeReviewPrompt     Key = "code_review"
	CodeGenerationPrompt Key = "code_generation"

	// defaultVariant is the template variant used when no model-specific one
	// exists. Filenames follow "<key>_<variant>.prompt".
	defaultVariant = "default"
)

const (
	koreanDirective  = "Write all natural-language fields in Korean."
	englishDirective = "Write all natural-language fields in English."
)

// SchemaSource supplies the literal result-schema documents embedded into
// prompts. The same documents are compiled by the output validator, so the
// contract the model is told to match is the one actually enforced.
type SchemaSource interface {
	ReviewDoc() string
	GenerateDoc() string
}

// Builder renders operation inputs into prompt text.
type Builder struct {
	templates map[Key]*template.Template
	schemas   SchemaSource
}

// NewBuilder parses the embedded templates and binds the schema source.
func NewBuilder(schemas SchemaSource) (*Builder, error) {
	b := &Builder{
		templates: make(map[Key]*template.Template),
		schemas:   schemas,
	}

	files, err := promptFiles.ReadDir("prompts")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded prompts directory: %w", err)
	}

	for _, file := range files {
		name := file.Name()
		base := strings.TrimSuffix(name, filepath.Ext(name))
		idx := strings.LastIndex(base, "_")
		if idx <= 0 || idx == len(base)-1 {
			return nil, fmt.Errorf("invalid prompt filename %s (expected '<key>_<variant>.prompt')", name)
		}
		key, variant := Key(base[:idx]), base[idx+1:]
		if variant != defaultVariant {
			continue
		}

		content, err := promptFiles.ReadFile("prompts/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded prompt %s: %w", name, err)
		}
		tmpl, err := template.New(base).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse prompt %s: %w", name, err)
		}
		b.templates[key] = tmpl
	}

	for _, key := range []Key{CodeReviewPrompt, CodeGenerationPrompt} {
		if _, ok := b.templates[key]; !ok {
			return nil, fmt.Errorf("missing embedded prompt for key %q", key)
		}
	}
	return b, nil
}

type reviewPromptData struct {
	LanguageDirective string
	SchemaDoc         string
	MultiFile         bool
	Files             []core.ReviewFile
}

type generatePromptData struct {
	LanguageDirective string
	SchemaDoc         string
	Language          core.TargetLanguage
	Style             core.GenerationStyle
	Prompt            string
}

// Review renders the review prompt for a normalized input.
func (b *Builder) Review(input core.ReviewInput) (string, error) {
	return b.render(CodeReviewPrompt, reviewPromptData{
		LanguageDirective: directiveFor(input.ResponseLanguage),
		SchemaDoc:         b.schemas.ReviewDoc(),
		MultiFile:         len(input.Files) > 1,
		Files:             input.Files,
	})
}

// Generate renders the generation prompt for a normalized input.
func (b *Builder) Generate(input core.GenerateInput) (string, error) {
	return b.render(CodeGenerationPrompt, generatePromptData{
		LanguageDirective: directiveFor(input.ResponseLanguage),
		SchemaDoc:         b.schemas.GenerateDoc(),
		Language:          input.Language,
		Style:             input.Style,
		Prompt:            input.Prompt,
	})
}

func (b *Builder) render(key Key, data any) (string, error) {
	tmpl, ok := b.templates[key]
	if !ok {
		return "", fmt.Errorf("no template registered for key %q", key)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", key, err)
	}
	return buf.String(), nil
}

func directiveFor(lang core.ResponseLanguage) string {
	if lang == core.ResponseLanguageEnglish {
		return englishDirective
	}
	return koreanDirective
}
