// Package contract defines the request and response payload shapes of the
// service and enforces them at both boundaries: inbound caller requests and
// outbound model output. Nothing that fails validation here ever reaches
// downstream code.
package contract

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/youngjoone/ai-code-reviewer/internal/core"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

const (
	reviewSchemaName   = "schemas/review_result.json"
	generateSchemaName = "schemas/generate_result.json"
)

// ResultSchemas holds the compiled output schemas together with their raw
// documents. The raw document is embedded verbatim into prompts so the text
// the model is told to match and the schema the validator checks are the
// same artifact.
type ResultSchemas struct {
	reviewDoc   string
	generateDoc string
	review      *jsonschema.Schema
	generate    *jsonschema.Schema
}

// LoadResultSchemas compiles the embedded result schemas. It fails only on a
// broken embedded asset, which is a programming error.
func LoadResultSchemas() (*ResultSchemas, error) {
	compiler := jsonschema.NewCompiler()

	docs := make(map[string]string, 2)
	for _, name := range []string{reviewSchemaName, generateSchemaName} {
		data, err := schemaFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded schema %s: %w", name, err)
		}
		docs[name] = string(data)
		if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to register schema %s: %w", name, err)
		}
	}

	review, err := compiler.Compile(reviewSchemaName)
	if err != nil {
		return nil, fmt.Errorf("failed to compile review result schema: %w", err)
	}
	generate, err := compiler.Compile(generateSchemaName)
	if err != nil {
		return nil, fmt.Errorf("failed to compile generate result schema: %w", err)
	}

	return &ResultSchemas{
		reviewDoc:   docs[reviewSchemaName],
		generateDoc: docs[generateSchemaName],
		review:      review,
		generate:    generate,
	}, nil
}

// ReviewDoc returns the literal review result schema document.
func (s *ResultSchemas) ReviewDoc() string { return s.reviewDoc }

// GenerateDoc returns the literal generate result schema document.
func (s *ResultSchemas) GenerateDoc() string { return s.generateDoc }

// DecodeReviewResult turns raw model text into a validated ReviewResult.
// The text is first decoded untyped, then structurally validated, and only
// then constructed into the strict result type.
func (s *ResultSchemas) DecodeReviewResult(text string) (*core.ReviewResult, error) {
	if err := s.validate(s.review, text); err != nil {
		return nil, err
	}

	var result core.ReviewResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, core.NewOutputFormatError(err)
	}
	if result.Issues == nil {
		result.Issues = []core.ReviewIssue{}
	}
	if result.SuggestedTests == nil {
		result.SuggestedTests = []string{}
	}
	if violations := duplicateIssueIDs(result.Issues); len(violations) > 0 {
		return nil, core.NewOutputSchemaError(violations)
	}
	return &result, nil
}

// DecodeGenerateResult turns raw model text into a validated GenerateResult.
func (s *ResultSchemas) DecodeGenerateResult(text string) (*core.GenerateResult, error) {
	if err := s.validate(s.generate, text); err != nil {
		return nil, err
	}

	var result core.GenerateResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, core.NewOutputFormatError(err)
	}
	if result.Notes == nil {
		result.Notes = []string{}
	}
	return &result, nil
}

// validate runs the two-stage pipeline: untyped JSON decode, then schema
// validation. The untyped value never flows past this function.
func (s *ResultSchemas) validate(schema *jsonschema.Schema, text string) error {
	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()

	var untyped any
	if err := decoder.Decode(&untyped); err != nil {
		return core.NewOutputFormatError(err)
	}
	if decoder.More() {
		return core.NewOutputFormatError(errors.New("trailing data after JSON value"))
	}

	if err := schema.Validate(untyped); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return core.NewOutputSchemaError(renderViolations(ve))
		}
		return core.NewOutputSchemaError([]string{"root: " + err.Error()})
	}
	return nil
}

// renderViolations flattens a validation error tree into one rendered
// message per violated field, "<dotted-path>: <message>".
func renderViolations(ve *jsonschema.ValidationError) []string {
	var out []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, RenderViolation(e.InstanceLocation, e.Message))
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(ve)
	return out
}

// RenderViolation formats a single violation. The location is a JSON
// pointer; it is rendered as a dotted path, or "root" when empty.
func RenderViolation(instanceLocation, message string) string {
	path := strings.TrimPrefix(instanceLocation, "/")
	path = strings.ReplaceAll(path, "/", ".")
	if path == "" {
		path = "root"
	}
	return path + ": " + message
}

// duplicateIssueIDs checks the one constraint the schema cannot express:
// issue ids must be unique within a response.
func duplicateIssueIDs(issues []core.ReviewIssue) []string {
	seen := make(map[string]struct{}, len(issues))
	var violations []string
	for i, issue := range issues {
		if _, dup := seen[issue.ID]; dup {
			violations = append(violations, fmt.Sprintf("issues.%d.id: duplicate issue id %q", i, issue.ID))
			continue
		}
		seen[issue.ID] = struct{}{}
	}
	return violations
}
