// Package llm contains the outbound side of the pipeline: the provider
// transport performing single attempts against the Gemini generateContent
// endpoint, and the retry controller that wraps whole pipeline attempts.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/youngjoone/ai-code-reviewer/internal/core"
)

//go:generate mockgen -destination=../../mocks/mock_client.go -package=mocks . Client

// Client performs exactly one attempt of an outbound model call and returns
// the extracted raw text. Retries are the retry controller's job, never the
// transport's.
type Client interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// DefaultRequestTimeout is the hard cap on a single in-flight provider call.
const DefaultRequestTimeout = 300 * time.Second

// samplingTemperature keeps the model output deterministic-leaning.
const samplingTemperature = 0.2

// Config carries everything the Gemini transport needs. It is read-only for
// the lifetime of the process.
type Config struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// GeminiClient calls the Gemini REST generateContent endpoint.
type GeminiClient struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// NewGeminiClient builds a transport client from explicit configuration.
// The API credential must be present; its absence is a construction-time
// failure, not a per-request one.
func NewGeminiClient(cfg Config, httpClient *http.Client, logger *slog.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is not configured")
	}
	if cfg.Model == "" {
		return nil, errors.New("gemini model is not configured")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("gemini base URL is not configured")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRequestTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &GeminiClient{cfg: cfg, httpClient: httpClient, logger: logger}, nil
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"`
	Temperature      float64 `json:"temperature"`
}

type generateResponse struct {
	Error      *apiError   `json:"error,omitempty"`
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content *content `json:"content"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// GenerateContent performs one POST to generateContent and walks the
// response envelope down to the concatenated text payload. Failures are
// classified for the retry controller: timeouts, 429 and 5xx are retryable;
// caller cancellation, other statuses and malformed envelopes are terminal.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			Temperature:      samplingTemperature,
		},
	})
	if err != nil {
		return "", core.NewTransportError(false, "failed to encode provider request: %v", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimSuffix(c.cfg.BaseURL, "/"), c.cfg.Model, url.QueryEscape(c.cfg.APIKey))

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", core.NewTransportError(false, "failed to build provider request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.classifyCallError(ctx, attemptCtx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.classifyCallError(ctx, attemptCtx, err)
	}

	c.logger.Debug("provider call finished",
		"model", c.cfg.Model,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(resp.StatusCode, raw)
	}
	return extractText(raw)
}

// classifyCallError separates caller cancellation from the per-attempt
// timeout and generic network failures. Cancellation is terminal; the other
// two are retryable.
func (c *GeminiClient) classifyCallError(callerCtx, attemptCtx context.Context, err error) error {
	if callerCtx.Err() != nil && errors.Is(callerCtx.Err(), context.Canceled) {
		return core.NewCancelledError()
	}
	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return core.NewTransportError(true, "provider call timed out after %s", c.cfg.Timeout)
	}
	return core.NewTransportError(true, "provider call failed: %v", err)
}

// statusError builds the failure for a non-2xx response: the embedded error
// message when present, else "HTTP <status>". Only 429 and 5xx are
// retryable.
func statusError(status int, raw []byte) error {
	message := fmt.Sprintf("HTTP %d", status)
	var envelope generateResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
	}
	retryable := status == http.StatusTooManyRequests || status >= 500
	return core.NewTransportError(retryable, "%s", message)
}

// extractText walks candidates[0].content.parts[*].text. Every missing or
// empty step fails with its own message; an embedded error field wins over
// everything else.
func extractText(raw []byte) (string, error) {
	var envelope generateResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", core.NewTransportError(false, "malformed provider response: %v", err)
	}
	if envelope.Error != nil && envelope.Error.Message != "" {
		return "", core.NewTransportError(false, "%s", envelope.Error.Message)
	}
	if len(envelope.Candidates) == 0 {
		return "", core.NewTransportError(false, "provider response contained no candidates")
	}
	first := envelope.Candidates[0]
	if first.Content == nil {
		return "", core.NewTransportError(false, "provider candidate contained no content")
	}
	if len(first.Content.Parts) == 0 {
		return "", core.NewTransportError(false, "provider candidate contained no parts")
	}

	var sb strings.Builder
	for _, p := range first.Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", core.NewTransportError(false, "provider candidate text is empty")
	}
	return text, nil
}
