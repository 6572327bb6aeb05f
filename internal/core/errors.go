package core

import (
	"errors"
	"fmt"
	"strings"
)

// FailureClass categorizes a pipeline failure for retry and reporting
// decisions. Exactly one class applies to any raised failure.
type FailureClass int8

const (
	// FailureRequestValidation means the caller payload failed the inbound
	// contract. Never retried, never reaches the provider.
	FailureRequestValidation FailureClass = iota
	// FailureTransport is raised by the provider transport. Whether it is
	// retryable depends on the underlying condition (timeout, HTTP status).
	FailureTransport
	// FailureCancelled means the caller aborted the operation. Terminal,
	// distinguishable from a timeout by origin.
	FailureCancelled
	// FailureOutputFormat means the extracted model text was not valid JSON.
	FailureOutputFormat
	// FailureOutputSchema means the parsed JSON did not match the expected
	// result contract. Carries one message per violated field.
	FailureOutputSchema
	// FailureRetriesExhausted means the retry budget was consumed without
	// success. Carries the last underlying failure's message.
	FailureRetriesExhausted
)

// String returns the taxonomy name of the class.
func (c FailureClass) String() string {
	switch c {
	case FailureRequestValidation:
		return "request_validation"
	case FailureTransport:
		return "transport"
	case FailureCancelled:
		return "cancelled"
	case FailureOutputFormat:
		return "output_format"
	case FailureOutputSchema:
		return "output_schema"
	case FailureRetriesExhausted:
		return "retries_exhausted"
	default:
		return "unknown"
	}
}

// PipelineError is the single error type flowing through the provider
// pipeline. Retryable is only ever true for the transient transport subtype.
type PipelineError struct {
	Class     FailureClass
	Retryable bool
	Message   string
	Details   []string
}

func (e *PipelineError) Error() string {
	return e.Message
}

// NewTransportError builds a transport-class failure.
func NewTransportError(retryable bool, format string, args ...any) *PipelineError {
	return &PipelineError{
		Class:     FailureTransport,
		Retryable: retryable,
		Message:   fmt.Sprintf(format, args...),
	}
}

// NewCancelledError builds a caller-cancellation failure.
func NewCancelledError() *PipelineError {
	return &PipelineError{Class: FailureCancelled, Message: "operation cancelled by caller"}
}

// NewOutputFormatError builds a non-JSON model output failure.
func NewOutputFormatError(cause error) *PipelineError {
	return &PipelineError{
		Class:   FailureOutputFormat,
		Message: fmt.Sprintf("non-JSON output: %v", cause),
	}
}

// NewOutputSchemaError builds a schema-mismatch failure listing every
// violated field.
func NewOutputSchemaError(violations []string) *PipelineError {
	return &PipelineError{
		Class:   FailureOutputSchema,
		Message: "model output failed schema validation: " + strings.Join(violations, ", "),
		Details: violations,
	}
}

// NewRetriesExhaustedError wraps the last failure after the attempt budget
// is spent, preserving its message.
func NewRetriesExhaustedError(attempts int, last error) *PipelineError {
	return &PipelineError{
		Class:   FailureRetriesExhausted,
		Message: fmt.Sprintf("retries exhausted after %d attempts: %v", attempts, last),
		Details: []string{last.Error()},
	}
}

// IsRetryable reports whether re-attempting the same request is expected to
// plausibly succeed. Only the transient transport subtype qualifies;
// cancellation, malformed output, and schema mismatches are terminal.
func IsRetryable(err error) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}

// IsCancelled reports whether the failure originated from caller
// cancellation.
func IsCancelled(err error) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Class == FailureCancelled
	}
	return false
}

// ValidationError reports an inbound payload that failed the request
// contract. It carries one rendered violation per field, each in the form
// "<dotted-path>: <message>".
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + strings.Join(e.Violations, ", ")
}

// NewValidationError builds a request-validation failure from rendered
// violations.
func NewValidationError(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// IsValidation reports whether the error is a request-validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
