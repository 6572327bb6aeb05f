package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/youngjoone/ai-code-reviewer/internal/core"
)

// RetryPolicy bounds one logical operation: at most MaxAttempts attempts
// with a fixed Delay between them. Deliberately simple: no backoff growth.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy is the fixed production policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Delay: 3 * time.Second}
}

// Do runs fn until it succeeds, fails terminally, or the attempt budget is
// spent. The attempt covers the whole pipeline step handed in (transport
// call, extraction, parse, schema validation); only failures classified
// retryable cause another attempt. Malformed model output is terminal here:
// the same prompt at the same temperature is unlikely to self-correct.
// Cancellation always wins over a queued retry.
func (p RetryPolicy) Do(ctx context.Context, logger *slog.Logger, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return core.NewCancelledError()
			case <-time.After(p.Delay):
			}
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !core.IsRetryable(err) {
			return err
		}
		if attempt < p.MaxAttempts {
			logger.Warn("provider attempt failed, retrying",
				"attempt", attempt,
				"max_attempts", p.MaxAttempts,
				"delay", p.Delay,
				"error", err,
			)
		}
	}

	return core.NewRetriesExhaustedError(p.MaxAttempts, lastErr)
}
