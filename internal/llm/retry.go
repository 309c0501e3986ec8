package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"
)

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *RetryableError
	return errors.As(err, &retryErr)
}

// backoffBase is the delay before the first retry. Tests shrink it.
var backoffBase = time.Second

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	// 1<<5 already exceeds the cap; larger shifts would overflow.
	if attempt < 0 {
		attempt = 0
	}
	if attempt > 5 {
		attempt = 5
	}
	base := time.Duration(1<<uint(attempt)) * backoffBase
	if base > 30*backoffBase {
		base = 30 * backoffBase
	}
	jitter := time.Duration(rand.Int64N(int64(base)/2 + 1))
	return base + jitter
}

// Retry runs fn once, then up to maxRetries more times while it keeps
// failing with a retryable error. With maxRetries <= 0 fn runs exactly once.
func Retry[T any](ctx context.Context, maxRetries int, log *slog.Logger, fn func(context.Context) (T, error)) (T, error) {
	var (
		out T
		err error
	)
	for attempt := 0; ; attempt++ {
		out, err = fn(ctx)
		if err == nil || !IsRetryable(err) || attempt >= maxRetries {
			return out, err
		}
		if log != nil {
			log.Warn("retryable error", "attempt", attempt, "error", err)
		}
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}
