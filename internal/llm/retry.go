package llm

import (
	"context"
	"fmt"
	"time"
)

const (
	// bounded retries for generation calls - clarification and refinement
	// are best-effort, so we retry a little and then give up
	defaultMaxAttempts = 3
	retryBaseDelay     = 500 * time.Millisecond
)

// runs fn up to maxAttempts times with increasing delay between attempts.
// Context cancellation stops retrying immediately. Embedding calls do not
// use this wrapper - they fail fast so search can fall back to lexical.
func withRetry[T any](ctx context.Context, maxAttempts int, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}

		lastErr = err

		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		if attempt < maxAttempts {
			delay := retryBaseDelay * time.Duration(attempt)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}
	}

	return zero, fmt.Errorf("all %d attempts failed: %w", maxAttempts, lastErr)
}
