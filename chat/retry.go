package chat

import (
	"context"
	"log/slog"
	"math/rand"
	"time"
)

// RetryWithBackoff runs operation until it succeeds or the attempt
// budget is spent, returning the last error in that case. The wait
// after the nth failure is baseDelay doubled n-1 times, plus up to
// half that again in jitter so repeated callers do not fall into
// lockstep. Context cancellation wins over both the wait and the next
// attempt.
func RetryWithBackoff(ctx context.Context, operation func() error, maxAttempts int, baseDelay time.Duration) error {
	if maxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if lastErr = operation(); lastErr == nil {
			return nil
		}
		if attempt == maxAttempts-1 {
			break
		}

		delay := baseDelay << attempt
		if delay > 0 {
			delay += time.Duration(rand.Int63n(int64(delay)/2 + 1))
		}
		slog.Debug("attempt failed, backing off",
			"attempt", attempt+1, "maxAttempts", maxAttempts, "delay", delay, "error", lastErr)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}
