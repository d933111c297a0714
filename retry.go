package cryptopals

import (
	"context"
	"fmt"
	"time"
)

const maxBackoff = 30 * time.Second

// RetryWithBackoff runs fn until it succeeds, fails permanently, exhausts
// maxRetries, or ctx is done. The delay starts at initialBackoff and
// doubles after each failure, capped at 30 seconds.
//
// maxRetries counts retries, not attempts: 0 runs fn once, a negative
// value retries until ctx ends. A fatal error (see IsFatal), such as a
// *FetchError for a 4xx status, stops the loop immediately; every other
// error is retried.
//
// Example:
//
//	err := RetryWithBackoff(ctx, cfg.MaxRetries, DefaultBackoff, func() error {
//	    body, err = f.download(ctx, url)
//	    return err
//	})
func RetryWithBackoff(ctx context.Context, maxRetries int, initialBackoff time.Duration, fn func() error) error {
	attempt := 0
	backoff := initialBackoff

	for {
		err := fn()
		if err == nil {
			if attempt > 0 {
				fetchLog.Debugf("Retry succeeded after %d attempts", attempt)
			}
			return nil
		}
		attempt++

		if !retryable(err) {
			fetchLog.Debugf("Permanent error, not retrying: %v", err)
			return err
		}
		if maxRetries >= 0 && attempt > maxRetries {
			return &MaxRetriesExceededError{Attempts: attempt, LastErr: err}
		}

		fetchLog.Debugf("Attempt %d failed: %v (waiting %v before retry)", attempt, err, backoff)
		select {
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled after %d attempts: %w", attempt, ctx.Err())
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

// retryable reports whether another attempt may succeed. Only a fatal
// error (a permanent HTTP status, bad configuration, offline) stops the
// loop; transport errors such as a refused or dropped connection are
// retried even though *url.Error reports them as not temporary.
func retryable(err error) bool {
	return !IsFatal(err)
}

// MaxRetriesExceededError is returned when every allowed attempt failed.
type MaxRetriesExceededError struct {
	Attempts int
	LastErr  error
}

func (e *MaxRetriesExceededError) Error() string {
	return fmt.Sprintf("giving up after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *MaxRetriesExceededError) Unwrap() error {
	return e.LastErr
}
