package httputil

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
)

// maxRetryAfter caps how long a server-requested wait may block a retry.
const maxRetryAfter = 2 * time.Minute

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (network timeouts, 5xx and 429 responses) with this
// type so that [Retry] knows to attempt the operation again. When the server
// sent a Retry-After header, After holds the requested wait and replaces the
// backoff delay for that attempt.
type RetryableError struct {
	Err   error
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry executes fn up to attempts times with exponential backoff.
// It only retries errors wrapped with [RetryableError]; other errors are
// returned immediately. The delay doubles after each failed attempt.
// Returns the last error if all attempts fail, or ctx.Err() if cancelled.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		var re *RetryableError
		if !errors.As(err, &re) {
			return err
		}
		if i == attempts-1 {
			break
		}

		wait := delay
		if re.After > 0 {
			wait = min(re.After, maxRetryAfter)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
			delay *= 2
		}
	}
	return lastErr
}

// RetryWithBackoff is a convenience wrapper around [Retry] with sensible
// defaults: 3 attempts with 1 second initial delay (doubling each retry).
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}

// ParseRetryAfter interprets a Retry-After header given in seconds, adding
// one second of slack. An empty or malformed header yields fallback.
func ParseRetryAfter(header string, fallback time.Duration) time.Duration {
	seconds, err := strconv.ParseInt(strings.TrimSpace(header), 10, 64)
	if err != nil || seconds < 0 {
		return fallback
	}
	return time.Duration(seconds)*time.Second + time.Second
}
