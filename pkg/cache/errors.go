package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when a cache backend cannot be reached.
var ErrUnavailable = errors.New("cache unavailable")

// retryDelay is the pause before the first retry. It doubles per attempt.
var retryDelay = 100 * time.Millisecond

const retryAttempts = 3

// RetryableError marks a failure that may succeed when tried again.
type RetryableError struct{ Err error }

// Retryable wraps err so that [RetryWithBackoff] retries it. A nil err
// stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was wrapped with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff calls fn until it succeeds, returns an error that is not
// retryable, or has failed three times. It stops early when ctx is done.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryDelay
	var err error
	for attempt := range retryAttempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if attempt == retryAttempts-1 {
			break
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
	return err
}
