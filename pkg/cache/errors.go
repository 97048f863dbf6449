package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNetwork is wrapped by every failure to reach a Redis or MongoDB
// backend.
var ErrNetwork = errors.New("cache backend unreachable")

func networkError(op string, err error) error {
	return Retryable(fmt.Errorf("%s: %w: %w", op, ErrNetwork, err))
}

// RetryableError marks a cache failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable marks err for [RetryWithBackoff]. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

const retryAttempts = 3

var retryDelay = time.Second

// RetryWithBackoff runs fn until it succeeds, fails permanently, or has
// been tried three times. The wait starts at one second and doubles.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	wait := retryDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait *= 2
	}
}
