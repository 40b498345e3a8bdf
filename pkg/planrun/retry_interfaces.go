package planrun

import (
	"context"
	"time"
)

// ErrorClassifier determines whether an error is transient (retryable) or fatal.
type ErrorClassifier interface {
	// IsTransient returns true if the error is temporary and the operation should be retried.
	IsTransient(err error) bool
}

// BackoffStrategy calculates the delay before the next retry attempt.
type BackoffStrategy interface {
	// NextDelay returns the duration to wait after the given failed attempt.
	// attempt is one-indexed (1 = first attempt failed, 2 = second attempt failed, etc.)
	NextDelay(attempt int) time.Duration

	// MaxAttempts returns the total number of attempts, including the first one.
	MaxAttempts() int
}

// Waiter blocks for a backoff or pause period.
// Implementations must return ctx.Err() promptly when ctx is cancelled.
type Waiter interface {
	Wait(ctx context.Context, d time.Duration) error
}

// WaiterFunc adapts a plain function to the Waiter interface.
type WaiterFunc func(ctx context.Context, d time.Duration) error

// Wait calls f(ctx, d).
func (f WaiterFunc) Wait(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}
