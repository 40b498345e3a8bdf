package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/vvka-141/planrun/pkg/planrun"
)

// RetryFunc is called before each backoff wait.
// attempt is the one-indexed attempt that just failed.
type RetryFunc func(attempt, maxAttempts int, err error, delay time.Duration)

// Executor runs an operation with rate-limit retries and linear backoff.
//
// Thread Safety:
// The Executor itself is safe for concurrent use when calling Execute().
// WithOnRetry() and WithWaiter() return a NEW instance; the receiver is unchanged.
type Executor struct {
	classifier planrun.ErrorClassifier
	strategy   planrun.BackoffStrategy
	waiter     planrun.Waiter
	onRetry    RetryFunc
}

// NewExecutor creates a new retry executor with the given configuration.
// Panics if classifier or strategy is nil.
func NewExecutor(
	classifier planrun.ErrorClassifier,
	strategy planrun.BackoffStrategy,
) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{
		classifier: classifier,
		strategy:   strategy,
		waiter:     TimerWaiter{},
	}
}

// WithOnRetry returns a new Executor with the specified retry callback.
func (e *Executor) WithOnRetry(callback RetryFunc) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// WithWaiter returns a new Executor that waits through w.
// A nil waiter restores the timer-based default.
func (e *Executor) WithWaiter(w planrun.Waiter) *Executor {
	clone := *e
	if w == nil {
		w = TimerWaiter{}
	}
	clone.waiter = w
	return &clone
}

// Execute runs operation for query until it succeeds, fails with an error
// that is not a rate limit, or the attempt budget is spent.
//
// Outcomes:
//   - success: the operation's run, nil error
//   - non-rate-limit failure: *NonRetryableError on first occurrence
//   - every attempt rate limited: an error matching planrun.ErrRateLimitExhausted
//   - ctx cancelled during a wait: ctx.Err()
func (e *Executor) Execute(ctx context.Context, query planrun.Query, operation planrun.Operation) (*planrun.PlanRun, error) {
	maxAttempts := e.strategy.MaxAttempts()
	attempts := 0
	var lastErr error

	for attempts < maxAttempts {
		run, err := operation(ctx, query)
		if err == nil {
			return run, nil
		}

		if !e.classifier.IsTransient(err) {
			return nil, &NonRetryableError{Message: err.Error(), Err: err}
		}

		lastErr = err
		attempts++
		if attempts >= maxAttempts {
			break
		}

		delay := e.strategy.NextDelay(attempts)
		if e.onRetry != nil {
			e.onRetry(attempts, maxAttempts, err, delay)
		}

		if err := e.waiter.Wait(ctx, delay); err != nil {
			return nil, err
		}
	}

	if lastErr == nil {
		return nil, planrun.ErrRateLimitExhausted
	}
	return nil, fmt.Errorf("%w after %d attempts: %w", planrun.ErrRateLimitExhausted, attempts, lastErr)
}

// TimerWaiter waits on a timer, respecting context cancellation.
type TimerWaiter struct{}

// Wait blocks for d or until ctx is done.
func (TimerWaiter) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
