package retry

import (
	"time"

	"github.com/vvka-141/planrun/pkg/planrun"
)

// LinearBackoff waits baseDelay*k after the k-th failed attempt.
type LinearBackoff struct {
	// baseDelay is the delay after the first failed attempt
	baseDelay time.Duration

	// maxAttempts is the total number of attempts, including the first
	maxAttempts int
}

// BackoffOption is a functional option for configuring LinearBackoff.
type BackoffOption func(*LinearBackoff)

// WithBaseDelay sets the delay after the first failed attempt.
func WithBaseDelay(d time.Duration) BackoffOption {
	return func(b *LinearBackoff) {
		b.baseDelay = d
	}
}

// NewLinearBackoff creates a linear backoff strategy allowing maxAttempts
// attempts in total. Values below 1 are raised to 1 so the operation always
// runs at least once.
//
// Example:
//
//	backoff := retry.NewLinearBackoff(3,
//	    retry.WithBaseDelay(10 * time.Second),
//	)
func NewLinearBackoff(maxAttempts int, opts ...BackoffOption) *LinearBackoff {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	b := &LinearBackoff{
		baseDelay:   planrun.DefaultBaseWait,
		maxAttempts: maxAttempts,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.baseDelay < 0 {
		b.baseDelay = 0
	}

	return b
}

// NextDelay returns the wait after the given one-indexed failed attempt.
func (b *LinearBackoff) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return b.baseDelay * time.Duration(attempt)
}

// MaxAttempts returns the total number of attempts.
func (b *LinearBackoff) MaxAttempts() int {
	return b.maxAttempts
}

// BaseDelay returns the base delay for tests and debugging.
func (b *LinearBackoff) BaseDelay() time.Duration {
	return b.baseDelay
}
