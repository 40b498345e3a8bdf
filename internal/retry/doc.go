// Package retry provides bounded retry logic with linear backoff for
// rate-limited calls to the planning provider.
//
// The package supports pluggable error classification and backoff strategies,
// following the same split used for every retry loop in planrun.
//
// # Example Usage
//
//	classifier := retry.NewRateLimitClassifier()
//	strategy := retry.NewLinearBackoff(3, retry.WithBaseDelay(10*time.Second))
//	executor := retry.NewExecutor(classifier, strategy)
//
//	run, err := executor.Execute(ctx, query, client.PlanAndRun)
//
// # Error Classification
//
// Provider errors are classified purely by their message text. A message that
// contains "rate limit", "429", "too many requests" or "requests rate limit
// exceeded" (case-insensitive) is RateLimited and gets retried. Anything else
// is returned to the caller on first occurrence as a *NonRetryableError.
//
// # Backoff
//
// LinearBackoff waits base*k after the k-th failed attempt, so the default
// configuration waits 10s and then 20s, and never waits after the last attempt.
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. WithOnRetry() and
// WithWaiter() return independent copies.
package retry
