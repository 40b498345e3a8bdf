package planrun

import (
	"context"
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	run, err := executor.Execute(ctx, query, client.PlanAndRun)
//	if errors.Is(err, planrun.ErrRateLimitExhausted) {
//	    // Ask the user to try again later
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingCredential indicates the provider API key is not set in the environment.
	ErrMissingCredential = errors.New("missing credential")

	// ErrRateLimitExhausted indicates every permitted attempt was rate limited.
	ErrRateLimitExhausted = errors.New("rate limit retries exhausted")

	// ErrNonRetryable indicates an attempt failed with an error that is not a rate limit.
	ErrNonRetryable = errors.New("non-retryable failure")

	// ErrProviderFailed indicates the planning provider call failed.
	ErrProviderFailed = errors.New("provider request failed")

	// ErrPlanInvalid indicates the provider returned a plan that cannot be run.
	ErrPlanInvalid = errors.New("invalid plan")

	// ErrToolNotFound indicates a plan step references an unregistered tool.
	ErrToolNotFound = errors.New("tool not found")

	// ErrToolFailed indicates a tool returned an error while running a step.
	ErrToolFailed = errors.New("tool failed")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrMissingCredential):
		return ExitConfigError
	case errors.Is(err, ErrRateLimitExhausted):
		return ExitRateLimited
	case errors.Is(err, ErrPlanInvalid),
		errors.Is(err, ErrToolNotFound),
		errors.Is(err, ErrToolFailed):
		return ExitPlanFailed
	case errors.Is(err, ErrProviderFailed):
		return ExitProviderError
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	}

	// Cobra reports usage problems as plain errors
	errStr := err.Error()
	usagePatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"accepts ",
		"requires at least",
		"invalid argument",
		"flag needs an argument",
	}
	for _, p := range usagePatterns {
		if strings.Contains(errStr, p) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
