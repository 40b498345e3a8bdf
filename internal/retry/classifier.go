package retry

import (
	"errors"
	"strings"

	"github.com/vvka-141/planrun/pkg/planrun"
)

// Classification is the retry category of a failed attempt.
type Classification int

const (
	// Other covers every failure that is not a rate limit. Never retried.
	Other Classification = iota
	// RateLimited means the provider throttled the request.
	RateLimited
)

// String returns the classification name.
func (c Classification) String() string {
	switch c {
	case RateLimited:
		return "RateLimited"
	default:
		return "Other"
	}
}

// rateLimitIndicators are matched against the lowercased error message.
var rateLimitIndicators = []string{
	"rate limit",
	"429",
	"too many requests",
	"requests rate limit exceeded",
}

// Classify derives the classification of an error message.
// It is a pure function of the message text.
func Classify(message string) Classification {
	msg := strings.ToLower(message)
	for _, indicator := range rateLimitIndicators {
		if strings.Contains(msg, indicator) {
			return RateLimited
		}
	}
	return Other
}

// RateLimitClassifier implements ErrorClassifier for provider rate limits.
type RateLimitClassifier struct{}

// NewRateLimitClassifier creates a new rate limit classifier.
func NewRateLimitClassifier() *RateLimitClassifier {
	return &RateLimitClassifier{}
}

// Classify returns the classification of err. A nil error is Other.
// Plan and tool failures are produced locally and are Other whatever their text.
func (c *RateLimitClassifier) Classify(err error) Classification {
	if err == nil {
		return Other
	}
	if errors.Is(err, planrun.ErrPlanInvalid) ||
		errors.Is(err, planrun.ErrToolFailed) ||
		errors.Is(err, planrun.ErrToolNotFound) {
		return Other
	}
	return Classify(err.Error())
}

// IsTransient reports whether err is a rate limit and the attempt should be retried.
func (c *RateLimitClassifier) IsTransient(err error) bool {
	return c.Classify(err) == RateLimited
}
