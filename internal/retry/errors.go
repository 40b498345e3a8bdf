package retry

import "github.com/vvka-141/planrun/pkg/planrun"

// NonRetryableError is returned when an attempt fails with an error that is
// not classified as a rate limit. It carries the human-readable message of
// the underlying failure.
type NonRetryableError struct {
	Message string
	Err     error
}

func (e *NonRetryableError) Error() string {
	return e.Message
}

func (e *NonRetryableError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, planrun.ErrNonRetryable) match.
func (e *NonRetryableError) Is(target error) bool {
	return target == planrun.ErrNonRetryable
}
