package planrun

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess       = 0  // Query answered successfully
	ExitGeneralError  = 1  // Unknown or unclassified error
	ExitUsageError    = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic         = 3  // Internal panic (unexpected crash)
	ExitConfigError   = 10 // Invalid configuration or missing credential
	ExitProviderError = 11 // Planning provider rejected the request
	ExitRateLimited   = 12 // Every attempt was rate limited
	ExitPlanFailed    = 13 // Plan could not be generated or run
	ExitInterrupted   = 14 // Cancelled by the user (Ctrl+C)
)

const (
	// DefaultMaxAttempts is the total number of attempts per query,
	// including the first one.
	DefaultMaxAttempts = 3

	// DefaultBaseWait is the wait before the first retry. Retry k waits k times this.
	DefaultBaseWait = 10 * time.Second

	// DefaultRequestPause is the pause between two interactive queries.
	DefaultRequestPause = 10 * time.Second

	// DefaultProvider is the planning backend used when none is configured.
	DefaultProvider = "mistral"

	// DefaultModel is the model requested from DefaultProvider.
	DefaultModel = "mistral-large-latest"

	// SmokeTestQuery is sent once at startup to verify the client works end to end.
	SmokeTestQuery Query = "What is 5 plus 3?"

	// QuitCommand ends an interactive session (case-insensitive).
	QuitCommand = "quit"

	// MaxErrorPreviewLength caps provider output quoted in error messages.
	MaxErrorPreviewLength = 200
)
