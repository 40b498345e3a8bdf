// Package logging provides concrete implementations of the planrun.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes leveled, colorized records to stderr through slog and tint
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
