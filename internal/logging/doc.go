// Package logging configures slog handlers for console and JSON output and
// provides shared attribute helpers used across Lectern subsystems.
package logging
