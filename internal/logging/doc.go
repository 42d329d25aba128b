// Package logging builds the slog loggers used across the pipeline. It
// provides a compact console handler for interactive runs, a JSON handler
// for captured logs, and typed attribute helpers so call sites stay terse.
package logging
