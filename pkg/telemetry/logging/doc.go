// Package logging provides structured logging for the Callisto toolchain.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Context-aware logging with run IDs, file names and function names
//   - Configurable log levels (debug, info, warn, error)
//
// Logs go to stderr by default so that a program's own output on stdout
// can be piped.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//
//	ctx = logging.WithRunID(ctx, runID)
//	ctx = logging.WithFile(ctx, "hello.cal")
//	logger.InfoContext(ctx, "program started")  // includes run_id and file
//
// Packages that accept a *slog.Logger get logger.Slog(); the context
// fields are added by the handler, so slog's own InfoContext picks them up
// as well.
package logging
