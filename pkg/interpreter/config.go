package interpreter

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates invalid interpreter configuration.
var ErrInvalidConfig = errors.New("invalid interpreter configuration")

// Config contains configuration for the evaluator.
type Config struct {
	// EntryPoint is the zero-parameter function a run starts from.
	// Default: "start".
	EntryPoint string

	// MaxCallDepth bounds nested user-function invocations. Exceeding it
	// raises a range error. Zero leaves recursion bounded only by the host.
	// Default: 0.
	MaxCallDepth int

	// TraceCalls logs every invocation at debug level.
	// Default: false.
	TraceCalls bool
}

// DefaultConfig returns the default evaluator configuration.
func DefaultConfig() *Config {
	return &Config{
		EntryPoint:   "start",
		MaxCallDepth: 0,
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.EntryPoint == "" {
		return fmt.Errorf("%w: entry point cannot be empty", ErrInvalidConfig)
	}
	if c.MaxCallDepth < 0 {
		return fmt.Errorf("%w: max call depth cannot be negative", ErrInvalidConfig)
	}
	return nil
}

// WithEntryPoint sets the entry function name.
func (c *Config) WithEntryPoint(name string) *Config {
	c.EntryPoint = name
	return c
}

// WithMaxCallDepth sets the call depth limit.
func (c *Config) WithMaxCallDepth(depth int) *Config {
	c.MaxCallDepth = depth
	return c
}

// WithTraceCalls enables or disables per-invocation debug logging.
func (c *Config) WithTraceCalls(enabled bool) *Config {
	c.TraceCalls = enabled
	return c
}
