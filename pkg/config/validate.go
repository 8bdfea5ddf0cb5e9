package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "source.extension").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All validation errors are collected and
// returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateInterpreter(&cfg.Interpreter)...)
	errs = append(errs, validateSource(&cfg.Source)...)
	errs = append(errs, validateDiagnostics(&cfg.Diagnostics)...)
	errs = append(errs, validateWatch(&cfg.Watch)...)
	errs = append(errs, validateSchedule(&cfg.Schedule)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateInterpreter(cfg *InterpreterConfig) []FieldError {
	var errs []FieldError

	if cfg.EntryPoint == "" {
		errs = append(errs, FieldError{
			Field:   "interpreter.entry_point",
			Message: "entry point is required",
		})
	}
	if cfg.MaxCallDepth < 0 {
		errs = append(errs, FieldError{
			Field:   "interpreter.max_call_depth",
			Message: "max call depth must be non-negative",
		})
	}

	return errs
}

func validateSource(cfg *SourceConfig) []FieldError {
	var errs []FieldError

	if !strings.HasPrefix(cfg.Extension, ".") {
		errs = append(errs, FieldError{
			Field:   "source.extension",
			Message: fmt.Sprintf("extension %q must start with a dot", cfg.Extension),
		})
	}
	if cfg.MaxFileSize <= 0 {
		errs = append(errs, FieldError{
			Field:   "source.max_file_size",
			Message: "max file size must be positive",
		})
	}

	return errs
}

func validateDiagnostics(cfg *DiagnosticsConfig) []FieldError {
	var errs []FieldError

	if cfg.Enabled && cfg.Dir == "" {
		errs = append(errs, FieldError{
			Field:   "diagnostics.dir",
			Message: "dump directory is required when diagnostics are enabled",
		})
	}
	if cfg.Format != "text" && cfg.Format != "json" {
		errs = append(errs, FieldError{
			Field:   "diagnostics.format",
			Message: fmt.Sprintf("invalid format %q: must be 'text' or 'json'", cfg.Format),
		})
	}

	return errs
}

func validateWatch(cfg *WatchConfig) []FieldError {
	if cfg.Debounce < 0 {
		return []FieldError{{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		}}
	}
	return nil
}

func validateSchedule(cfg *ScheduleConfig) []FieldError {
	if cfg.Cron == "" {
		return nil
	}
	if _, err := cron.ParseStandard(cfg.Cron); err != nil {
		return []FieldError{{
			Field:   "schedule.cron",
			Message: fmt.Sprintf("invalid cron expression %q: %v", cfg.Cron, err),
		}}
	}
	return nil
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	// Validate logging level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if cfg.Logging.Level == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: "logging level is required",
		})
	} else if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	// Validate logging format
	validFormats := map[string]bool{"json": true, "text": true, "console": true}
	if cfg.Logging.Format == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: "logging format is required",
		})
	} else if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json', 'text', or 'console'", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Namespace == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.namespace",
			Message: "metrics namespace is required when metrics are enabled",
		})
	}
	for i := 1; i < len(cfg.Metrics.StageDurationBuckets); i++ {
		if cfg.Metrics.StageDurationBuckets[i] <= cfg.Metrics.StageDurationBuckets[i-1] {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.stage_duration_buckets",
				Message: "buckets must be strictly increasing",
			})
			break
		}
	}

	// Validate tracing configuration
	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.endpoint",
			Message: "tracing endpoint is required when tracing is enabled",
		})
	}
	validSamplers := map[string]bool{"always": true, "never": true, "ratio": true}
	if !validSamplers[cfg.Tracing.Sampler] {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sampler",
			Message: fmt.Sprintf("invalid sampler %q: must be 'always', 'never', or 'ratio'", cfg.Tracing.Sampler),
		})
	}
	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1.0 {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sample_ratio",
			Message: "sample ratio must be between 0.0 and 1.0",
		})
	}

	return errs
}
