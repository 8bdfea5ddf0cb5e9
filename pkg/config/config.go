package config

import "time"

// Config is the root configuration structure for the Callisto toolchain.
// It contains the settings for evaluation, source loading, failure
// diagnostics, watch mode, scheduled runs, and telemetry.
type Config struct {
	// Interpreter contains evaluation settings such as the entry point and
	// the call depth limit.
	Interpreter InterpreterConfig `yaml:"interpreter"`

	// Source contains settings for loading program files.
	Source SourceConfig `yaml:"source"`

	// Diagnostics controls the token and AST dumps written after a failed run.
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`

	// Watch contains settings for re-running a program when its file changes.
	Watch WatchConfig `yaml:"watch"`

	// Schedule contains settings for cron-driven runs.
	Schedule ScheduleConfig `yaml:"schedule"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// InterpreterConfig contains evaluation settings.
type InterpreterConfig struct {
	// EntryPoint is the function a run starts at.
	// Default: "start"
	EntryPoint string `yaml:"entry_point"`

	// MaxCallDepth bounds nested user function calls. Zero means unbounded.
	// Default: 0
	MaxCallDepth int `yaml:"max_call_depth"`

	// TraceCalls logs every invocation at debug level.
	// Default: false
	TraceCalls bool `yaml:"trace_calls"`
}

// SourceConfig contains settings for loading program files.
type SourceConfig struct {
	// Extension is the required file extension, including the dot.
	// Default: ".cal"
	Extension string `yaml:"extension"`

	// MaxFileSize is the largest program file accepted, in bytes.
	// Default: 1048576 (1 MiB)
	MaxFileSize int64 `yaml:"max_file_size"`
}

// DiagnosticsConfig controls failure dumps.
type DiagnosticsConfig struct {
	// Enabled controls whether dumps are written when a run fails.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Dir is the directory dumps are written into.
	// Default: "./debug"
	Dir string `yaml:"dir"`

	// Format is the token dump format.
	// Options: "text", "json"
	// Default: "text"
	Format string `yaml:"format"`
}

// WatchConfig contains watch mode settings.
type WatchConfig struct {
	// Debounce is how long the watcher waits for writes to settle before
	// re-running the program.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`
}

// ScheduleConfig contains settings for cron-driven runs.
type ScheduleConfig struct {
	// Cron is a standard five-field cron expression. Empty disables
	// scheduling unless one is given on the command line.
	Cron string `yaml:"cron"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "callisto"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "interpreter"
	Subsystem string `yaml:"subsystem"`

	// Textfile is where metrics are written in Prometheus text format after
	// each run, for pickup by a node exporter. Empty disables the export.
	Textfile string `yaml:"textfile"`

	// StageDurationBuckets defines histogram buckets for pipeline stage
	// duration (seconds).
	// Default: [0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5]
	StageDurationBuckets []float64 `yaml:"stage_duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP collector endpoint, e.g. "localhost:4317".
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "callisto"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter specific configuration.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS for OTLP connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
