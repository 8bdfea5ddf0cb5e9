package config

import "time"

// Default values for configuration fields.
const (
	// Interpreter defaults
	DefaultEntryPoint   = "start"
	DefaultMaxCallDepth = 0

	// Source defaults
	DefaultSourceExtension   = ".cal"
	DefaultSourceMaxFileSize = int64(1 << 20) // 1MiB

	// Diagnostics defaults
	DefaultDiagnosticsEnabled = true
	DefaultDiagnosticsDir     = "./debug"
	DefaultDiagnosticsFormat  = "text"

	// Watch defaults
	DefaultWatchDebounce = 100 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "text"
	DefaultMetricsEnabled     = true
	DefaultMetricsNamespace   = "callisto"
	DefaultMetricsSubsystem   = "interpreter"
	DefaultTracingEnabled     = false
	DefaultTracingSampler     = "ratio"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingServiceName = "callisto"
	DefaultOTLPInsecure       = true
	DefaultOTLPTimeout        = 10 * time.Second
)

// DefaultStageDurationBuckets are the histogram buckets used for pipeline
// stage durations when none are configured.
var DefaultStageDurationBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// DefaultConfig returns a configuration with every field at its default.
// It is used when no configuration file is given and as the base that a
// YAML file is decoded over, so booleans that default to true survive
// files that leave them out.
func DefaultConfig() *Config {
	cfg := &Config{
		Diagnostics: DiagnosticsConfig{Enabled: DefaultDiagnosticsEnabled},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
			Tracing: TracingConfig{
				Enabled: DefaultTracingEnabled,
				OTLP:    OTLPConfig{Insecure: DefaultOTLPInsecure},
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every zero-valued field that has a non-zero default.
// It is idempotent and never overrides a value that is already set.
func ApplyDefaults(cfg *Config) {
	// Interpreter defaults
	if cfg.Interpreter.EntryPoint == "" {
		cfg.Interpreter.EntryPoint = DefaultEntryPoint
	}

	// Source defaults
	if cfg.Source.Extension == "" {
		cfg.Source.Extension = DefaultSourceExtension
	}
	if cfg.Source.MaxFileSize == 0 {
		cfg.Source.MaxFileSize = DefaultSourceMaxFileSize
	}

	// Diagnostics defaults
	if cfg.Diagnostics.Dir == "" {
		cfg.Diagnostics.Dir = DefaultDiagnosticsDir
	}
	if cfg.Diagnostics.Format == "" {
		cfg.Diagnostics.Format = DefaultDiagnosticsFormat
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.StageDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.StageDurationBuckets = append([]float64(nil), DefaultStageDurationBuckets...)
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Telemetry.Tracing.OTLP.Timeout == 0 {
		cfg.Telemetry.Tracing.OTLP.Timeout = DefaultOTLPTimeout
	}
}
