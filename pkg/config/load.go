package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix shared by every environment variable override.
const EnvPrefix = "CALLISTO_"

// LoadConfig loads configuration from a YAML file at the specified path.
// The file is decoded over DefaultConfig, remaining zero fields get their
// defaults, and the result is validated. Environment variables are not
// consulted; use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention CALLISTO_SECTION_FIELD (e.g., CALLISTO_INTERPRETER_ENTRY_POINT)
// and always take precedence over the file.
//
// An empty path skips the file and starts from DefaultConfig.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = DefaultConfig()
	} else {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Values that fail to parse are ignored.
func applyEnvOverrides(cfg *Config) {
	// Interpreter overrides
	envString("INTERPRETER_ENTRY_POINT", &cfg.Interpreter.EntryPoint)
	if val := os.Getenv(EnvPrefix + "INTERPRETER_MAX_CALL_DEPTH"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Interpreter.MaxCallDepth = i
		}
	}

	// Source overrides
	envString("SOURCE_EXTENSION", &cfg.Source.Extension)
	if val := os.Getenv(EnvPrefix + "SOURCE_MAX_FILE_SIZE"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Source.MaxFileSize = i
		}
	}

	// Diagnostics overrides
	envBool("DIAGNOSTICS_ENABLED", &cfg.Diagnostics.Enabled)
	envString("DIAGNOSTICS_DIR", &cfg.Diagnostics.Dir)
	envString("DIAGNOSTICS_FORMAT", &cfg.Diagnostics.Format)

	// Watch overrides
	if val := os.Getenv(EnvPrefix + "WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Watch.Debounce = d
		}
	}

	// Schedule overrides
	envString("SCHEDULE_CRON", &cfg.Schedule.Cron)

	// Telemetry overrides
	envString("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	envString("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	envBool("TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	envString("TELEMETRY_METRICS_TEXTFILE", &cfg.Telemetry.Metrics.Textfile)
	envBool("TELEMETRY_TRACING_ENABLED", &cfg.Telemetry.Tracing.Enabled)
	envString("TELEMETRY_TRACING_ENDPOINT", &cfg.Telemetry.Tracing.Endpoint)
	if val := os.Getenv(EnvPrefix + "TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
}

func envString(name string, dst *string) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		*dst = val
	}
}

func envBool(name string, dst *bool) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}
