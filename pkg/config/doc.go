// Package config provides configuration management for the Callisto
// toolchain.
//
// This package handles loading and validating configuration from YAML
// files with environment variable overrides.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("callisto.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("callisto.yaml")
//
// Passing an empty path to LoadConfigWithEnvOverrides starts from
// DefaultConfig, so the CLI works without any configuration file.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention CALLISTO_SECTION_FIELD.
// For example:
//
//   - CALLISTO_INTERPRETER_ENTRY_POINT overrides interpreter.entry_point
//   - CALLISTO_DIAGNOSTICS_DIR overrides diagnostics.dir
//   - CALLISTO_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
//	interpreter:
//	  entry_point: start
//	  max_call_depth: 1000
//	diagnostics:
//	  dir: ./debug
//	  format: json
//	schedule:
//	  cron: "*/5 * * * *"
//	telemetry:
//	  logging:
//	    level: debug
//	    format: json
//	  metrics:
//	    textfile: /var/lib/node_exporter/callisto.prom
package config
