package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	calerrors "mercator-hq/callisto/pkg/cal/errors"
	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/telemetry/logging"
	"mercator-hq/callisto/pkg/telemetry/tracing"
)

var (
	// Global flags
	cfgFile   string
	verbose   bool
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "callisto",
	Short: "Callisto - run programs in a small indentation-delimited language",
	Long: `Callisto tokenizes, parses and evaluates programs written in Callisto, a small
imperative language whose blocks are delimited by indentation.

A program is a set of functions. Running it calls the entry-point function
(start by default), which takes no parameters.

Configuration is read from the file named by --config, if any, and can be
overridden with CALLISTO_* environment variables.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a status derived from the
// returned error.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		printError(os.Stderr, err)
	}
	os.Exit(cli.ExitCode(err))
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults apply when unset)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "override log format (text, json, console)")
}

// printError reports a command failure. Language errors are printed as-is,
// since they already name the file and quote the source.
func printError(w io.Writer, err error) {
	if e, ok := calerrors.As(err); ok {
		fmt.Fprintln(w, e)
		return
	}
	fmt.Fprintln(w, "Error:", err)
}

// loadConfig loads the configuration file and environment overrides, then
// applies the global logging flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("config", fmt.Sprintf("failed to load config: %v", err))
	}

	if logLevel != "" {
		cfg.Telemetry.Logging.Level = logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if logFormat != "" {
		cfg.Telemetry.Logging.Format = logFormat
	}

	return cfg, nil
}

// setup holds what every pipeline command needs.
type setup struct {
	cfg    *config.Config
	logger *logging.Logger
	tracer *tracing.Tracer
}

// newSetup loads configuration and creates the logger and tracer. A
// TRACEPARENT in the environment becomes the parent of the command's spans.
func newSetup(ctx context.Context, cfg *config.Config) (context.Context, *setup, error) {
	lcfg := logging.FromConfig(cfg.Telemetry.Logging)
	logger, err := logging.New(lcfg)
	if err != nil {
		return ctx, nil, cli.NewConfigError("telemetry.logging", err.Error())
	}

	ctx = tracing.ExtractFromEnv(ctx)
	tracer, err := tracing.New(ctx, &cfg.Telemetry.Tracing, Version)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
		tracer = tracing.Noop()
	}

	return ctx, &setup{cfg: cfg, logger: logger, tracer: tracer}, nil
}

// close flushes spans and log output.
func (s *setup) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.tracer.Shutdown(ctx); err != nil {
		s.logger.Warn("failed to flush traces", "error", err)
	}
	_ = s.logger.Shutdown()
}
