package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"mercator-hq/callisto/pkg/builtins"
	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/runner"
	"mercator-hq/callisto/pkg/source"
)

var runFlags struct {
	watch       bool
	entry       string
	dumpDir     string
	metricsFile string
	maxDepth    int
	traceCalls  bool
	noDumps     bool
}

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Run a Callisto program",
	Long: `Run a Callisto program: load, tokenize, parse and evaluate it.

The program reads from stdin and writes to stdout; logs go to stderr. When a
run fails, the tokens and (if parsing succeeded) the syntax tree are dumped
into the diagnostics directory.

Examples:
  # Run a program
  callisto run hello.cal

  # Start from a different function
  callisto run hello.cal --entry main

  # Re-run on every save
  callisto run hello.cal --watch

  # Export Prometheus metrics for the node exporter's textfile collector
  callisto run job.cal --metrics-file /var/lib/node_exporter/callisto.prom`,
	Args: cobra.ExactArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&runFlags.watch, "watch", "w", false, "re-run whenever the file changes")
	runCmd.Flags().StringVarP(&runFlags.entry, "entry", "e", "", "override the entry-point function")
	runCmd.Flags().StringVar(&runFlags.dumpDir, "dump-dir", "", "override the diagnostics directory")
	runCmd.Flags().StringVar(&runFlags.metricsFile, "metrics-file", "", "write metrics to this file after each run")
	runCmd.Flags().IntVar(&runFlags.maxDepth, "max-depth", -1, "override the maximum call depth (0 for unbounded)")
	runCmd.Flags().BoolVar(&runFlags.traceCalls, "trace-calls", false, "log every function invocation at debug level")
	runCmd.Flags().BoolVar(&runFlags.noDumps, "no-dumps", false, "do not write diagnostics dumps on failure")
}

func runProgram(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply flag overrides
	if runFlags.entry != "" {
		cfg.Interpreter.EntryPoint = runFlags.entry
	}
	if runFlags.maxDepth >= 0 {
		cfg.Interpreter.MaxCallDepth = runFlags.maxDepth
	}
	if runFlags.traceCalls {
		cfg.Interpreter.TraceCalls = true
	}
	if runFlags.dumpDir != "" {
		cfg.Diagnostics.Dir = runFlags.dumpDir
	}
	if runFlags.noDumps {
		cfg.Diagnostics.Enabled = false
	}
	if runFlags.metricsFile != "" {
		cfg.Telemetry.Metrics.Textfile = runFlags.metricsFile
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	ctx, s, err := newSetup(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.close()

	r, err := runner.New(runner.Options{
		Config: cfg,
		Logger: s.logger,
		Tracer: s.tracer,
		IO:     builtins.IO{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()},
	})
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	once := func(ctx context.Context) error {
		_, err := r.Run(ctx, path)
		if exportErr := r.ExportMetrics(); exportErr != nil {
			s.logger.WarnContext(ctx, "metrics export failed", "error", exportErr)
		}
		return err
	}

	if !runFlags.watch {
		return once(ctx)
	}

	// Watch mode: failures are reported and the watcher keeps going.
	report := func(ctx context.Context) error {
		if err := once(ctx); err != nil && ctx.Err() == nil {
			printError(cmd.ErrOrStderr(), err)
		}
		return nil
	}

	if err := report(ctx); err != nil {
		return err
	}

	watcher, err := source.NewFileWatcher(&source.FileWatcherConfig{
		Path:             path,
		DebounceInterval: cfg.Watch.Debounce,
	}, s.logger.Slog())
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer watcher.Stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", path)

	if err := watcher.Watch(ctx, report); err != nil {
		return cli.NewCommandError("run", err)
	}
	return nil
}
