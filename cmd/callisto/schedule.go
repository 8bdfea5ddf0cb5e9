package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"mercator-hq/callisto/pkg/builtins"
	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/runner"
	"mercator-hq/callisto/pkg/schedule"
)

var scheduleFlags struct {
	cron        string
	metricsAddr string
	now         bool
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule FILE",
	Short: "Run a program on a cron schedule",
	Long: `Run a program repeatedly on a cron schedule until interrupted.

The schedule is a standard five-field cron expression or a descriptor such as
"@hourly" or "@every 30s". It defaults to schedule.cron from the config file.
A run that is still going when the next one is due causes that one to be
skipped. Failed runs are reported and the schedule continues.

Examples:
  # Every five minutes
  callisto schedule report.cal --cron "*/5 * * * *"

  # Run once now, then hourly, serving Prometheus metrics
  callisto schedule report.cal --cron @hourly --now --metrics-addr :9090`,
	Args: cobra.ExactArgs(1),
	RunE: scheduleProgram,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVar(&scheduleFlags.cron, "cron", "", "cron expression (overrides schedule.cron)")
	scheduleCmd.Flags().StringVar(&scheduleFlags.metricsAddr, "metrics-addr", "", "serve /metrics on this address")
	scheduleCmd.Flags().BoolVar(&scheduleFlags.now, "now", false, "run once immediately before the first scheduled run")
}

func scheduleProgram(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if scheduleFlags.cron != "" {
		cfg.Schedule.Cron = scheduleFlags.cron
	}
	if cfg.Schedule.Cron == "" {
		return cli.NewConfigError("schedule.cron", "a cron expression is required (--cron or schedule.cron)")
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
		return cli.NewCommandError("schedule", err)
	}

	sched, err := schedule.NewScheduler(cfg.Schedule.Cron, func(ctx context.Context) error {
		_, err := r.Run(ctx, path)
		if exportErr := r.ExportMetrics(); exportErr != nil {
			s.logger.WarnContext(ctx, "metrics export failed", "error", exportErr)
		}
		if err != nil && ctx.Err() == nil {
			printError(cmd.ErrOrStderr(), err)
		}
		return err
	}, s.logger.Slog())
	if err != nil {
		return cli.NewConfigError("schedule.cron", err.Error())
	}

	if scheduleFlags.metricsAddr != "" {
		srv := &http.Server{
			Addr:              scheduleFlags.metricsAddr,
			Handler:           metricsMux(r),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		s.logger.Info("serving metrics", "address", scheduleFlags.metricsAddr)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Running %s on schedule %q (Ctrl+C to stop)\n", path, cfg.Schedule.Cron)

	if err := sched.Run(ctx, scheduleFlags.now); err != nil {
		return cli.NewCommandError("schedule", err)
	}

	total, failed := sched.Runs()
	fmt.Fprintf(cmd.ErrOrStderr(), "Stopped after %d run(s), %d failed\n", total, failed)
	return nil
}

func metricsMux(r *runner.Runner) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Collector().Handler())
	return mux
}
