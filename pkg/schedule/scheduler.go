package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled run of a program.
type Job func(ctx context.Context) error

// Scheduler runs a job on a cron schedule. A run still in progress when the
// next one is due causes that one to be skipped, so program output never
// interleaves.
type Scheduler struct {
	spec   string
	job    Job
	cron   *cron.Cron
	logger *slog.Logger

	mu      sync.Mutex
	running bool

	runs     atomic.Int64
	failures atomic.Int64
}

// NewScheduler creates a scheduler for the standard five-field cron
// expression spec.
//
// Common cron expressions:
//   - "*/5 * * * *" - Every five minutes
//   - "0 * * * *"   - Hourly
//   - "@every 30s"  - Every thirty seconds
func NewScheduler(spec string, job Job, logger *slog.Logger) (*Scheduler, error) {
	if job == nil {
		return nil, fmt.Errorf("job cannot be nil")
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "schedule")

	cl := cronLogger{logger: logger}
	return &Scheduler{
		spec: spec,
		job:  job,
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
	}, nil
}

// Start begins running the job on schedule. The scheduler stops by itself
// when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	_, err := s.cron.AddFunc(s.spec, func() {
		s.runJob(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.InfoContext(ctx, "scheduler started", "schedule", s.spec)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Run starts the scheduler, optionally runs the job once straight away,
// and blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, immediately bool) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	if immediately {
		s.runJob(ctx)
	}
	<-ctx.Done()
	s.Stop()
	return nil
}

func (s *Scheduler) runJob(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	n := s.runs.Add(1)
	start := time.Now()
	s.logger.DebugContext(ctx, "scheduled run starting", "run", n)

	if err := s.job(ctx); err != nil {
		s.failures.Add(1)
		s.logger.ErrorContext(ctx, "scheduled run failed",
			"run", n,
			"error", err,
			"duration", time.Since(start),
		)
		return
	}

	s.logger.InfoContext(ctx, "scheduled run completed",
		"run", n,
		"duration", time.Since(start),
	)
}

// Stop stops the scheduler and waits for a running job to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		done := s.cron.Stop()
		<-done.Done()
		s.running = false
		s.logger.Info("scheduler stopped",
			"runs", s.runs.Load(),
			"failures", s.failures.Load(),
		)
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// Runs returns how many times the job has run, and how many of those runs
// failed.
func (s *Scheduler) Runs() (total, failed int64) {
	return s.runs.Load(), s.failures.Load()
}

// NextRun returns the next scheduled run time, or nil before Start.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}

// cronLogger routes the cron library's logging through slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
