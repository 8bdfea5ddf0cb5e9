package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mercator-hq/callisto/pkg/builtins"
	"mercator-hq/callisto/pkg/cal/ast"
	calerrors "mercator-hq/callisto/pkg/cal/errors"
	"mercator-hq/callisto/pkg/cal/lexer"
	"mercator-hq/callisto/pkg/cal/parser"
	"mercator-hq/callisto/pkg/cal/token"
	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/diagnostics"
	"mercator-hq/callisto/pkg/interpreter"
	"mercator-hq/callisto/pkg/source"
	"mercator-hq/callisto/pkg/telemetry/logging"
	"mercator-hq/callisto/pkg/telemetry/metrics"
	"mercator-hq/callisto/pkg/telemetry/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// The collector counts evaluation call by call.
var _ interpreter.Observer = (*metrics.Collector)(nil)

// excerptLines is how many lines around a language error are quoted.
const excerptLines = 2

// Error kinds recorded for failures that are not language errors.
const (
	kindInterrupted = "interrupted"
	kindInternal    = "internal"
)

// Options configures a Runner. Config is required; every other field has a
// usable zero value.
type Options struct {
	// Config is the loaded configuration.
	Config *config.Config

	// Logger receives pipeline logs. Nil creates one from Config.
	Logger *logging.Logger

	// Collector records metrics. Nil creates one from Config.
	Collector *metrics.Collector

	// Tracer creates spans. Nil uses a no-op tracer.
	Tracer *tracing.Tracer

	// IO is the terminal the program talks to. The zero value uses the
	// process's standard streams.
	IO builtins.IO

	// Builtins adds registry options, such as a fixed random seed.
	Builtins []builtins.Option
}

// Runner drives the load, tokenize, parse and evaluate pipeline for program
// files. A Runner may be reused for many runs but runs one file at a time.
type Runner struct {
	config    *config.Config
	loader    *source.Loader
	logger    *logging.Logger
	collector *metrics.Collector
	tracer    *tracing.Tracer
	dumper    *diagnostics.Dumper
	io        builtins.IO
	opts      []builtins.Option
}

// New creates a runner.
func New(opts Options) (*Runner, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	cfg := opts.Config

	logger := opts.Logger
	if logger == nil {
		var err error
		logger, err = logging.New(logging.FromConfig(cfg.Telemetry.Logging))
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	collector := opts.Collector
	if collector == nil {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer = tracing.Noop()
	}

	dumper, err := diagnostics.NewDumper(&cfg.Diagnostics, logger.Slog())
	if err != nil {
		return nil, fmt.Errorf("invalid diagnostics settings: %w", err)
	}

	stdio := opts.IO
	if stdio.In == nil || stdio.Out == nil {
		std := builtins.StdIO()
		if stdio.In == nil {
			stdio.In = std.In
		}
		if stdio.Out == nil {
			stdio.Out = std.Out
		}
	}

	loader := source.NewLoader(&source.Config{
		Extension:   cfg.Source.Extension,
		MaxFileSize: cfg.Source.MaxFileSize,
	}, logger.Slog())

	return &Runner{
		config:    cfg,
		loader:    loader,
		logger:    logger,
		collector: collector,
		tracer:    tracer,
		dumper:    dumper,
		io:        stdio,
		opts:      opts.Builtins,
	}, nil
}

// Collector returns the runner's metrics collector.
func (r *Runner) Collector() *metrics.Collector {
	return r.collector
}

// Loader returns the runner's source loader.
func (r *Runner) Loader() *source.Loader {
	return r.loader
}

// Result describes one pass through the pipeline. Fields are filled as far
// as the pipeline got, so a failed parse still carries its tokens.
type Result struct {
	RunID    string
	File     string
	Source   *source.Source
	Tokens   []token.Token
	Program  *ast.Program
	Stats    interpreter.Stats
	Dumps    []string
	Duration time.Duration

	// Stage is the last stage entered; on failure, the one that failed.
	Stage string
}

// Run loads, tokenizes, parses and evaluates the program at path. On
// failure, diagnostics are dumped when enabled and the returned error is
// the stage's error with file name and source excerpt attached.
func (r *Runner) Run(ctx context.Context, path string) (*Result, error) {
	return r.execute(ctx, path, true)
}

// Check loads, tokenizes and parses the program at path without running it.
// It writes no diagnostics dumps.
func (r *Runner) Check(ctx context.Context, path string) (*Result, error) {
	return r.execute(ctx, path, false)
}

func (r *Runner) execute(ctx context.Context, path string, evaluate bool) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.New().String(), File: path}

	ctx = logging.WithRunID(ctx, res.RunID)
	ctx = logging.WithFile(ctx, path)

	spanName := "callisto.check"
	if evaluate {
		spanName = "callisto.run"
	}
	ctx, span := r.tracer.Start(ctx, spanName)
	defer span.End()
	tracing.SetRunAttributes(span, res.RunID, path, r.config.Interpreter.EntryPoint)
	if sc := span.SpanContext(); sc.IsValid() {
		ctx = logging.WithTraceID(ctx, sc.TraceID().String())
	}

	r.logger.InfoContext(ctx, "pipeline started", "evaluate", evaluate)

	err := r.pipeline(ctx, res, evaluate)
	res.Duration = time.Since(start)

	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
		kind := errorKind(err)
		r.collector.RecordError(kind)

		line := 0
		if e, ok := calerrors.As(err); ok {
			line = e.Line()
		}
		tracing.SetLanguageError(span, err, kind, line)

		if evaluate {
			res.Dumps = r.dump(ctx, res)
		}

		r.logger.ErrorContext(ctx, "pipeline failed",
			"stage", res.Stage,
			"kind", kind,
			"line", line,
			"duration", res.Duration,
		)
	} else {
		tracing.SetStatus(span, nil)
		r.logger.InfoContext(ctx, "pipeline finished",
			"duration", res.Duration,
			"statements", res.Stats.Statements,
			"calls", res.Stats.Calls,
		)
	}

	if evaluate {
		r.collector.RecordRun(status, res.Duration)
	}

	return res, err
}

func (r *Runner) pipeline(ctx context.Context, res *Result, evaluate bool) error {
	err := r.stage(ctx, res, metrics.StageLoad, func(ctx context.Context, span trace.Span) error {
		src, err := r.loader.Load(ctx, res.File)
		if err != nil {
			return calerrors.New(calerrors.KindIO, token.Pos{}, res.File, err.Error())
		}
		res.Source = src
		r.collector.RecordSource(src.Size(), len(src.Lines))
		tracing.NewAttributeBuilder().WithSource(src.Size(), len(src.Lines)).Apply(span)
		return nil
	})
	if err != nil {
		return err
	}

	err = r.stage(ctx, res, metrics.StageTokenize, func(ctx context.Context, span trace.Span) error {
		lx := lexer.New()
		toks, err := lx.Tokenize(res.Source.Lines)
		if err != nil {
			res.Tokens = lx.Tokens()
			return err
		}
		res.Tokens = toks
		tracing.NewAttributeBuilder().WithTokens(len(toks)).Apply(span)
		return nil
	})
	if err != nil {
		return r.locate(err, res)
	}

	err = r.stage(ctx, res, metrics.StageParse, func(ctx context.Context, span trace.Span) error {
		prog, err := parser.NewParser().WithFile(res.File).Parse(res.Tokens)
		if err != nil {
			return err
		}
		res.Program = prog
		tracing.NewAttributeBuilder().WithFunctions(len(prog.Functions)).Apply(span)
		return nil
	})
	if err != nil || !evaluate {
		return r.locate(err, res)
	}

	err = r.stage(ctx, res, metrics.StageEvaluate, func(ctx context.Context, span trace.Span) error {
		icfg := interpreter.DefaultConfig().
			WithEntryPoint(r.config.Interpreter.EntryPoint).
			WithMaxCallDepth(r.config.Interpreter.MaxCallDepth).
			WithTraceCalls(r.config.Interpreter.TraceCalls)

		in, err := interpreter.New(res.Program, builtins.NewRegistry(r.io, r.opts...), icfg, r.logger.Slog())
		if err != nil {
			return err
		}
		in.WithObserver(r.collector)

		err = in.Run(ctx)
		res.Stats = in.Stats()
		r.collector.RecordCallDepth(res.Stats.MaxDepth)
		tracing.NewAttributeBuilder().
			WithEvaluation(res.Stats.Statements, res.Stats.Calls+res.Stats.BuiltinCalls, res.Stats.MaxDepth).
			Apply(span)
		return err
	})
	return r.locate(err, res)
}

// stage runs fn inside a child span and records its duration.
func (r *Runner) stage(ctx context.Context, res *Result, name string, fn func(context.Context, trace.Span) error) error {
	res.Stage = name

	ctx, span := r.tracer.Start(ctx, "callisto."+name)
	defer span.End()

	start := time.Now()
	err := fn(ctx, span)
	elapsed := time.Since(start)

	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	r.collector.RecordStage(name, status, elapsed)
	tracing.SetStatus(span, err)

	r.logger.DebugContext(ctx, "stage finished",
		"stage", name,
		"status", status,
		"duration", elapsed,
	)
	return err
}

// locate attaches the file name and a source excerpt to a language error.
func (r *Runner) locate(err error, res *Result) error {
	if err == nil {
		return nil
	}
	e, ok := calerrors.As(err)
	if !ok {
		return err
	}
	if e.File == "" {
		e.File = res.File
	}
	if res.Source != nil && e.Context == "" && e.Pos.Line > 0 {
		e = calerrors.WithContext(e, res.Source.Lines, excerptLines)
	}
	return e
}

func (r *Runner) dump(ctx context.Context, res *Result) []string {
	if r.dumper == nil || res.Tokens == nil {
		return nil
	}
	paths, err := r.dumper.Dump(ctx, res.RunID, res.Tokens, res.Program)
	if err != nil {
		r.logger.WarnContext(ctx, "failed to write diagnostics", "error", err)
	}
	return paths
}

// ExportMetrics writes the collector's metrics to the configured textfile.
// It does nothing when no textfile is configured.
func (r *Runner) ExportMetrics() error {
	path := r.config.Telemetry.Metrics.Textfile
	if path == "" || !r.config.Telemetry.Metrics.Enabled {
		return nil
	}
	if err := r.collector.WriteTextfile(path); err != nil {
		return fmt.Errorf("failed to export metrics: %w", err)
	}
	return nil
}

func errorKind(err error) string {
	if kind := calerrors.KindOf(err); kind != "" {
		return string(kind)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return kindInterrupted
	}
	return kindInternal
}
