package interpreter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mercator-hq/callisto/pkg/cal/ast"
	calerrors "mercator-hq/callisto/pkg/cal/errors"
	"mercator-hq/callisto/pkg/cal/token"
	"mercator-hq/callisto/pkg/runtime"
)

// Observer is notified as evaluation proceeds. Metrics collectors
// implement it.
type Observer interface {
	// ObserveCall records one invocation of a user function or built-in.
	ObserveCall(function string, builtin bool)

	// ObserveStatement records one executed statement.
	ObserveStatement(kind ast.NodeKind)
}

type nopObserver struct{}

func (nopObserver) ObserveCall(string, bool)       {}
func (nopObserver) ObserveStatement(ast.NodeKind) {}

// Stats summarizes the last run.
type Stats struct {
	Calls        int
	BuiltinCalls int
	Statements   int
	MaxDepth     int
	Duration     time.Duration
}

// Interpreter evaluates a parsed program. It is not safe for concurrent use;
// create one per goroutine.
type Interpreter struct {
	// program holds the user functions
	program *ast.Program

	// builtins resolves native functions
	builtins runtime.Registry

	// config contains evaluator configuration
	config *Config

	// logger for structured logging
	logger *slog.Logger

	// observer receives call and statement events
	observer Observer

	depth int
	stats Stats
}

// New creates an interpreter for program. User functions may not reuse a
// built-in's name.
func New(program *ast.Program, builtins runtime.Registry, config *Config, logger *slog.Logger) (*Interpreter, error) {
	if program == nil {
		return nil, fmt.Errorf("program cannot be nil")
	}
	if builtins == nil {
		return nil, fmt.Errorf("builtin registry cannot be nil")
	}

	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	for _, name := range program.Order {
		if _, ok := builtins.Lookup(name); ok {
			fn := program.Functions[name]
			return nil, calerrors.Newf(calerrors.KindName, fn.Pos, name,
				"function %q redefines a built-in", name)
		}
	}

	return &Interpreter{
		program:  program,
		builtins: builtins,
		config:   config,
		logger:   logger,
		observer: nopObserver{},
	}, nil
}

// WithObserver attaches an observer.
func (in *Interpreter) WithObserver(o Observer) *Interpreter {
	if o == nil {
		o = nopObserver{}
	}
	in.observer = o
	return in
}

// Stats returns counters for the most recent Run.
func (in *Interpreter) Stats() Stats {
	return in.stats
}

// Run invokes the entry-point function with no arguments. It stops at the
// first language error, or when ctx is cancelled.
func (in *Interpreter) Run(ctx context.Context) error {
	in.depth = 0
	in.stats = Stats{}
	start := time.Now()
	defer func() { in.stats.Duration = time.Since(start) }()

	entry, ok := in.program.Function(in.config.EntryPoint)
	if !ok {
		err := calerrors.Newf(calerrors.KindName, token.Pos{}, in.config.EntryPoint,
			"entry point %q is not defined", in.config.EntryPoint)
		err.Suggestion = calerrors.Suggest(in.config.EntryPoint, in.program.Names())
		return err
	}
	if entry.Arity() != 0 {
		return calerrors.Newf(calerrors.KindName, entry.Pos, entry.Name,
			"entry point %q must take no parameters, it declares %d", entry.Name, entry.Arity())
	}

	in.logger.InfoContext(ctx, "program started",
		"entry", entry.Name,
		"functions", len(in.program.Functions),
	)

	_, err := in.invoke(ctx, entry, nil, entry.Pos)

	in.logger.InfoContext(ctx, "program finished",
		"entry", entry.Name,
		"calls", in.stats.Calls,
		"builtin_calls", in.stats.BuiltinCalls,
		"statements", in.stats.Statements,
		"max_depth", in.stats.MaxDepth,
		"duration", time.Since(start),
		"error", err != nil,
	)
	return err
}

// runtimeError positions a value-model failure as a language error.
func runtimeError(pos token.Pos, construct string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := calerrors.As(err); ok {
		return err
	}

	kind := calerrors.KindIO
	switch {
	case errors.Is(err, runtime.ErrKindMismatch),
		errors.Is(err, runtime.ErrUndefinedOperator),
		errors.Is(err, runtime.ErrInvalidLiteral):
		kind = calerrors.KindType
	case errors.Is(err, runtime.ErrOutOfRange):
		kind = calerrors.KindRange
	case errors.Is(err, runtime.ErrDivisionByZero):
		kind = calerrors.KindArithmetic
	}
	return calerrors.New(kind, pos, construct, err.Error())
}

// interrupted reports a cancelled context with the line it was noticed on.
func interrupted(ctx context.Context, pos token.Pos) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("evaluation interrupted at line %d: %w", pos.Line, err)
	}
	return nil
}
