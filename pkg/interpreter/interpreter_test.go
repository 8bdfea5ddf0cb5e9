package interpreter

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"mercator-hq/callisto/pkg/builtins"
	"mercator-hq/callisto/pkg/cal/ast"
	calerrors "mercator-hq/callisto/pkg/cal/errors"
	"mercator-hq/callisto/pkg/cal/lexer"
	"mercator-hq/callisto/pkg/cal/parser"
	"mercator-hq/callisto/pkg/runtime"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := lexer.Tokenize(strings.Split(src, "\n"))
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return prog
}

func newInterpreter(t *testing.T, src, input string, cfg *Config) (*Interpreter, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	reg := builtins.NewRegistry(builtins.IO{In: strings.NewReader(input), Out: &out}, builtins.WithSeed(1))
	in, err := New(parse(t, src), reg, cfg, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return in, &out
}

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	in, out := newInterpreter(t, src, "", nil)
	err := in.Run(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, src string) string {
	t.Helper()
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return out
}

func TestForLoop(t *testing.T) {
	src := `define start()
variables n : integer
	n := 3
	for i from 1 to n
		n := n + 10
		writeLine(i)
	writeLine(n)`

	if got := mustRun(t, src); got != "1\n2\n3\n33\n" {
		t.Errorf("output = %q, want three iterations with a bound evaluated once", got)
	}
}

func TestForIteratorScope(t *testing.T) {
	removed := `define start()
	for i from 1 to 2
		write(i)
	write(i)`
	_, err := run(t, removed)
	if !calerrors.Is(err, calerrors.KindName) {
		t.Errorf("iterator used after loop: error = %v, want name error", err)
	}

	restored := `define start()
variables i : integer
	i := 42
	for i from 1 to 2
		write(i)
	writeLine(i)`
	if got := mustRun(t, restored); got != "1242\n" {
		t.Errorf("output = %q, want shadowed binding restored", got)
	}

	readOnly := `define start()
	for i from 1 to 2
		i := 5`
	if _, err := run(t, readOnly); !calerrors.Is(err, calerrors.KindMutability) {
		t.Errorf("assigning the iterator: error = %v, want mutability error", err)
	}

	if got := mustRun(t, "define start()\n\tfor i from 3 to 1\n\t\twrite(i)\n\twrite(\"done\")"); got != "done" {
		t.Errorf("empty range output = %q", got)
	}
}

func TestRepeatRunsBodyFirst(t *testing.T) {
	src := `define start()
variables n : integer
	repeat until true
		n := n + 1
	writeLine(n)
	repeat until n = 5
		n := n + 1
	writeLine(n)`

	if got := mustRun(t, src); got != "1\n5\n" {
		t.Errorf("output = %q", got)
	}
}

func TestWhileAndIf(t *testing.T) {
	src := `define start()
variables n : integer
	while n < 4
		n := n + 1
		if n = 1 then
			write("one")
		elsif n mod 2 = 0
			write("even")
		else
			write("odd")
		write(" ")`

	if got := mustRun(t, src); got != "one even odd even " {
		t.Errorf("output = %q", got)
	}
}

func TestByReferenceCopyBack(t *testing.T) {
	src := `define start()
variables x : integer
	x := 1
	bump(var x)
	writeLine(x)
	bump(x)
	writeLine(x)
	bump(x + 1)
	writeLine(x)

define bump(n : integer)
	n := n + 1`

	if got := mustRun(t, src); got != "2\n2\n2\n" {
		t.Errorf("output = %q, want only the var argument updated", got)
	}
}

func TestParameterDropsCallerRange(t *testing.T) {
	src := `define start()
variables x : integer from 1 to 10
	x := 5
	grow(x)
	writeLine(x)

define grow(n : integer)
	n := 100
	writeLine(n)`

	if got := mustRun(t, src); got != "100\n5\n" {
		t.Errorf("output = %q, want the parameter unbounded and x unchanged", got)
	}
}

func TestCopyBackEnforcesCallerRange(t *testing.T) {
	src := `define start()
variables x : integer from 1 to 10
	x := 5
	grow(var x)

define grow(n : integer)
	n := 100`

	_, err := run(t, src)
	if !calerrors.Is(err, calerrors.KindRange) {
		t.Errorf("error = %v, want range error on copy-back", err)
	}
}

func TestConstantPassedByReference(t *testing.T) {
	src := `define start()
constants k = 1
	bump(var k)

define bump(n : integer)
	n := n + 1`

	_, err := run(t, src)
	if !calerrors.Is(err, calerrors.KindMutability) {
		t.Errorf("error = %v, want mutability error", err)
	}
}

func TestBuiltinCopyBack(t *testing.T) {
	src := `define start()
variables s : string
variables r : real
variables xs : array from 1 to 3 of integer
	chopLeft("callisto", 4, var s)
	integerToReal(7, var r)
	xs[3] := 9
	last(xs, var xs[1])
	write(s, r, xs[1])`

	if got := mustRun(t, src); got != "call 7.0 9" {
		t.Errorf("output = %q", got)
	}
}

func TestBuiltinIgnoresInvalidPattern(t *testing.T) {
	src := `define start()
variables s : string
	s := "kept"
	chopLeft("callisto", 4, s)
	write(var s)
	write(s)`

	if got := mustRun(t, src); got != "kept" {
		t.Errorf("output = %q, want invalid calls to have no effect", got)
	}
}

func TestRead(t *testing.T) {
	src := `define start()
variables a, b : integer
	read(var a, var b)
	write(a + b)`

	in, out := newInterpreter(t, src, "40,2\n", nil)
	if err := in.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.String() != "42" {
		t.Errorf("output = %q", out.String())
	}
}

func TestArrays(t *testing.T) {
	src := `define start()
constants size = 4
variables xs : array from 1 to size of integer
variables ys : array from 0 to 1 of integer
variables total : integer
	for i from 1 to size
		xs[i] := i * i
	for i from 1 to size
		total := total + xs[i]
	ys := xs
	fill(var xs[2])
	write(total, xs[2], ys[4])

define fill(slot : integer)
	slot := ~1`

	if got := mustRun(t, src); got != "30 -1 16" {
		t.Errorf("output = %q", got)
	}
}

func TestArrayParameter(t *testing.T) {
	src := `define start()
variables xs : array from 1 to 2 of real
	xs[1] := 1.5
	double(var xs)
	write(xs[1])

define double(values : array of real)
variables n : integer
	length(values, var n)
	for i from 1 to n
		values[i] := values[i] * 2.0`

	if got := mustRun(t, src); got != "3.0" {
		t.Errorf("output = %q", got)
	}
}

func TestExpressions(t *testing.T) {
	src := `define start()
variables b : boolean
	b := (1 < 2) and ('a' <> 'b')
	write(8 - 2 - 1, 7 / 2, 7.0 / 2.0, "ab" + "cd", b, true = false)`

	if got := mustRun(t, src); got != "5 3 3.5 abcd true false" {
		t.Errorf("output = %q", got)
	}
}

func TestRecursion(t *testing.T) {
	src := `define start()
variables r : integer
	fact(5, var r)
	write(r)

define fact(n : integer; result : integer)
variables sub : integer
	if n <= 1
		result := 1
	else
		fact(n - 1, var sub)
		result := n * sub`

	if got := mustRun(t, src); got != "120" {
		t.Errorf("output = %q", got)
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantKind calerrors.Kind
		wantLine int
		wantText string
	}{
		{
			name:     "integer plus string",
			src:      "define start()\nvariables x : integer\n\tx := 1 + \"a\"",
			wantKind: calerrors.KindType,
			wantLine: 3,
		},
		{
			name:     "undeclared variable",
			src:      "define start()\nvariables count : integer\n\tcoutn := 1",
			wantKind: calerrors.KindName,
			wantLine: 3,
			wantText: "coutn",
		},
		{
			name:     "undefined function",
			src:      "define start()\n\twriteLin(\"x\")",
			wantKind: calerrors.KindName,
			wantLine: 2,
			wantText: "writeLin",
		},
		{
			name:     "arity mismatch",
			src:      "define start()\n\thelper(1)\ndefine helper()\n\twrite(\"x\")",
			wantKind: calerrors.KindName,
			wantLine: 2,
			wantText: "invalid arguments",
		},
		{
			name:     "too few arguments",
			src:      "define start()\n\thelper(1)\ndefine helper(a : integer; b : integer)\n\twrite(a, b)",
			wantKind: calerrors.KindName,
			wantLine: 2,
			wantText: "invalid arguments",
		},
		{
			name:     "builtin arity mismatch",
			src:      "define start()\n\tgetRandom()",
			wantKind: calerrors.KindName,
			wantLine: 2,
			wantText: "invalid arguments",
		},
		{
			name:     "parameter kind",
			src:      "define start()\n\thelper(\"s\")\ndefine helper(n : integer)\n\twrite(n)",
			wantKind: calerrors.KindType,
			wantLine: 2,
		},
		{
			name:     "division by zero",
			src:      "define start()\n\twrite(1 / 0)",
			wantKind: calerrors.KindArithmetic,
			wantLine: 2,
		},
		{
			name:     "index out of range",
			src:      "define start()\nvariables xs : array from 1 to 2 of integer\n\txs[3] := 1",
			wantKind: calerrors.KindRange,
			wantLine: 3,
		},
		{
			name:     "declared range",
			src:      "define start()\nvariables x : integer from 1 to 10\n\tx := 11",
			wantKind: calerrors.KindRange,
			wantLine: 3,
		},
		{
			name:     "string length range",
			src:      "define start()\nvariables s : string from 0 to 2\n\ts := \"abc\"",
			wantKind: calerrors.KindRange,
			wantLine: 3,
		},
		{
			name:     "non boolean condition",
			src:      "define start()\n\twhile 1\n\t\twrite(1)",
			wantKind: calerrors.KindType,
			wantLine: 2,
		},
		{
			name:     "boolean ordering",
			src:      "define start()\n\tif true > false\n\t\twrite(1)",
			wantKind: calerrors.KindType,
			wantLine: 2,
		},
		{
			name:     "indexing a scalar",
			src:      "define start()\nvariables x : integer\n\tx[1] := 1",
			wantKind: calerrors.KindType,
			wantLine: 3,
		},
		{
			name:     "reversed array bounds",
			src:      "define start()\nvariables xs : array from 2 to 1 of integer\n\twrite(1)",
			wantKind: calerrors.KindRange,
			wantLine: 2,
		},
		{
			name:     "read into integer fails",
			src:      "define start()\nvariables x : integer\n\tread(var x)",
			wantKind: calerrors.KindIO,
			wantLine: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.src)
			e, ok := calerrors.As(err)
			if !ok {
				t.Fatalf("Run() error = %v, want a language error", err)
			}
			if e.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s (%v)", e.Kind, tt.wantKind, err)
			}
			if e.Line() != tt.wantLine {
				t.Errorf("line = %d, want %d (%v)", e.Line(), tt.wantLine, err)
			}
			if tt.wantText != "" && !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error %q does not mention %q", err, tt.wantText)
			}
		})
	}
}

func TestUndeclaredVariableSuggestion(t *testing.T) {
	_, err := run(t, "define start()\nvariables count : integer\n\tcoutn := 1")
	e, _ := calerrors.As(err)
	if e == nil || !strings.Contains(e.Suggestion, "count") {
		t.Errorf("suggestion = %v, want a hint naming count", err)
	}
}

func TestAssignmentToConstantLeavesValue(t *testing.T) {
	prog := parse(t, "define start()\nconstants limit = 10\n\tlimit := 11")
	in, err := New(prog, builtins.NewEmptyRegistry(), nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	env := runtime.NewEnvironment("start")
	limit := runtime.NewInteger(10)
	env.Bind("limit", limit)

	start, _ := prog.Function("start")
	err = in.exec(context.Background(), env, start.Statements[0])
	if !calerrors.Is(err, calerrors.KindMutability) {
		t.Fatalf("error = %v, want mutability error", err)
	}
	if limit.Int != 10 {
		t.Errorf("limit = %d after failed assignment, want 10", limit.Int)
	}
}

func TestTypeMismatchLeavesValue(t *testing.T) {
	prog := parse(t, "define start()\nvariables x : integer\n\tx := \"s\"")
	in, _ := New(prog, builtins.NewEmptyRegistry(), nil, nil)

	env := runtime.NewEnvironment("start")
	x := runtime.NewInteger(5).WithChangeable(true)
	env.Bind("x", x)

	start, _ := prog.Function("start")
	if err := in.exec(context.Background(), env, start.Statements[0]); !calerrors.Is(err, calerrors.KindType) {
		t.Fatalf("error = %v, want type error", err)
	}
	if x.Int != 5 {
		t.Errorf("x = %d, want 5", x.Int)
	}
}

func TestEntryPoint(t *testing.T) {
	src := "define main()\n\twrite(\"main\")"

	in, out := newInterpreter(t, src, "", DefaultConfig().WithEntryPoint("main"))
	if err := in.Run(context.Background()); err != nil || out.String() != "main" {
		t.Errorf("Run() = %q, %v", out.String(), err)
	}

	in, _ = newInterpreter(t, src, "", nil)
	err := in.Run(context.Background())
	if !calerrors.Is(err, calerrors.KindName) {
		t.Errorf("missing start: error = %v, want name error", err)
	}

	in, _ = newInterpreter(t, "define start(n : integer)\n\twrite(n)", "", nil)
	if err := in.Run(context.Background()); !calerrors.Is(err, calerrors.KindName) {
		t.Errorf("entry with parameters: error = %v, want name error", err)
	}
}

func TestBuiltinNameIsReserved(t *testing.T) {
	prog := parse(t, "define write()\n\tlength(\"a\", 1)")
	_, err := New(prog, builtins.NewRegistry(builtins.IO{}), nil, nil)
	if !calerrors.Is(err, calerrors.KindName) {
		t.Errorf("error = %v, want name error", err)
	}
}

func TestMaxCallDepth(t *testing.T) {
	src := "define start()\n\tloop()\ndefine loop()\n\tloop()"

	in, _ := newInterpreter(t, src, "", DefaultConfig().WithMaxCallDepth(50))
	err := in.Run(context.Background())
	if !calerrors.Is(err, calerrors.KindRange) || !strings.Contains(err.Error(), "call depth exceeded") {
		t.Errorf("error = %v, want call depth range error", err)
	}
	if in.Stats().MaxDepth != 50 {
		t.Errorf("MaxDepth = %d, want 50", in.Stats().MaxDepth)
	}
}

func TestCancellation(t *testing.T) {
	src := "define start()\n\twhile true\n\t\twrite(\"\")"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in, _ := newInterpreter(t, src, "", nil)
	if err := in.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

type countingObserver struct {
	calls      map[string]int
	statements map[ast.NodeKind]int
}

func (o *countingObserver) ObserveCall(name string, _ bool) { o.calls[name]++ }
func (o *countingObserver) ObserveStatement(kind ast.NodeKind) {
	o.statements[kind]++
}

func TestObserver(t *testing.T) {
	src := `define start()
	for i from 1 to 3
		write(i)`

	obs := &countingObserver{calls: map[string]int{}, statements: map[ast.NodeKind]int{}}
	in, _ := newInterpreter(t, src, "", nil)
	in.WithObserver(obs)

	if err := in.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if obs.calls["start"] != 1 || obs.calls["write"] != 3 {
		t.Errorf("calls = %v", obs.calls)
	}
	if obs.statements[ast.KindFor] != 1 || obs.statements[ast.KindFunctionCall] != 3 {
		t.Errorf("statements = %v", obs.statements)
	}

	stats := in.Stats()
	if stats.Calls != 1 || stats.BuiltinCalls != 3 || stats.Statements != 4 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().WithEntryPoint("").Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("empty entry point: error = %v", err)
	}
	if err := DefaultConfig().WithMaxCallDepth(-1).Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("negative depth: error = %v", err)
	}
}
