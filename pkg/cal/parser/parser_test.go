package parser

import (
	"strings"
	"testing"

	"mercator-hq/callisto/pkg/cal/ast"
	calerrors "mercator-hq/callisto/pkg/cal/errors"
	"mercator-hq/callisto/pkg/cal/lexer"
)

func parseSource(t *testing.T, src string) (*ast.Program, error) {
	t.Helper()
	toks, err := lexer.Tokenize(strings.Split(src, "\n"))
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	return Parse(toks)
}

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parseSource(t, src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return prog
}

func TestParseFunctionShape(t *testing.T) {
	src := `define start()
constants limit = 10
constants greeting = "hi"
variables x, y : integer from 0 to limit
variables name : string
variables xs : array from 1 to 3 of real
	x := 1
	writeLine(x)

define helper(a : integer; b : array of character)
	a := 2`

	prog := mustParse(t, src)

	if got := prog.Order; len(got) != 2 || got[0] != "start" || got[1] != "helper" {
		t.Fatalf("Order = %v", got)
	}

	start, _ := prog.Function("start")
	if len(start.Locals) != 6 {
		t.Fatalf("start has %d locals, want 6", len(start.Locals))
	}

	limit := start.Locals[0]
	if limit.Changeable || limit.Type != ast.TypeInteger {
		t.Errorf("limit = %+v, want non-changeable integer", limit)
	}
	if lit, ok := limit.Value.(*ast.IntegerLiteral); !ok || lit.Value != 10 {
		t.Errorf("limit value = %#v", limit.Value)
	}
	if start.Locals[1].Type != ast.TypeString {
		t.Errorf("greeting type = %v, want string", start.Locals[1].Type)
	}

	x, y := start.Locals[2], start.Locals[3]
	if !x.Changeable || x.Range == nil || y.Range == nil {
		t.Errorf("x/y should be changeable and ranged: %+v %+v", x, y)
	}
	if x.Name != "x" || y.Name != "y" {
		t.Errorf("names = %q, %q", x.Name, y.Name)
	}

	xs := start.Locals[5]
	arr, ok := xs.Value.(*ast.ArrayLiteral)
	if xs.Type != ast.TypeArray || xs.Elem != ast.TypeReal || !ok || arr.Lower == nil || arr.Upper == nil {
		t.Errorf("xs = %+v (value %#v)", xs, xs.Value)
	}

	if len(start.Statements) != 2 {
		t.Fatalf("start has %d statements, want 2", len(start.Statements))
	}
	if _, ok := start.Statements[0].(*ast.Assignment); !ok {
		t.Errorf("statement 0 = %T, want *ast.Assignment", start.Statements[0])
	}
	if _, ok := start.Statements[1].(*ast.FunctionCall); !ok {
		t.Errorf("statement 1 = %T, want *ast.FunctionCall", start.Statements[1])
	}

	helper, _ := prog.Function("helper")
	if helper.Arity() != 2 || !helper.Parameters[0].Changeable {
		t.Errorf("helper params = %+v", helper.Parameters)
	}
	if p := helper.Parameters[1]; p.Type != ast.TypeArray || p.Elem != ast.TypeCharacter {
		t.Errorf("b = %+v", p)
	}
}

func TestParseIfChain(t *testing.T) {
	src := `define start()
variables x : integer
	if x > 1 then
		x := 1
	elsif x = 0
		x := 2
	elsif x < 0
		x := 3

	else
		x := 4
	x := 5`

	prog := mustParse(t, src)
	start, _ := prog.Function("start")

	if len(start.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(start.Statements))
	}
	chain, ok := start.Statements[0].(*ast.IfChain)
	if !ok {
		t.Fatalf("statement 0 = %T", start.Statements[0])
	}
	if len(chain.Clauses) != 3 {
		t.Errorf("got %d clauses, want 3", len(chain.Clauses))
	}
	if !chain.HasElse() || len(chain.Else) != 1 {
		t.Errorf("else = %v", chain.Else)
	}
	if chain.Clauses[1].Line != 5 {
		t.Errorf("elsif clause line = %d, want 5", chain.Clauses[1].Line)
	}
}

func TestParseLoops(t *testing.T) {
	src := `define start()
variables i, n : integer
	for i from 1 to n + 1
		n := n
	while n < 10
		n := n + 1
	repeat until n = 0
		n := n - 1`

	prog := mustParse(t, src)
	start, _ := prog.Function("start")

	if _, ok := start.Statements[0].(*ast.For); !ok {
		t.Errorf("statement 0 = %T, want *ast.For", start.Statements[0])
	}
	if _, ok := start.Statements[1].(*ast.While); !ok {
		t.Errorf("statement 1 = %T, want *ast.While", start.Statements[1])
	}
	rep, ok := start.Statements[2].(*ast.RepeatUntil)
	if !ok {
		t.Fatalf("statement 2 = %T, want *ast.RepeatUntil", start.Statements[2])
	}
	if cmp, ok := rep.Condition.(*ast.BooleanCompare); !ok || cmp.Operator != ast.OpEqual {
		t.Errorf("repeat condition = %#v", rep.Condition)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	src := `define start()
variables x : integer
	x := 8 - 2 - 1 * 3 mod 2`

	prog := mustParse(t, src)
	start, _ := prog.Function("start")
	assign := start.Statements[0].(*ast.Assignment)

	// ((8 - 2) - ((1 * 3) mod 2))
	outer, ok := assign.Value.(*ast.MathOp)
	if !ok || outer.Operator != ast.OpSubtract {
		t.Fatalf("outer = %#v", assign.Value)
	}
	left, ok := outer.Left.(*ast.MathOp)
	if !ok || left.Operator != ast.OpSubtract {
		t.Errorf("left = %#v, want 8 - 2", outer.Left)
	}
	right, ok := outer.Right.(*ast.MathOp)
	if !ok || right.Operator != ast.OpMod {
		t.Fatalf("right = %#v, want (1 * 3) mod 2", outer.Right)
	}
	if inner, ok := right.Left.(*ast.MathOp); !ok || inner.Operator != ast.OpMultiply {
		t.Errorf("right.Left = %#v, want 1 * 3", right.Left)
	}
}

func TestParseFactors(t *testing.T) {
	src := `define start()
variables b : boolean
variables xs : array from 0 to 2 of integer
	b := (xs[1] > ~2) and true
	xs[0] := 'c'
	write("s", 1.5, var xs[2], var b)`

	prog := mustParse(t, src)
	start, _ := prog.Function("start")

	cmp := start.Statements[0].(*ast.Assignment).Value.(*ast.BooleanCompare)
	if cmp.Operator != ast.OpAnd {
		t.Errorf("operator = %v, want and", cmp.Operator)
	}
	inner := cmp.Left.(*ast.BooleanCompare)
	if ref := inner.Left.(*ast.VariableReference); ref.Index == nil {
		t.Error("xs[1] lost its index")
	}
	if lit := inner.Right.(*ast.IntegerLiteral); lit.Value != -2 {
		t.Errorf("~2 = %d, want -2", lit.Value)
	}

	if target := start.Statements[1].(*ast.Assignment).Target; target.Index == nil {
		t.Error("indexed assignment lost its index")
	}

	call := start.Statements[2].(*ast.FunctionCall)
	if len(call.Arguments) != 4 {
		t.Fatalf("got %d arguments, want 4", len(call.Arguments))
	}
	if !call.Arguments[0].IsConstant() || !call.Arguments[1].IsConstant() {
		t.Error("literal arguments should be constant")
	}
	if call.Arguments[2].IsConstant() || call.Arguments[2].Reference.Index == nil {
		t.Error("var xs[2] should be an indexed reference argument")
	}
	if call.Arguments[3].IsConstant() {
		t.Error("var b should be a reference argument")
	}
}

func TestParseEmptyCall(t *testing.T) {
	prog := mustParse(t, "define start()\n\thelper()\ndefine helper()\n\twriteLine(\"x\")")
	start, _ := prog.Function("start")
	if call := start.Statements[0].(*ast.FunctionCall); len(call.Arguments) != 0 {
		t.Errorf("helper() has %d arguments", len(call.Arguments))
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine int
		wantText string
	}{
		{"missing define", "start()\n\tx := 1", 1, "'define'"},
		{"missing paren", "define start(\n\tx := 1", 1, "parameter name"},
		{"missing close paren", "define start(a : integer\n\tx := 1", 1, "')'"},
		{"missing body", "define start()\ndefine other()\n\tx := 1", 2, "indented body"},
		{"missing assign operator", "define start()\n\tx 1", 2, "':=' or '('"},
		{"missing until", "define start()\n\trepeat x = 1\n\t\tx := 1", 2, "'until'"},
		{"missing to", "define start()\n\tfor i from 1 3\n\t\tx := 1", 2, "'to'"},
		{"unclosed call", "define start()\n\twrite(1, 2\n", 2, "')' closing"},
		{"dangling else", "define start()\n\telse\n\t\tx := 1", 2, "without a preceding if"},
		{"range on boolean", "define start()\nvariables b : boolean from 1 to 2\n\tb := true", 2, "range"},
		{"array without bounds", "define start()\nvariables xs : array of integer\n\txs[1] := 1", 2, "array bounds"},
		{"duplicate function", "define f()\n\tx := 1\ndefine f()\n\tx := 2", 3, "more than once"},
		{"duplicate local", "define f(a : integer)\nvariables a : integer\n\ta := 1", 2, "more than once"},
		{"empty expression", "define start()\n\tx := \n", 2, "expected expression"},
		{"negated name", "define start()\n\tx := ~y", 2, "number after '~'"},
		{"unbalanced parens", "define start()\n\tx := (1 + 2", 2, "')'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSource(t, tt.src)
			if !calerrors.Is(err, calerrors.KindSyntax) {
				t.Fatalf("Parse() error = %v, want syntax error", err)
			}
			e, _ := calerrors.As(err)
			if e.Line() != tt.wantLine {
				t.Errorf("error line = %d, want %d (%v)", e.Line(), tt.wantLine, err)
			}
			if !strings.Contains(e.Message, tt.wantText) {
				t.Errorf("message %q does not mention %q", e.Message, tt.wantText)
			}
		})
	}
}

func TestParseMaxDepth(t *testing.T) {
	src := "define start()\nvariables x : integer\n\tx := ((((1))))"
	toks, err := lexer.Tokenize(strings.Split(src, "\n"))
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	if _, err := NewParser().WithMaxDepth(3).Parse(toks); !calerrors.Is(err, calerrors.KindSyntax) {
		t.Errorf("expected nesting error, got %v", err)
	}
	if _, err := NewParser().WithMaxDepth(10).Parse(toks); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseErrorCarriesFile(t *testing.T) {
	toks, _ := lexer.Tokenize([]string{"oops"})
	_, err := NewParser().WithFile("broken.cal").Parse(toks)
	e, ok := calerrors.As(err)
	if !ok || e.File != "broken.cal" {
		t.Errorf("error = %v, want file broken.cal", err)
	}
}
