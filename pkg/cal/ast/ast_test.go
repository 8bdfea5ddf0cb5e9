package ast

import (
	"testing"

	"mercator-hq/callisto/pkg/cal/token"
)

func sampleProgram() *Program {
	p := NewProgram()
	p.Add(&Function{
		Pos:  token.Pos{Line: 1, Column: 1},
		Name: "start",
		Locals: []*Variable{
			{Name: "x", Type: TypeInteger, Changeable: true},
		},
		Statements: []Stmt{
			&Assignment{
				Target: &VariableReference{Name: "x"},
				Value: &MathOp{
					Left:     &IntegerLiteral{Value: 1},
					Operator: OpAdd,
					Right:    &IntegerLiteral{Value: 2},
				},
			},
			&IfChain{
				Clauses: []IfClause{{
					Condition: &BooleanCompare{Left: &VariableReference{Name: "x"}, Operator: OpGreater, Right: &IntegerLiteral{Value: 2}},
					Body: []Stmt{&FunctionCall{Name: "write", Arguments: []*Argument{
						{Constant: &StringLiteral{Value: "big"}},
					}}},
				}},
			},
		},
	})
	return p
}

func TestProgramAdd(t *testing.T) {
	p := sampleProgram()
	if p.Add(&Function{Name: "start"}) {
		t.Error("Add() accepted a duplicate function name")
	}
	if !p.Add(&Function{Name: "helper"}) {
		t.Error("Add() rejected a new function name")
	}
	if got := p.Order; len(got) != 2 || got[0] != "start" || got[1] != "helper" {
		t.Errorf("Order = %v", got)
	}
	if names := p.Names(); names[0] != "helper" {
		t.Errorf("Names() not sorted: %v", names)
	}
}

func TestCount(t *testing.T) {
	counts := Count(sampleProgram())

	tests := map[NodeKind]int{
		KindProgram:           1,
		KindFunction:          1,
		KindVariable:          1,
		KindAssignment:        1,
		KindIfChain:           1,
		KindFunctionCall:      1,
		KindIntegerLiteral:    3,
		KindVariableReference: 2,
		KindArgument:          1,
		KindStringLiteral:     1,
	}
	for kind, want := range tests {
		if counts[kind] != want {
			t.Errorf("count[%v] = %d, want %d", kind, counts[kind], want)
		}
	}
}

func TestInspectSkipsChildren(t *testing.T) {
	visited := 0
	Inspect(sampleProgram(), func(n Node) bool {
		visited++
		return n.Kind() != KindFunction
	})
	if visited != 2 {
		t.Errorf("visited %d nodes, want 2 (program and function)", visited)
	}
}

func TestIfChainHasElse(t *testing.T) {
	chain := &IfChain{}
	if chain.HasElse() {
		t.Error("empty chain reports an else")
	}
	chain.Else = []Stmt{}
	if !chain.HasElse() {
		t.Error("chain with else body reports none")
	}
}

func TestOperatorStrings(t *testing.T) {
	if OpMod.String() != "mod" || OpNotEqual.String() != "<>" {
		t.Errorf("unexpected operator spellings: %v %v", OpMod, OpNotEqual)
	}
	if !OpLessEqual.Ordering() || OpAnd.Ordering() {
		t.Error("Ordering() misclassifies operators")
	}
	if !TypeString.Rangeable() || TypeBoolean.Rangeable() {
		t.Error("Rangeable() misclassifies types")
	}
}
