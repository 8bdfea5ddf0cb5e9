package ast

import (
	"sort"

	"mercator-hq/callisto/pkg/cal/token"
)

// Program is the root node: every function defined in one source, keyed by name.
type Program struct {
	token.Pos
	Functions map[string]*Function

	// Order lists function names in definition order.
	Order []string
}

// NewProgram creates an empty program.
func NewProgram() *Program {
	return &Program{Functions: make(map[string]*Function)}
}

func (p *Program) Kind() NodeKind { return KindProgram }

// Add registers fn, reporting false when the name is already taken.
func (p *Program) Add(fn *Function) bool {
	if _, exists := p.Functions[fn.Name]; exists {
		return false
	}
	p.Functions[fn.Name] = fn
	p.Order = append(p.Order, fn.Name)
	return true
}

// Function looks up a function by name.
func (p *Program) Function(name string) (*Function, bool) {
	fn, ok := p.Functions[name]
	return fn, ok
}

// Names returns the function names sorted alphabetically.
func (p *Program) Names() []string {
	names := make([]string, 0, len(p.Functions))
	for name := range p.Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Function is a user-defined function. Unlike built-ins, user functions
// always take exactly Arity arguments.
type Function struct {
	token.Pos
	Name       string
	Parameters []*Variable
	Locals     []*Variable // constants and variables, in declaration order
	Statements []Stmt
}

func (f *Function) Kind() NodeKind { return KindFunction }

// Arity returns the number of formal parameters.
func (f *Function) Arity() int { return len(f.Parameters) }

// Variable declares a parameter, constant or variable.
type Variable struct {
	token.Pos
	Name       string
	Type       DataType
	Elem       DataType // element type when Type is TypeArray
	Changeable bool

	// Value is the literal for constants and the ArrayLiteral carrying the
	// bounds for array variables. Nil means the type's zero value.
	Value Expr

	// Range is the optional inclusive bound of a ranged declaration.
	Range *Range
}

func (v *Variable) Kind() NodeKind { return KindVariable }

// Range is an inclusive [Lower, Upper] bound.
type Range struct {
	Lower Expr
	Upper Expr
}
