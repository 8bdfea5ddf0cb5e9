package ast

import "mercator-hq/callisto/pkg/cal/token"

// IntegerLiteral is a whole-number literal.
type IntegerLiteral struct {
	token.Pos
	Value int64
}

// RealLiteral is a literal with a decimal point.
type RealLiteral struct {
	token.Pos
	Value float64
}

// StringLiteral is a double-quoted literal.
type StringLiteral struct {
	token.Pos
	Value string
}

// CharacterLiteral is a single-quoted, single-character literal.
type CharacterLiteral struct {
	token.Pos
	Value rune
}

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	token.Pos
	Value bool
}

// ArrayLiteral describes an array allocation over the inclusive bounds
// [Lower, Upper]. Bounds are nil for array parameters, which take the shape
// of their argument.
type ArrayLiteral struct {
	token.Pos
	Elem  DataType
	Lower Expr
	Upper Expr
}

// VariableReference names a variable, optionally indexing into an array.
type VariableReference struct {
	token.Pos
	Name  string
	Index Expr
}

// MathOperator is an arithmetic operator.
type MathOperator int

const (
	OpAdd MathOperator = iota + 1
	OpSubtract
	OpMultiply
	OpDivide
	OpMod
)

func (op MathOperator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpMod:
		return "mod"
	default:
		return "?"
	}
}

// MathOp is a binary arithmetic expression.
type MathOp struct {
	token.Pos
	Left     Expr
	Operator MathOperator
	Right    Expr
}

// CompareOperator is a relational or logical operator.
type CompareOperator int

const (
	OpGreater CompareOperator = iota + 1
	OpLess
	OpGreaterEqual
	OpLessEqual
	OpEqual
	OpNotEqual
	OpNot
	OpAnd
	OpOr
)

func (op CompareOperator) String() string {
	switch op {
	case OpGreater:
		return ">"
	case OpLess:
		return "<"
	case OpGreaterEqual:
		return ">="
	case OpLessEqual:
		return "<="
	case OpEqual:
		return "="
	case OpNotEqual:
		return "<>"
	case OpNot:
		return "not"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	default:
		return "?"
	}
}

// Ordering reports whether the operator compares magnitudes.
func (op CompareOperator) Ordering() bool {
	switch op {
	case OpGreater, OpLess, OpGreaterEqual, OpLessEqual:
		return true
	}
	return false
}

// BooleanCompare is a binary relational or logical expression.
type BooleanCompare struct {
	token.Pos
	Left     Expr
	Operator CompareOperator
	Right    Expr
}

// Argument is one argument of a call. Exactly one of Constant and Reference
// is set; Reference marks a by-reference (var) argument.
type Argument struct {
	token.Pos
	Constant  Expr
	Reference *VariableReference
}

// IsConstant reports whether the argument is a constant sub-expression.
func (a *Argument) IsConstant() bool { return a.Reference == nil }

func (*IntegerLiteral) Kind() NodeKind    { return KindIntegerLiteral }
func (*RealLiteral) Kind() NodeKind       { return KindRealLiteral }
func (*StringLiteral) Kind() NodeKind     { return KindStringLiteral }
func (*CharacterLiteral) Kind() NodeKind  { return KindCharacterLiteral }
func (*BooleanLiteral) Kind() NodeKind    { return KindBooleanLiteral }
func (*ArrayLiteral) Kind() NodeKind      { return KindArrayLiteral }
func (*VariableReference) Kind() NodeKind { return KindVariableReference }
func (*MathOp) Kind() NodeKind            { return KindMathOp }
func (*BooleanCompare) Kind() NodeKind    { return KindBooleanCompare }
func (*Argument) Kind() NodeKind          { return KindArgument }

func (*IntegerLiteral) exprNode()    {}
func (*RealLiteral) exprNode()       {}
func (*StringLiteral) exprNode()     {}
func (*CharacterLiteral) exprNode()  {}
func (*BooleanLiteral) exprNode()    {}
func (*ArrayLiteral) exprNode()      {}
func (*VariableReference) exprNode() {}
func (*MathOp) exprNode()            {}
func (*BooleanCompare) exprNode()    {}
func (*Argument) exprNode()          {}
