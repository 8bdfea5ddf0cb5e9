package ast

import (
	"fmt"

	"mercator-hq/callisto/pkg/cal/token"
)

// NodeKind tags every node with its variant. The set is closed: consumers
// switch over the concrete node types and list every arm.
type NodeKind int

const (
	KindProgram NodeKind = iota
	KindFunction
	KindVariable

	// Literals
	KindIntegerLiteral
	KindRealLiteral
	KindStringLiteral
	KindCharacterLiteral
	KindBooleanLiteral
	KindArrayLiteral

	// Expressions
	KindVariableReference
	KindMathOp
	KindBooleanCompare
	KindArgument

	// Statements
	KindAssignment
	KindIfChain
	KindFor
	KindWhile
	KindRepeatUntil
	KindFunctionCall
)

var nodeKindNames = [...]string{
	KindProgram:           "Program",
	KindFunction:          "Function",
	KindVariable:          "Variable",
	KindIntegerLiteral:    "IntegerLiteral",
	KindRealLiteral:       "RealLiteral",
	KindStringLiteral:     "StringLiteral",
	KindCharacterLiteral:  "CharacterLiteral",
	KindBooleanLiteral:    "BooleanLiteral",
	KindArrayLiteral:      "ArrayLiteral",
	KindVariableReference: "VariableReference",
	KindMathOp:            "MathOp",
	KindBooleanCompare:    "BooleanCompare",
	KindArgument:          "Argument",
	KindAssignment:        "Assignment",
	KindIfChain:           "IfChain",
	KindFor:               "For",
	KindWhile:             "While",
	KindRepeatUntil:       "RepeatUntil",
	KindFunctionCall:      "FunctionCall",
}

func (k NodeKind) String() string {
	if int(k) >= 0 && int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", k)
}

// Node is implemented by every AST node. Nodes embed token.Pos, which
// supplies Position and the Line and Column fields.
type Node interface {
	Kind() NodeKind
	Position() token.Pos
}

// Expr is a node that evaluates to a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a node executed for its effect.
type Stmt interface {
	Node
	stmtNode()
}

// DataType is a declared kind of value.
type DataType int

const (
	TypeInteger DataType = iota + 1
	TypeReal
	TypeString
	TypeCharacter
	TypeBoolean
	TypeArray
)

func (t DataType) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeReal:
		return "real"
	case TypeString:
		return "string"
	case TypeCharacter:
		return "character"
	case TypeBoolean:
		return "boolean"
	case TypeArray:
		return "array"
	default:
		return fmt.Sprintf("DataType(%d)", int(t))
	}
}

// Rangeable reports whether declarations of this type may carry a range.
func (t DataType) Rangeable() bool {
	return t == TypeInteger || t == TypeReal || t == TypeString
}
