package ast

import "mercator-hq/callisto/pkg/cal/token"

// Assignment stores Value into Target.
type Assignment struct {
	token.Pos
	Target *VariableReference
	Value  Expr
}

// IfClause is one (condition, body) pair of an if-chain.
type IfClause struct {
	token.Pos
	Condition Expr
	Body      []Stmt
}

// IfChain is an if with its elsif clauses, in source order, and an optional
// terminal else body. Else is nil when the chain has no else.
type IfChain struct {
	token.Pos
	Clauses []IfClause
	Else    []Stmt
}

// HasElse reports whether the chain ends in an else clause.
func (s *IfChain) HasElse() bool { return s.Else != nil }

// For counts Iterator from From up to To inclusive.
type For struct {
	token.Pos
	Iterator *VariableReference
	From     Expr
	To       Expr
	Body     []Stmt
}

// While repeats Body while Condition holds.
type While struct {
	token.Pos
	Condition Expr
	Body      []Stmt
}

// RepeatUntil runs Body, then stops once Condition holds.
type RepeatUntil struct {
	token.Pos
	Condition Expr
	Body      []Stmt
}

// FunctionCall invokes a built-in or user function.
type FunctionCall struct {
	token.Pos
	Name      string
	Arguments []*Argument
}

func (*Assignment) Kind() NodeKind   { return KindAssignment }
func (*IfChain) Kind() NodeKind      { return KindIfChain }
func (*For) Kind() NodeKind          { return KindFor }
func (*While) Kind() NodeKind        { return KindWhile }
func (*RepeatUntil) Kind() NodeKind  { return KindRepeatUntil }
func (*FunctionCall) Kind() NodeKind { return KindFunctionCall }

func (*Assignment) stmtNode()   {}
func (*IfChain) stmtNode()      {}
func (*For) stmtNode()          {}
func (*While) stmtNode()        {}
func (*RepeatUntil) stmtNode()  {}
func (*FunctionCall) stmtNode() {}
