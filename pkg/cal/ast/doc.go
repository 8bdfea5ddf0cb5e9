// Package ast defines the syntax tree of the Callisto language.
//
// The node family is closed. Node, Expr and Stmt are interfaces implemented
// only by the types in this package, so consumers (the evaluator, the
// diagnostics printer, Inspect) switch on the concrete type with one arm per
// node kind. Every node embeds token.Pos and reports a NodeKind.
//
// # Core Types
//
// Program: functions keyed by unique name, plus their definition order
//
// Function: parameters, declared locals (constants and variables), statements
//
// Variable: a declaration with type, changeability, optional literal value and
// optional inclusive range
//
// IfChain: ordered (condition, body) clauses with an optional terminal else
//
// Trees are built once by the parser and never mutated afterwards.
package ast
