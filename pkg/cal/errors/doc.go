// Package errors provides the error taxonomy shared by the Callisto lexer,
// parser and interpreter.
//
// Every stage fails fast with a single *Error naming the offending construct
// and its source line.
//
// # Error Kinds
//
// KindLexical: unterminated or malformed literals, a repeated decimal point,
// unrecognized characters
//
// KindSyntax: a required token or clause is missing
//
// KindName: reference to an undeclared variable or function, or an argument
// count that does not match a non-variadic callee
//
// KindMutability: assignment or by-reference copy-back into a constant
//
// KindType: operand kinds differ, or the operator is undefined for the kind
//
// KindRange, KindArithmetic, KindIO: declared ranges and array bounds,
// integer division by zero, and I/O failures
//
// # Basic Usage
//
//	err := errors.Newf(errors.KindName, pos, "total", "undeclared variable %q", "total")
//	err = errors.WithContext(err, sourceLines, 2)
//
// Callers test for a kind with Is:
//
//	if errors.Is(err, errors.KindMutability) {
//	    ...
//	}
package errors
