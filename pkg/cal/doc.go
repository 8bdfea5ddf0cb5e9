// Package cal implements the Callisto language: an indentation-delimited
// imperative language with typed constants and variables, arrays, loops and
// functions that return results through var arguments.
//
// # Architecture
//
// A program passes through three stages:
//
//   - lexer: source lines to tokens, with INDENT and DEDENT marking blocks
//   - parser: tokens to an ast.Program by recursive descent
//   - interpreter: tree-walking evaluation starting at "start"
//
// The sub-packages can be used on their own; this package wires them
// together for the common cases.
//
// # Language Overview
//
//	{ sum the squares of 1..n }
//	define start()
//	constants n = 4
//	variables total : integer
//	    for i from 1 to n
//	        square(i, var total)
//	    writeLine("total:", total)
//
//	define square(x : integer; acc : integer)
//	    acc := acc + x * x
//
// # Error Handling
//
// Every stage fails fast with an *errors.Error naming the offending
// construct and source line. ParseFile also attaches the file name and an
// excerpt of the surrounding source.
package cal
