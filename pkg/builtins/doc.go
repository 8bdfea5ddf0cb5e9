// Package builtins provides the native functions every Callisto program can
// call.
//
//	write(v...)                       print values separated by spaces
//	writeLine(v...)                   write, then a newline
//	read(var v...)                    parse one comma-separated input line
//	first(xs, var out)                element at the lower bound
//	last(xs, var out)                 element at the upper bound
//	length(xs or s, var out)          element or character count
//	chopLeft(s, n, var out)           first n characters
//	chopRight(s, n, var out)          last n characters
//	substring(s, from, to, var out)   characters [from, to), zero-based
//	squareRoot(r, var out)            square root of a real
//	getRandom(var out)                pseudo-random integer within out's range
//	integerToReal(i, var out)         integer widened to real
//	realToInteger(r, var out)         real truncated toward zero
//
// Inputs must be passed without var and outputs with var. A call whose
// arguments do not fit that pattern has no effect.
package builtins
