// Package lexer turns Callisto source lines into tokens.
//
// Blocks are delimited by indentation: a tab or four spaces is one level, and
// each change of level between lines becomes INDENT or DEDENT tokens. Every
// line outside a comment ends with an EOL token. Comments are enclosed in
// braces and may span lines.
//
//	toks, err := lexer.Tokenize([]string{
//	    "define start()",
//	    "\twriteLine(\"hi\")",
//	})
package lexer
