// Package diagnostics renders token lists and syntax trees for humans.
//
// The runner writes these dumps after a failed run so the state of the
// pipeline at the point of failure can be inspected; the tokens and ast
// commands print them directly. Dumps play no part in evaluation.
//
// Token dumps come in two formats. Text groups tokens by source line:
//
//	1	DEFINE IDENTIFIER("start") LPAREN RPAREN EOL
//	2	INDENT IDENTIFIER("writeLine") LPAREN STRING("hi") RPAREN EOL
//
// JSON is an array of {"kind", "text", "pos"} objects. Syntax trees are
// always printed as indented text.
package diagnostics
