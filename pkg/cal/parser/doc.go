// Package parser builds a Callisto syntax tree from a token sequence.
//
// The parser is a hand-written recursive descent over a consumable token
// queue. Statements are chosen with one or two tokens of lookahead; an
// identifier followed by ':=' or '[' starts an assignment, an identifier
// followed by '(' starts a call. Additive and multiplicative operators are
// left-associative, and at most one relational or logical operator joins
// two expressions unless parentheses group them.
//
// # Basic Usage
//
//	toks, err := lexer.Tokenize(lines)
//	if err != nil {
//	    return err
//	}
//	prog, err := parser.NewParser().WithFile("main.cal").Parse(toks)
//
// Every failure is a *errors.Error of kind syntax naming the expected
// construct and the line it was expected on.
package parser
