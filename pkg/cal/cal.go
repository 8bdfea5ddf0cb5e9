package cal

import (
	"context"
	"fmt"
	"os"

	"mercator-hq/callisto/pkg/builtins"
	"mercator-hq/callisto/pkg/cal/ast"
	calerrors "mercator-hq/callisto/pkg/cal/errors"
	"mercator-hq/callisto/pkg/cal/lexer"
	"mercator-hq/callisto/pkg/cal/parser"
	"mercator-hq/callisto/pkg/cal/token"
	"mercator-hq/callisto/pkg/interpreter"
	"mercator-hq/callisto/pkg/source"
)

// excerptLines is how many lines around an error ParseFile quotes.
const excerptLines = 2

// SplitLines splits source text into lines, accepting \n and \r\n endings.
func SplitLines(src string) []string {
	return source.SplitLines(src)
}

// Tokenize is a convenience function that tokenizes source text.
func Tokenize(src string) ([]token.Token, error) {
	return lexer.Tokenize(SplitLines(src))
}

// Parse is a convenience function that tokenizes and parses source text.
func Parse(src string) (*ast.Program, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return parser.Parse(toks)
}

// ParseFile reads, tokenizes and parses a source file. Language errors
// carry the file name and an excerpt of the surrounding lines.
func ParseFile(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	lines := SplitLines(string(data))
	toks, err := lexer.Tokenize(lines)
	if err == nil {
		var prog *ast.Program
		prog, err = parser.NewParser().WithFile(path).Parse(toks)
		if err == nil {
			return prog, nil
		}
	}

	if e, ok := calerrors.As(err); ok {
		e.File = path
		return nil, calerrors.WithContext(e, lines, excerptLines)
	}
	return nil, err
}

// Run is a convenience function that parses source text and runs its start
// function against the given terminal.
func Run(ctx context.Context, src string, stdio builtins.IO) error {
	prog, err := Parse(src)
	if err != nil {
		return err
	}

	in, err := interpreter.New(prog, builtins.NewRegistry(stdio), interpreter.DefaultConfig(), nil)
	if err != nil {
		return err
	}
	return in.Run(ctx)
}
