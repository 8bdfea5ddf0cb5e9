package parser

import (
	"mercator-hq/callisto/pkg/cal/ast"
	calerrors "mercator-hq/callisto/pkg/cal/errors"
	"mercator-hq/callisto/pkg/cal/token"
)

// Parser turns a token sequence into a Program.
type Parser struct {
	maxDepth int // Maximum block and parenthesis nesting (default: 100)
	file     string
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxDepth: 100,
	}
}

// WithMaxDepth sets the maximum nesting depth of blocks and parentheses.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	p.maxDepth = depth
	return p
}

// WithFile sets the file name attached to syntax errors.
func (p *Parser) WithFile(file string) *Parser {
	p.file = file
	return p
}

// Parse consumes tokens and returns the program they describe. The first
// missing or unexpected token aborts parsing with a syntax error.
func (p *Parser) Parse(tokens []token.Token) (*ast.Program, error) {
	s := &state{
		tokens:   tokens,
		line:     1,
		maxDepth: p.maxDepth,
	}

	prog, err := s.parseProgram()
	if err != nil {
		if e, ok := calerrors.As(err); ok && e.File == "" {
			e.File = p.file
		}
		return nil, err
	}
	return prog, nil
}

// Parse parses tokens with the default configuration.
func Parse(tokens []token.Token) (*ast.Program, error) {
	return NewParser().Parse(tokens)
}

// state is the consumable token queue for one Parse call.
type state struct {
	tokens []token.Token
	pos    int

	// line advances past every consumed EOL; it locates errors raised at
	// the end of input.
	line int

	depth    int
	maxDepth int
}

func (s *state) atEnd() bool {
	return s.pos >= len(s.tokens)
}

// peek returns the token n positions ahead. Past the end it returns an
// Illegal token positioned on the cursor line.
func (s *state) peek(n int) token.Token {
	if s.pos+n < len(s.tokens) {
		return s.tokens[s.pos+n]
	}
	return token.Token{Kind: token.Illegal, Pos: token.Pos{Line: s.line}}
}

func (s *state) next() token.Token {
	tok := s.peek(0)
	if !s.atEnd() {
		s.pos++
		if tok.Kind == token.EOL {
			s.line = tok.Pos.Line + 1
		}
	}
	return tok
}

// accept consumes the next token if it has the given kind.
func (s *state) accept(kind token.Kind) bool {
	if s.peek(0).Kind == kind {
		s.next()
		return true
	}
	return false
}

// expect consumes a token of the given kind or fails naming what was
// expected. An empty what falls back to the kind's spelling.
func (s *state) expect(kind token.Kind, what string) (token.Token, error) {
	tok := s.peek(0)
	if tok.Kind != kind {
		if what == "" {
			what = "'" + token.Spelling(kind) + "'"
		}
		return tok, s.unexpected(tok, what)
	}
	return s.next(), nil
}

// expectEOL requires the end of the current line.
func (s *state) expectEOL() error {
	_, err := s.expect(token.EOL, "end of line")
	return err
}

func (s *state) skipEOLs() {
	for s.accept(token.EOL) {
	}
}

func (s *state) enter(tok token.Token) error {
	s.depth++
	if s.maxDepth > 0 && s.depth > s.maxDepth {
		return s.errorf(tok, tok.Describe(), "nesting deeper than %d levels", s.maxDepth)
	}
	return nil
}

func (s *state) leave() {
	s.depth--
}

func (s *state) unexpected(tok token.Token, what string) error {
	found := describe(tok)
	return s.errorf(tok, found, "expected %s, found %s", what, found)
}

func (s *state) errorf(tok token.Token, construct, format string, args ...any) error {
	pos := tok.Pos
	if pos.Line == 0 {
		pos.Line = s.line
	}
	return calerrors.Newf(calerrors.KindSyntax, pos, construct, format, args...)
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.Illegal:
		return "end of input"
	case token.EOL:
		return "end of line"
	case token.Indent:
		return "indentation"
	case token.Dedent:
		return "end of block"
	case token.String:
		return `"` + tok.Text + `"`
	case token.Char:
		return "'" + tok.Text + "'"
	default:
		return "'" + tok.Describe() + "'"
	}
}

// parseProgram: program := function*
func (s *state) parseProgram() (*ast.Program, error) {
	prog := ast.NewProgram()
	prog.Pos = token.Pos{Line: 1, Column: 1}

	for {
		s.skipEOLs()
		if s.atEnd() {
			return prog, nil
		}

		fn, err := s.parseFunction()
		if err != nil {
			return nil, err
		}
		if !prog.Add(fn) {
			return nil, calerrors.Newf(calerrors.KindSyntax, fn.Pos, fn.Name,
				"function %q is defined more than once", fn.Name)
		}
	}
}

// parseBlock: INDENT statement* DEDENT
func (s *state) parseBlock(owner string) ([]ast.Stmt, error) {
	s.skipEOLs()
	indent, err := s.expect(token.Indent, "indented body of "+owner)
	if err != nil {
		return nil, err
	}
	if err := s.enter(indent); err != nil {
		return nil, err
	}
	defer s.leave()

	stmts := make([]ast.Stmt, 0)
	for {
		s.skipEOLs()
		if s.accept(token.Dedent) {
			return stmts, nil
		}
		if s.atEnd() {
			return nil, s.unexpected(s.peek(0), "end of block")
		}

		stmt, err := s.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}
