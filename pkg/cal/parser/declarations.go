package parser

import (
	"strconv"
	"strings"

	"mercator-hq/callisto/pkg/cal/ast"
	"mercator-hq/callisto/pkg/cal/token"
)

// parseFunction:
//
//	DEFINE name '(' params ')' EOL (constants|variables)* INDENT statement* DEDENT
func (s *state) parseFunction() (*ast.Function, error) {
	def, err := s.expect(token.Define, "'define'")
	if err != nil {
		return nil, err
	}
	name, err := s.expect(token.Identifier, "function name")
	if err != nil {
		return nil, err
	}

	fn := &ast.Function{Pos: def.Pos, Name: name.Text}
	seen := make(map[string]bool)

	if _, err := s.expect(token.LParen, ""); err != nil {
		return nil, err
	}
	if fn.Parameters, err = s.parseParams(seen); err != nil {
		return nil, err
	}
	if _, err := s.expect(token.RParen, ""); err != nil {
		return nil, err
	}
	if err := s.expectEOL(); err != nil {
		return nil, err
	}

	for {
		s.skipEOLs()
		var decls []*ast.Variable
		switch s.peek(0).Kind {
		case token.Constants:
			decls, err = s.parseConstants()
		case token.Variables:
			decls, err = s.parseVariables()
		default:
			fn.Statements, err = s.parseBlock("function " + fn.Name)
			if err != nil {
				return nil, err
			}
			return fn, nil
		}
		if err != nil {
			return nil, err
		}

		for _, d := range decls {
			if seen[d.Name] {
				return nil, s.errorf(token.Token{Pos: d.Pos}, d.Name, "%q is declared more than once in %s", d.Name, fn.Name)
			}
			seen[d.Name] = true
		}
		fn.Locals = append(fn.Locals, decls...)
	}
}

// parseParams: (name ':' datatype (';' name ':' datatype)*)?
func (s *state) parseParams(seen map[string]bool) ([]*ast.Variable, error) {
	var params []*ast.Variable
	if s.peek(0).Kind == token.RParen {
		return params, nil
	}

	for {
		name, err := s.expect(token.Identifier, "parameter name")
		if err != nil {
			return nil, err
		}
		if seen[name.Text] {
			return nil, s.errorf(name, name.Text, "parameter %q is declared more than once", name.Text)
		}
		seen[name.Text] = true

		if _, err := s.expect(token.Colon, "':' after parameter name"); err != nil {
			return nil, err
		}

		param := &ast.Variable{Pos: name.Pos, Name: name.Text, Changeable: true}
		if err := s.parseDataType(param, false); err != nil {
			return nil, err
		}
		params = append(params, param)

		if !s.accept(token.Semicolon) {
			return params, nil
		}
	}
}

// parseConstants: CONSTANTS name (',' name)* '=' literal EOL
func (s *state) parseConstants() ([]*ast.Variable, error) {
	s.next()

	names, err := s.parseNameList()
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(token.Equal, "'=' after constant names"); err != nil {
		return nil, err
	}

	lit, typ, err := s.parseConstantLiteral()
	if err != nil {
		return nil, err
	}
	if err := s.expectEOL(); err != nil {
		return nil, err
	}

	decls := make([]*ast.Variable, 0, len(names))
	for _, name := range names {
		decls = append(decls, &ast.Variable{
			Pos:   name.Pos,
			Name:  name.Text,
			Type:  typ,
			Value: lit,
		})
	}
	return decls, nil
}

// parseVariables: VARIABLES name (',' name)* ':' datatype (FROM expr TO expr)? EOL
func (s *state) parseVariables() ([]*ast.Variable, error) {
	s.next()

	names, err := s.parseNameList()
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(token.Colon, "':' after variable names"); err != nil {
		return nil, err
	}

	shape := &ast.Variable{Changeable: true}
	if err := s.parseDataType(shape, true); err != nil {
		return nil, err
	}

	if from := s.peek(0); from.Kind == token.From {
		if !shape.Type.Rangeable() {
			return nil, s.errorf(from, shape.Type.String(),
				"a range is only allowed on integer, real and string declarations, not %s", shape.Type)
		}
		s.next()
		if shape.Range, err = s.parseBounds(); err != nil {
			return nil, err
		}
	}

	if err := s.expectEOL(); err != nil {
		return nil, err
	}

	decls := make([]*ast.Variable, 0, len(names))
	for _, name := range names {
		v := *shape
		v.Pos = name.Pos
		v.Name = name.Text
		decls = append(decls, &v)
	}
	return decls, nil
}

func (s *state) parseNameList() ([]token.Token, error) {
	var names []token.Token
	for {
		name, err := s.expect(token.Identifier, "name")
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if !s.accept(token.Comma) {
			return names, nil
		}
	}
}

// parseBounds parses "expr TO expr" after a consumed FROM.
func (s *state) parseBounds() (*ast.Range, error) {
	lower, err := s.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(token.To, "'to'"); err != nil {
		return nil, err
	}
	upper, err := s.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Range{Lower: lower, Upper: upper}, nil
}

// parseDataType fills v's type. Arrays are written
//
//	array from E1 to E2 of T
//
// where the bounds are mandatory for variables and optional for parameters.
func (s *state) parseDataType(v *ast.Variable, boundsRequired bool) error {
	tok := s.next()

	if tok.Kind != token.Array {
		typ, ok := scalarType(tok.Kind)
		if !ok {
			return s.unexpected(tok, "data type")
		}
		v.Type = typ
		return nil
	}

	arr := &ast.ArrayLiteral{Pos: tok.Pos}
	if s.accept(token.From) {
		bounds, err := s.parseBounds()
		if err != nil {
			return err
		}
		arr.Lower, arr.Upper = bounds.Lower, bounds.Upper
	} else if boundsRequired {
		return s.unexpected(s.peek(0), "array bounds ('from ... to ...')")
	}

	if _, err := s.expect(token.Of, "'of' and the element type"); err != nil {
		return err
	}
	elemTok := s.next()
	elem, ok := scalarType(elemTok.Kind)
	if !ok {
		return s.unexpected(elemTok, "element type")
	}

	arr.Elem = elem
	v.Type = ast.TypeArray
	v.Elem = elem
	v.Value = arr
	return nil
}

func scalarType(kind token.Kind) (ast.DataType, bool) {
	switch kind {
	case token.Integer:
		return ast.TypeInteger, true
	case token.Real:
		return ast.TypeReal, true
	case token.StringType:
		return ast.TypeString, true
	case token.Character:
		return ast.TypeCharacter, true
	case token.Boolean:
		return ast.TypeBoolean, true
	}
	return 0, false
}

// parseConstantLiteral: ['~'] number | string | char | true | false
func (s *state) parseConstantLiteral() (ast.Expr, ast.DataType, error) {
	tok := s.next()
	switch tok.Kind {
	case token.Negate:
		num, err := s.expect(token.Number, "number after '~'")
		if err != nil {
			return nil, 0, err
		}
		return s.numberLiteral(num, true)
	case token.Number:
		return s.numberLiteral(tok, false)
	case token.String:
		return &ast.StringLiteral{Pos: tok.Pos, Value: tok.Text}, ast.TypeString, nil
	case token.Char:
		return &ast.CharacterLiteral{Pos: tok.Pos, Value: []rune(tok.Text)[0]}, ast.TypeCharacter, nil
	case token.True, token.False:
		return &ast.BooleanLiteral{Pos: tok.Pos, Value: tok.Kind == token.True}, ast.TypeBoolean, nil
	}
	return nil, 0, s.unexpected(tok, "constant literal")
}

// numberLiteral converts NUMBER text into an integer or real literal.
func (s *state) numberLiteral(tok token.Token, negate bool) (ast.Expr, ast.DataType, error) {
	text := tok.Text
	if negate {
		text = "-" + text
	}

	if strings.Contains(tok.Text, ".") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, 0, s.errorf(tok, tok.Text, "invalid real literal %q", tok.Text)
		}
		return &ast.RealLiteral{Pos: tok.Pos, Value: f}, ast.TypeReal, nil
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, 0, s.errorf(tok, tok.Text, "integer literal %q is out of range", tok.Text)
	}
	return &ast.IntegerLiteral{Pos: tok.Pos, Value: n}, ast.TypeInteger, nil
}
