package parser

import (
	"mercator-hq/callisto/pkg/cal/ast"
	"mercator-hq/callisto/pkg/cal/token"
)

var compareOps = map[token.Kind]ast.CompareOperator{
	token.Greater:   ast.OpGreater,
	token.Less:      ast.OpLess,
	token.GreaterEq: ast.OpGreaterEqual,
	token.LessEq:    ast.OpLessEqual,
	token.Equal:     ast.OpEqual,
	token.NotEqual:  ast.OpNotEqual,
	token.Not:       ast.OpNot,
	token.And:       ast.OpAnd,
	token.Or:        ast.OpOr,
}

var additiveOps = map[token.Kind]ast.MathOperator{
	token.Plus:  ast.OpAdd,
	token.Minus: ast.OpSubtract,
}

var multiplicativeOps = map[token.Kind]ast.MathOperator{
	token.Star:  ast.OpMultiply,
	token.Slash: ast.OpDivide,
	token.Mod:   ast.OpMod,
}

// parseBoolCompare: expr [relOp expr]
func (s *state) parseBoolCompare() (ast.Expr, error) {
	left, err := s.parseExpr()
	if err != nil {
		return nil, err
	}

	opTok := s.peek(0)
	op, ok := compareOps[opTok.Kind]
	if !ok {
		return left, nil
	}
	s.next()

	right, err := s.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.BooleanCompare{Pos: opTok.Pos, Left: left, Operator: op, Right: right}, nil
}

// parseExpr: term (('+'|'-') term)*
func (s *state) parseExpr() (ast.Expr, error) {
	left, err := s.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		opTok := s.peek(0)
		op, ok := additiveOps[opTok.Kind]
		if !ok {
			return left, nil
		}
		s.next()

		right, err := s.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.MathOp{Pos: opTok.Pos, Left: left, Operator: op, Right: right}
	}
}

// parseTerm: factor (('*'|'/'|MOD) factor)*
func (s *state) parseTerm() (ast.Expr, error) {
	left, err := s.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		opTok := s.peek(0)
		op, ok := multiplicativeOps[opTok.Kind]
		if !ok {
			return left, nil
		}
		s.next()

		right, err := s.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.MathOp{Pos: opTok.Pos, Left: left, Operator: op, Right: right}
	}
}

// parseFactor:
//
//	'(' boolCompare ')' | ['~'] number | string | char | true | false | varref
func (s *state) parseFactor() (ast.Expr, error) {
	tok := s.peek(0)
	switch tok.Kind {
	case token.LParen:
		s.next()
		if err := s.enter(tok); err != nil {
			return nil, err
		}
		defer s.leave()

		inner, err := s.parseBoolCompare()
		if err != nil {
			return nil, err
		}
		if _, err := s.expect(token.RParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case token.Negate:
		s.next()
		num, err := s.expect(token.Number, "number after '~'")
		if err != nil {
			return nil, err
		}
		lit, _, err := s.numberLiteral(num, true)
		return lit, err
	case token.Number:
		s.next()
		lit, _, err := s.numberLiteral(tok, false)
		return lit, err
	case token.String, token.Char, token.True, token.False:
		lit, _, err := s.parseConstantLiteral()
		return lit, err
	case token.Identifier:
		return s.parseVarRef()
	}
	return nil, s.unexpected(tok, "expression")
}

// parseVarRef: name ['[' expr ']']
func (s *state) parseVarRef() (*ast.VariableReference, error) {
	name, err := s.expect(token.Identifier, "variable name")
	if err != nil {
		return nil, err
	}
	ref := &ast.VariableReference{Pos: name.Pos, Name: name.Text}

	if s.accept(token.LBracket) {
		index, err := s.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := s.expect(token.RBracket, "']'"); err != nil {
			return nil, err
		}
		ref.Index = index
	}
	return ref, nil
}
