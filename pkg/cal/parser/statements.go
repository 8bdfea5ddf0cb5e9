package parser

import (
	"mercator-hq/callisto/pkg/cal/ast"
	"mercator-hq/callisto/pkg/cal/token"
)

// parseStatement dispatches on one or two tokens of lookahead.
func (s *state) parseStatement() (ast.Stmt, error) {
	tok := s.peek(0)
	switch tok.Kind {
	case token.If:
		return s.parseIf()
	case token.While:
		return s.parseWhile()
	case token.Repeat:
		return s.parseRepeat()
	case token.For:
		return s.parseFor()
	case token.Identifier:
		switch s.peek(1).Kind {
		case token.Assign, token.LBracket:
			return s.parseAssignment()
		case token.LParen:
			return s.parseCall()
		}
		return nil, s.unexpected(s.peek(1), "':=' or '(' after "+tok.Text)
	case token.Elsif, token.Else:
		return nil, s.errorf(tok, tok.Describe(), "%s without a preceding if", tok.Describe())
	}
	return nil, s.unexpected(tok, "statement")
}

// parseIf: IF cond [THEN] EOL stmts (ELSIF cond [THEN] EOL stmts)* (ELSE EOL stmts)?
func (s *state) parseIf() (ast.Stmt, error) {
	ifTok := s.next()
	chain := &ast.IfChain{Pos: ifTok.Pos}

	clause, err := s.parseClause(ifTok)
	if err != nil {
		return nil, err
	}
	chain.Clauses = append(chain.Clauses, clause)

	for {
		switch tok := s.peek(0); tok.Kind {
		case token.Elsif:
			s.next()
			clause, err := s.parseClause(tok)
			if err != nil {
				return nil, err
			}
			chain.Clauses = append(chain.Clauses, clause)
		case token.Else:
			s.next()
			if err := s.expectEOL(); err != nil {
				return nil, err
			}
			if chain.Else, err = s.parseBlock("else"); err != nil {
				return nil, err
			}
			return chain, nil
		default:
			return chain, nil
		}
	}
}

func (s *state) parseClause(kw token.Token) (ast.IfClause, error) {
	cond, err := s.parseBoolCompare()
	if err != nil {
		return ast.IfClause{}, err
	}
	s.accept(token.Then)
	if err := s.expectEOL(); err != nil {
		return ast.IfClause{}, err
	}
	body, err := s.parseBlock(token.Spelling(kw.Kind))
	if err != nil {
		return ast.IfClause{}, err
	}
	return ast.IfClause{Pos: kw.Pos, Condition: cond, Body: body}, nil
}

// parseWhile: WHILE cond EOL stmts
func (s *state) parseWhile() (ast.Stmt, error) {
	kw := s.next()
	cond, err := s.parseBoolCompare()
	if err != nil {
		return nil, err
	}
	if err := s.expectEOL(); err != nil {
		return nil, err
	}
	body, err := s.parseBlock("while")
	if err != nil {
		return nil, err
	}
	return &ast.While{Pos: kw.Pos, Condition: cond, Body: body}, nil
}

// parseRepeat: REPEAT UNTIL cond EOL stmts
func (s *state) parseRepeat() (ast.Stmt, error) {
	kw := s.next()
	if _, err := s.expect(token.Until, "'until' after 'repeat'"); err != nil {
		return nil, err
	}
	cond, err := s.parseBoolCompare()
	if err != nil {
		return nil, err
	}
	if err := s.expectEOL(); err != nil {
		return nil, err
	}
	body, err := s.parseBlock("repeat")
	if err != nil {
		return nil, err
	}
	return &ast.RepeatUntil{Pos: kw.Pos, Condition: cond, Body: body}, nil
}

// parseFor: FOR varref FROM expr TO expr EOL stmts
func (s *state) parseFor() (ast.Stmt, error) {
	kw := s.next()
	iter, err := s.parseVarRef()
	if err != nil {
		return nil, err
	}
	if iter.Index != nil {
		return nil, s.errorf(token.Token{Pos: iter.Pos}, iter.Name, "for iterator %q cannot be indexed", iter.Name)
	}
	if _, err := s.expect(token.From, "'from'"); err != nil {
		return nil, err
	}
	bounds, err := s.parseBounds()
	if err != nil {
		return nil, err
	}
	if err := s.expectEOL(); err != nil {
		return nil, err
	}
	body, err := s.parseBlock("for")
	if err != nil {
		return nil, err
	}
	return &ast.For{Pos: kw.Pos, Iterator: iter, From: bounds.Lower, To: bounds.Upper, Body: body}, nil
}

// parseAssignment: varref ASSIGN boolCompare EOL
func (s *state) parseAssignment() (ast.Stmt, error) {
	target, err := s.parseVarRef()
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(token.Assign, "':='"); err != nil {
		return nil, err
	}
	value, err := s.parseBoolCompare()
	if err != nil {
		return nil, err
	}
	if err := s.expectEOL(); err != nil {
		return nil, err
	}
	return &ast.Assignment{Pos: target.Pos, Target: target, Value: value}, nil
}

// parseCall: name '(' (argument (',' argument)*)? ')' EOL
func (s *state) parseCall() (ast.Stmt, error) {
	name := s.next()
	s.next() // '('

	call := &ast.FunctionCall{Pos: name.Pos, Name: name.Text, Arguments: make([]*ast.Argument, 0)}
	if !s.accept(token.RParen) {
		for {
			arg, err := s.parseArgument()
			if err != nil {
				return nil, err
			}
			call.Arguments = append(call.Arguments, arg)
			if !s.accept(token.Comma) {
				break
			}
		}
		if _, err := s.expect(token.RParen, "')' closing the arguments of "+name.Text); err != nil {
			return nil, err
		}
	}

	if err := s.expectEOL(); err != nil {
		return nil, err
	}
	return call, nil
}

// parseArgument: VAR varref | boolCompare
func (s *state) parseArgument() (*ast.Argument, error) {
	tok := s.peek(0)
	if s.accept(token.Var) {
		ref, err := s.parseVarRef()
		if err != nil {
			return nil, err
		}
		return &ast.Argument{Pos: tok.Pos, Reference: ref}, nil
	}

	expr, err := s.parseBoolCompare()
	if err != nil {
		return nil, err
	}
	return &ast.Argument{Pos: tok.Pos, Constant: expr}, nil
}
