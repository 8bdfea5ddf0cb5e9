package interpreter

import (
	"context"
	"fmt"
	"math"

	"mercator-hq/callisto/pkg/cal/ast"
	calerrors "mercator-hq/callisto/pkg/cal/errors"
	"mercator-hq/callisto/pkg/runtime"
)

func (in *Interpreter) execBlock(ctx context.Context, env *runtime.Environment, stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := in.exec(ctx, env, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) exec(ctx context.Context, env *runtime.Environment, stmt ast.Stmt) error {
	if err := interrupted(ctx, stmt.Position()); err != nil {
		return err
	}
	in.stats.Statements++
	in.observer.ObserveStatement(stmt.Kind())

	switch s := stmt.(type) {
	case *ast.Assignment:
		return in.execAssignment(ctx, env, s)
	case *ast.IfChain:
		return in.execIf(ctx, env, s)
	case *ast.For:
		return in.execFor(ctx, env, s)
	case *ast.While:
		return in.execWhile(ctx, env, s)
	case *ast.RepeatUntil:
		return in.execRepeat(ctx, env, s)
	case *ast.FunctionCall:
		return in.execCall(ctx, env, s)
	default:
		return fmt.Errorf("line %d: unsupported statement %s", stmt.Position().Line, stmt.Kind())
	}
}

// execAssignment stores a value into a declared, changeable variable or
// array element. A failed store leaves the target unchanged.
func (in *Interpreter) execAssignment(ctx context.Context, env *runtime.Environment, s *ast.Assignment) error {
	target, err := in.resolve(ctx, env, s.Target)
	if err != nil {
		return err
	}
	if !target.Changeable {
		return calerrors.Newf(calerrors.KindMutability, s.Pos, s.Target.Name,
			"cannot assign to constant %q", s.Target.Name)
	}

	v, err := in.eval(ctx, env, s.Value)
	if err != nil {
		return err
	}
	return runtimeError(s.Pos, s.Target.Name, target.Set(v))
}

func (in *Interpreter) execIf(ctx context.Context, env *runtime.Environment, s *ast.IfChain) error {
	for _, clause := range s.Clauses {
		ok, err := in.evalCondition(ctx, env, clause.Condition)
		if err != nil {
			return err
		}
		if ok {
			return in.execBlock(ctx, env, clause.Body)
		}
	}
	if s.HasElse() {
		return in.execBlock(ctx, env, s.Else)
	}
	return nil
}

// execFor binds a read-only iterator counting from From to To inclusive.
// To is evaluated once. On exit the binding the iterator shadowed, if any,
// is restored.
func (in *Interpreter) execFor(ctx context.Context, env *runtime.Environment, s *ast.For) error {
	from, err := in.evalInteger(ctx, env, s.From, "for loop start")
	if err != nil {
		return err
	}
	to, err := in.evalInteger(ctx, env, s.To, "for loop end")
	if err != nil {
		return err
	}

	name := s.Iterator.Name
	shadowed, hadBinding := env.Lookup(name)
	defer func() {
		if hadBinding {
			env.Bind(name, shadowed)
		} else {
			env.Remove(name)
		}
	}()

	iter := runtime.NewInteger(from)
	iter.Line = s.Line
	env.Bind(name, iter)

	for iter.Int <= to {
		if err := in.execBlock(ctx, env, s.Body); err != nil {
			return err
		}
		if iter.Int == math.MaxInt64 {
			break
		}
		iter.Int++
	}
	return nil
}

func (in *Interpreter) execWhile(ctx context.Context, env *runtime.Environment, s *ast.While) error {
	for {
		ok, err := in.evalCondition(ctx, env, s.Condition)
		if err != nil || !ok {
			return err
		}
		if err := in.execBlock(ctx, env, s.Body); err != nil {
			return err
		}
		if err := interrupted(ctx, s.Pos); err != nil {
			return err
		}
	}
}

// execRepeat runs the body before every check and stops once the
// condition holds.
func (in *Interpreter) execRepeat(ctx context.Context, env *runtime.Environment, s *ast.RepeatUntil) error {
	for {
		if err := in.execBlock(ctx, env, s.Body); err != nil {
			return err
		}
		done, err := in.evalCondition(ctx, env, s.Condition)
		if err != nil || done {
			return err
		}
		if err := interrupted(ctx, s.Pos); err != nil {
			return err
		}
	}
}
