package interpreter

import (
	"context"
	"fmt"

	"mercator-hq/callisto/pkg/cal/ast"
	calerrors "mercator-hq/callisto/pkg/cal/errors"
	"mercator-hq/callisto/pkg/runtime"
)

// eval reduces an expression to a value. Variable references yield the
// bound value itself; callers that keep a result clone it or Set from it.
func (in *Interpreter) eval(ctx context.Context, env *runtime.Environment, expr ast.Expr) (*runtime.Value, error) {
	var v *runtime.Value

	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		v = runtime.NewInteger(e.Value)
	case *ast.RealLiteral:
		v = runtime.NewReal(e.Value)
	case *ast.StringLiteral:
		v = runtime.NewString(e.Value)
	case *ast.CharacterLiteral:
		v = runtime.NewCharacter(e.Value)
	case *ast.BooleanLiteral:
		v = runtime.NewBoolean(e.Value)
	case *ast.VariableReference:
		return in.resolve(ctx, env, e)
	case *ast.MathOp:
		left, right, err := in.evalOperands(ctx, env, e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		r, err := runtime.Arithmetic(e.Operator, left, right)
		if err != nil {
			return nil, runtimeError(e.Pos, e.Operator.String(), err)
		}
		v = r
	case *ast.BooleanCompare:
		left, right, err := in.evalOperands(ctx, env, e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		r, err := runtime.Compare(e.Operator, left, right)
		if err != nil {
			return nil, runtimeError(e.Pos, e.Operator.String(), err)
		}
		v = r
	case *ast.ArrayLiteral:
		return nil, calerrors.New(calerrors.KindType, e.Pos, "array", "an array shape is not a value")
	default:
		return nil, fmt.Errorf("line %d: unsupported expression %s", expr.Position().Line, expr.Kind())
	}

	v.Line = expr.Position().Line
	return v, nil
}

func (in *Interpreter) evalOperands(ctx context.Context, env *runtime.Environment, l, r ast.Expr) (*runtime.Value, *runtime.Value, error) {
	left, err := in.eval(ctx, env, l)
	if err != nil {
		return nil, nil, err
	}
	right, err := in.eval(ctx, env, r)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// resolve finds the value a reference names: the bound variable, or one of
// its elements when the reference is indexed.
func (in *Interpreter) resolve(ctx context.Context, env *runtime.Environment, ref *ast.VariableReference) (*runtime.Value, error) {
	v, ok := env.Lookup(ref.Name)
	if !ok {
		err := calerrors.Newf(calerrors.KindName, ref.Pos, ref.Name,
			"undeclared variable %q in %s", ref.Name, env.Function())
		err.Suggestion = calerrors.Suggest(ref.Name, env.Names())
		return nil, err
	}
	if ref.Index == nil {
		return v, nil
	}

	if v.Kind != runtime.KindArray {
		return nil, calerrors.Newf(calerrors.KindType, ref.Pos, ref.Name,
			"%q is a %s and cannot be indexed", ref.Name, v.Kind)
	}
	idx, err := in.evalInteger(ctx, env, ref.Index, "array index")
	if err != nil {
		return nil, err
	}
	elem, err := v.Index(idx)
	if err != nil {
		return nil, runtimeError(ref.Pos, ref.Name, err)
	}
	return elem, nil
}

func (in *Interpreter) evalCondition(ctx context.Context, env *runtime.Environment, expr ast.Expr) (bool, error) {
	v, err := in.eval(ctx, env, expr)
	if err != nil {
		return false, err
	}
	if v.Kind != runtime.KindBoolean {
		return false, calerrors.Newf(calerrors.KindType, expr.Position(), "condition",
			"condition must be boolean, got %s", v.Kind)
	}
	return v.Bool, nil
}

func (in *Interpreter) evalInteger(ctx context.Context, env *runtime.Environment, expr ast.Expr, what string) (int64, error) {
	v, err := in.eval(ctx, env, expr)
	if err != nil {
		return 0, err
	}
	if v.Kind != runtime.KindInteger {
		return 0, calerrors.Newf(calerrors.KindType, expr.Position(), what,
			"%s must be an integer, got %s", what, v.Kind)
	}
	return v.Int, nil
}

func (in *Interpreter) evalNumber(ctx context.Context, env *runtime.Environment, expr ast.Expr, what string) (float64, error) {
	v, err := in.eval(ctx, env, expr)
	if err != nil {
		return 0, err
	}
	if !v.IsNumeric() {
		return 0, calerrors.Newf(calerrors.KindType, expr.Position(), what,
			"%s must be a number, got %s", what, v.Kind)
	}
	return v.Float(), nil
}
