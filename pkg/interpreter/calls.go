package interpreter

import (
	"context"

	"mercator-hq/callisto/pkg/cal/ast"
	calerrors "mercator-hq/callisto/pkg/cal/errors"
	"mercator-hq/callisto/pkg/cal/token"
	"mercator-hq/callisto/pkg/runtime"
)

// execCall runs a call statement: resolve the callee, check arity, evaluate
// the arguments, invoke, then copy by-reference results back.
func (in *Interpreter) execCall(ctx context.Context, env *runtime.Environment, call *ast.FunctionCall) error {
	if b, ok := in.builtins.Lookup(call.Name); ok {
		return in.callBuiltin(ctx, env, call, b)
	}

	fn, ok := in.program.Function(call.Name)
	if !ok {
		err := calerrors.Newf(calerrors.KindName, call.Pos, call.Name, "undefined function %q", call.Name)
		err.Suggestion = calerrors.Suggest(call.Name, append(in.program.Names(), in.builtins.Names()...))
		return err
	}
	if len(call.Arguments) != fn.Arity() {
		return invalidArguments(call, fn.Arity())
	}

	args := make([]*runtime.Value, len(call.Arguments))
	for i, a := range call.Arguments {
		v, err := in.evalArgument(ctx, env, a)
		if err != nil {
			return err
		}
		args[i] = v
		if param := fn.Parameters[i]; !a.IsConstant() && param.Changeable && !v.Changeable {
			return calerrors.Newf(calerrors.KindMutability, a.Pos, a.Reference.Name,
				"constant %q cannot be passed by reference to %s", a.Reference.Name, fn.Name)
		}
	}

	calleeEnv, err := in.invoke(ctx, fn, args, call.Pos)
	if err != nil {
		return err
	}

	for i, param := range fn.Parameters {
		a := call.Arguments[i]
		if a.IsConstant() || !param.Changeable {
			continue
		}
		result, ok := calleeEnv.Lookup(param.Name)
		if !ok {
			continue
		}
		if err := in.copyBack(ctx, env, a.Reference, result); err != nil {
			return err
		}
	}
	return nil
}

// callBuiltin hands cloned arguments to a built-in and copies the changeable
// ones back afterwards.
func (in *Interpreter) callBuiltin(ctx context.Context, env *runtime.Environment, call *ast.FunctionCall, b runtime.Builtin) error {
	if !b.Variadic() && len(call.Arguments) != b.Arity() {
		return invalidArguments(call, b.Arity())
	}

	args := make([]*runtime.Value, len(call.Arguments))
	for i, a := range call.Arguments {
		v, err := in.evalArgument(ctx, env, a)
		if err != nil {
			return err
		}
		args[i] = v
	}

	in.stats.BuiltinCalls++
	in.observer.ObserveCall(b.Name(), true)
	if in.config.TraceCalls {
		in.logger.DebugContext(ctx, "calling builtin",
			"function", b.Name(),
			"line", call.Line,
			"args", len(args),
			"valid", b.IsArgListValid(args),
		)
	}

	if err := b.Execute(args); err != nil {
		return runtimeError(call.Pos, call.Name, err)
	}

	for i, a := range call.Arguments {
		if a.IsConstant() || !args[i].Changeable {
			continue
		}
		if err := in.copyBack(ctx, env, a.Reference, args[i]); err != nil {
			return err
		}
	}
	return nil
}

// evalArgument evaluates one argument into a fresh value. Constant
// arguments are never changeable; reference arguments keep the changeable
// flag of the variable they name.
func (in *Interpreter) evalArgument(ctx context.Context, env *runtime.Environment, a *ast.Argument) (*runtime.Value, error) {
	if a.IsConstant() {
		v, err := in.eval(ctx, env, a.Constant)
		if err != nil {
			return nil, err
		}
		return v.Clone().WithChangeable(false), nil
	}

	target, err := in.resolve(ctx, env, a.Reference)
	if err != nil {
		return nil, err
	}
	return target.Clone(), nil
}

// copyBack stores a callee's result into the caller's variable or element.
func (in *Interpreter) copyBack(ctx context.Context, env *runtime.Environment, ref *ast.VariableReference, result *runtime.Value) error {
	target, err := in.resolve(ctx, env, ref)
	if err != nil {
		return err
	}
	if !target.Changeable {
		return calerrors.Newf(calerrors.KindMutability, ref.Pos, ref.Name,
			"cannot copy a result back into constant %q", ref.Name)
	}
	return runtimeError(ref.Pos, ref.Name, target.Set(result))
}

// invoke runs a user function in a fresh environment holding its
// parameters, bound positionally to args, and its declared locals. The
// environment is returned so the caller can read by-reference results.
func (in *Interpreter) invoke(ctx context.Context, fn *ast.Function, args []*runtime.Value, at token.Pos) (*runtime.Environment, error) {
	in.depth++
	defer func() { in.depth-- }()

	if limit := in.config.MaxCallDepth; limit > 0 && in.depth > limit {
		return nil, calerrors.Newf(calerrors.KindRange, at, fn.Name,
			"call depth exceeded: %s would nest %d calls, limit is %d", fn.Name, in.depth, limit)
	}
	if in.depth > in.stats.MaxDepth {
		in.stats.MaxDepth = in.depth
	}

	in.stats.Calls++
	in.observer.ObserveCall(fn.Name, false)
	if in.config.TraceCalls {
		in.logger.DebugContext(ctx, "invoking function",
			"function", fn.Name,
			"line", at.Line,
			"depth", in.depth,
			"args", len(args),
		)
	}

	env := runtime.NewEnvironment(fn.Name)

	for i, param := range fn.Parameters {
		v, err := bindParameter(param, args[i], at)
		if err != nil {
			return nil, err
		}
		env.Bind(param.Name, v)
	}

	for _, local := range fn.Locals {
		v, err := in.instantiate(ctx, env, local)
		if err != nil {
			return nil, err
		}
		env.Bind(local.Name, v)
	}

	if err := in.execBlock(ctx, env, fn.Statements); err != nil {
		return nil, err
	}
	return env, nil
}

// bindParameter copies an argument into a parameter slot after checking
// the declared kind. Parameters never declare a range, so the caller's
// range stays behind; copy-back enforces it on the way out.
func bindParameter(param *ast.Variable, arg *runtime.Value, at token.Pos) (*runtime.Value, error) {
	kind := runtime.KindFor(param.Type)
	if arg.Kind != kind {
		return nil, calerrors.Newf(calerrors.KindType, at, param.Name,
			"parameter %q expects %s, got %s", param.Name, kind, arg.Kind)
	}
	if kind == runtime.KindArray {
		if elem := runtime.KindFor(param.Elem); arg.Elem != elem {
			return nil, calerrors.Newf(calerrors.KindType, at, param.Name,
				"parameter %q expects array of %s, got array of %s", param.Name, elem, arg.Elem)
		}
	}

	v := arg.Clone().WithChangeable(param.Changeable)
	v.Bounds = nil
	v.Line = param.Line
	return v, nil
}

// instantiate creates the value a local declaration starts with. Bounds
// and ranges may refer to locals declared before it.
func (in *Interpreter) instantiate(ctx context.Context, env *runtime.Environment, decl *ast.Variable) (*runtime.Value, error) {
	var v *runtime.Value

	switch lit := decl.Value.(type) {
	case nil:
		v = runtime.Zero(runtime.KindFor(decl.Type))
	case *ast.ArrayLiteral:
		lower, err := in.evalInteger(ctx, env, lit.Lower, "array lower bound")
		if err != nil {
			return nil, err
		}
		upper, err := in.evalInteger(ctx, env, lit.Upper, "array upper bound")
		if err != nil {
			return nil, err
		}
		if v, err = runtime.NewArray(runtime.KindFor(lit.Elem), lower, upper); err != nil {
			return nil, runtimeError(decl.Pos, decl.Name, err)
		}
	default:
		lv, err := in.eval(ctx, env, lit)
		if err != nil {
			return nil, err
		}
		v = lv.Clone()
	}

	if decl.Range != nil {
		lower, err := in.evalNumber(ctx, env, decl.Range.Lower, "range lower bound")
		if err != nil {
			return nil, err
		}
		upper, err := in.evalNumber(ctx, env, decl.Range.Upper, "range upper bound")
		if err != nil {
			return nil, err
		}
		if upper < lower {
			return nil, calerrors.Newf(calerrors.KindRange, decl.Pos, decl.Name,
				"range of %q is empty", decl.Name)
		}
		v.Bounds = &runtime.Bounds{Lower: lower, Upper: upper}
	}

	v.WithChangeable(decl.Changeable)
	v.Line = decl.Line
	return v, nil
}

func invalidArguments(call *ast.FunctionCall, arity int) error {
	return calerrors.Newf(calerrors.KindName, call.Pos, call.Name,
		"invalid arguments: %s expects %d argument(s), got %d", call.Name, arity, len(call.Arguments))
}
