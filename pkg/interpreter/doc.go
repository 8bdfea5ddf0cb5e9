// Package interpreter evaluates a parsed Callisto program by walking its
// syntax tree.
//
// # Invocation
//
// Every call to a user function gets a fresh runtime.Environment holding
// its parameters, bound positionally to clones of the evaluated arguments,
// and its constants and variables in declaration order. Built-ins receive
// clones too and mutate the changeable ones in place.
//
// # By-reference arguments
//
// An argument written "var name" is eligible for output. After a user
// function returns, the callee's final value of each changeable parameter
// is copied back into the variable (or array element) the matching var
// argument named. Constant arguments are never copied back, and passing a
// constant with var to a changeable parameter is a mutability error.
//
// # Errors
//
// Evaluation stops at the first error. Language errors are *errors.Error
// values of kind name, mutability, type, range, arithmetic or io, carrying
// the line of the offending construct. Cancelling the context stops a run
// between statements with an error wrapping ctx.Err().
//
// # Basic Usage
//
//	reg := builtins.NewRegistry(builtins.StdIO())
//	in, err := interpreter.New(prog, reg, interpreter.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	if err := in.Run(ctx); err != nil {
//	    return err
//	}
package interpreter
