// Package runtime holds the Callisto runtime value model.
//
// A Value is a tagged union over integer, real, string, character, boolean
// and array. The same representation serves literal folding and variable
// reads, so the evaluator applies Arithmetic and Compare directly to values.
// Each value carries its changeable flag, defining line and optional declared
// range; Set enforces kind equality and the range before storing.
//
// Failures are reported with the sentinel errors ErrKindMismatch,
// ErrOutOfRange, ErrUndefinedOperator, ErrDivisionByZero and
// ErrInvalidLiteral wrapped in a descriptive message. The evaluator maps them
// onto positioned language errors.
package runtime
