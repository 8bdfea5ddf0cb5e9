package runtime

import (
	"fmt"
	"math"

	"mercator-hq/callisto/pkg/cal/ast"
)

// Arithmetic applies a math operator to two values of the same kind.
// Integer and real operands are computed in float64; the result is an
// integer only when both operands are integers, truncating toward zero.
// Strings support concatenation only.
func Arithmetic(op ast.MathOperator, left, right *Value) (*Value, error) {
	if left.Kind != right.Kind {
		return nil, fmt.Errorf("%w: %s %s %s", ErrKindMismatch, left.Kind, op, right.Kind)
	}

	switch left.Kind {
	case KindInteger, KindReal:
		return numeric(op, left, right)
	case KindString:
		if op == ast.OpAdd {
			return NewString(left.Str + right.Str), nil
		}
	}
	return nil, fmt.Errorf("%w: %s is not defined for %s", ErrUndefinedOperator, op, left.Kind)
}

func numeric(op ast.MathOperator, left, right *Value) (*Value, error) {
	integer := left.Kind == KindInteger
	if integer && (op == ast.OpDivide || op == ast.OpMod) && right.Int == 0 {
		return nil, fmt.Errorf("%w: %d %s 0", ErrDivisionByZero, left.Int, op)
	}

	a, b := left.Float(), right.Float()
	var r float64
	switch op {
	case ast.OpAdd:
		r = a + b
	case ast.OpSubtract:
		r = a - b
	case ast.OpMultiply:
		r = a * b
	case ast.OpDivide:
		r = a / b
	case ast.OpMod:
		r = math.Mod(a, b)
	default:
		return nil, fmt.Errorf("%w: unknown operator %s", ErrUndefinedOperator, op)
	}

	if !integer {
		return NewReal(r), nil
	}
	r = math.Trunc(r)
	if r >= math.MaxInt64 || r < math.MinInt64 {
		return nil, fmt.Errorf("%w: integer overflow in %d %s %d", ErrOutOfRange, left.Int, op, right.Int)
	}
	return NewInteger(int64(r)), nil
}

// Compare applies a relational or logical operator and yields a boolean.
// Numbers support every ordering and equality; strings and characters
// support equality only; booleans support and, or, not and equality.
func Compare(op ast.CompareOperator, left, right *Value) (*Value, error) {
	if left.Kind != right.Kind {
		return nil, fmt.Errorf("%w: %s %s %s", ErrKindMismatch, left.Kind, op, right.Kind)
	}

	switch left.Kind {
	case KindInteger, KindReal:
		if r, ok := compareNumbers(op, left, right); ok {
			return NewBoolean(r), nil
		}
	case KindString:
		if r, ok := equality(op, left.Str == right.Str); ok {
			return NewBoolean(r), nil
		}
	case KindCharacter:
		if r, ok := equality(op, left.Char == right.Char); ok {
			return NewBoolean(r), nil
		}
	case KindBoolean:
		if r, ok := compareBooleans(op, left.Bool, right.Bool); ok {
			return NewBoolean(r), nil
		}
	}
	return nil, fmt.Errorf("%w: %s is not defined for %s", ErrUndefinedOperator, op, left.Kind)
}

func compareNumbers(op ast.CompareOperator, left, right *Value) (bool, bool) {
	// Integers compare exactly; float64 would merge neighbours above 2^53.
	if left.Kind == KindInteger {
		a, b := left.Int, right.Int
		switch op {
		case ast.OpGreater:
			return a > b, true
		case ast.OpLess:
			return a < b, true
		case ast.OpGreaterEqual:
			return a >= b, true
		case ast.OpLessEqual:
			return a <= b, true
		}
		return equality(op, a == b)
	}

	a, b := left.Real, right.Real
	switch op {
	case ast.OpGreater:
		return a > b, true
	case ast.OpLess:
		return a < b, true
	case ast.OpGreaterEqual:
		return a >= b, true
	case ast.OpLessEqual:
		return a <= b, true
	}
	return equality(op, a == b)
}

func equality(op ast.CompareOperator, equal bool) (bool, bool) {
	switch op {
	case ast.OpEqual:
		return equal, true
	case ast.OpNotEqual:
		return !equal, true
	}
	return false, false
}

func compareBooleans(op ast.CompareOperator, a, b bool) (bool, bool) {
	switch op {
	case ast.OpAnd:
		return a && b, true
	case ast.OpOr:
		return a || b, true
	case ast.OpNot:
		return !a, true
	}
	return equality(op, a == b)
}
