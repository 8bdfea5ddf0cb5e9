package runtime

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"mercator-hq/callisto/pkg/cal/ast"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindInteger Kind = iota + 1
	KindReal
	KindString
	KindCharacter
	KindBoolean
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindString:
		return "string"
	case KindCharacter:
		return "character"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindFor maps a declared data type onto its runtime kind.
func KindFor(t ast.DataType) Kind {
	switch t {
	case ast.TypeInteger:
		return KindInteger
	case ast.TypeReal:
		return KindReal
	case ast.TypeString:
		return KindString
	case ast.TypeCharacter:
		return KindCharacter
	case ast.TypeBoolean:
		return KindBoolean
	case ast.TypeArray:
		return KindArray
	}
	return 0
}

var (
	// ErrKindMismatch is returned when a value of one kind is stored into,
	// or combined with, a value of another kind.
	ErrKindMismatch = errors.New("kind mismatch")

	// ErrOutOfRange is returned when a value violates a declared range or
	// an array index falls outside the array's bounds.
	ErrOutOfRange = errors.New("out of range")

	// ErrUndefinedOperator is returned when an operator has no meaning for
	// the operands' kind.
	ErrUndefinedOperator = errors.New("undefined operator")

	// ErrDivisionByZero is returned for integer division or mod by zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidLiteral is returned when text cannot be parsed as a kind.
	ErrInvalidLiteral = errors.New("invalid literal")
)

// Bounds is an inclusive [Lower, Upper] range. For strings it bounds the
// length in characters.
type Bounds struct {
	Lower float64
	Upper float64
}

// Value is a runtime value. Exactly the payload fields matching Kind are
// meaningful.
type Value struct {
	Kind Kind

	Int  int64
	Real float64
	Str  string
	Char rune
	Bool bool

	// Array payload: Elems[i] holds index Lower+i.
	Elem  Kind
	Lower int64
	Elems []*Value

	// Changeable is false for constants and for temporaries computed from
	// constant sub-expressions.
	Changeable bool

	// Line is the source line that defined the value.
	Line int

	// Bounds is the declared range, if any.
	Bounds *Bounds
}

// NewInteger creates an integer value.
func NewInteger(n int64) *Value { return &Value{Kind: KindInteger, Int: n} }

// NewReal creates a real value.
func NewReal(f float64) *Value { return &Value{Kind: KindReal, Real: f} }

// NewString creates a string value.
func NewString(s string) *Value { return &Value{Kind: KindString, Str: s} }

// NewCharacter creates a character value.
func NewCharacter(r rune) *Value { return &Value{Kind: KindCharacter, Char: r} }

// NewBoolean creates a boolean value.
func NewBoolean(b bool) *Value { return &Value{Kind: KindBoolean, Bool: b} }

// NewArray allocates upper-lower+1 zero elements of kind elem.
func NewArray(elem Kind, lower, upper int64) (*Value, error) {
	if elem == KindArray || elem == 0 {
		return nil, fmt.Errorf("%w: arrays hold scalar elements, not %s", ErrKindMismatch, elem)
	}
	if upper < lower {
		return nil, fmt.Errorf("%w: array bounds [%d, %d] are reversed", ErrOutOfRange, lower, upper)
	}

	v := &Value{Kind: KindArray, Elem: elem, Lower: lower, Elems: make([]*Value, upper-lower+1)}
	for i := range v.Elems {
		v.Elems[i] = Zero(elem)
	}
	return v, nil
}

// Zero returns the zero value of a scalar kind; arrays are empty.
func Zero(kind Kind) *Value {
	if kind == KindArray {
		return &Value{Kind: KindArray}
	}
	return &Value{Kind: kind}
}

// Upper returns the upper bound of an array.
func (v *Value) Upper() int64 {
	return v.Lower + int64(len(v.Elems)) - 1
}

// Len returns the element count of an array or the character count of a string.
func (v *Value) Len() int {
	switch v.Kind {
	case KindArray:
		return len(v.Elems)
	case KindString:
		return utf8.RuneCountInString(v.Str)
	}
	return 0
}

// IsNumeric reports whether v is an integer or a real.
func (v *Value) IsNumeric() bool {
	return v.Kind == KindInteger || v.Kind == KindReal
}

// Float returns a numeric value as float64.
func (v *Value) Float() float64 {
	if v.Kind == KindInteger {
		return float64(v.Int)
	}
	return v.Real
}

// Clone returns a deep copy of v.
func (v *Value) Clone() *Value {
	c := *v
	if v.Elems != nil {
		c.Elems = make([]*Value, len(v.Elems))
		for i, e := range v.Elems {
			c.Elems[i] = e.Clone()
		}
	}
	if v.Bounds != nil {
		b := *v.Bounds
		c.Bounds = &b
	}
	return &c
}

// WithChangeable returns v after setting its changeable flag, recursively
// for array elements.
func (v *Value) WithChangeable(changeable bool) *Value {
	v.Changeable = changeable
	for _, e := range v.Elems {
		e.WithChangeable(changeable)
	}
	return v
}

// Index returns the element at index i.
func (v *Value) Index(i int64) (*Value, error) {
	if v.Kind != KindArray {
		return nil, fmt.Errorf("%w: %s value cannot be indexed", ErrKindMismatch, v.Kind)
	}
	if i < v.Lower || i > v.Upper() {
		return nil, fmt.Errorf("%w: index %d outside [%d, %d]", ErrOutOfRange, i, v.Lower, v.Upper())
	}
	return v.Elems[i-v.Lower], nil
}

// Set replaces v's payload with src's, keeping v's changeable flag, line and
// bounds. Kinds must match and src must satisfy v's bounds; on failure v is
// left unchanged.
func (v *Value) Set(src *Value) error {
	if v.Kind != src.Kind {
		return fmt.Errorf("%w: cannot store %s into %s", ErrKindMismatch, src.Kind, v.Kind)
	}
	if v.Kind == KindArray && v.Elem != 0 && v.Elem != src.Elem {
		return fmt.Errorf("%w: cannot store array of %s into array of %s", ErrKindMismatch, src.Elem, v.Elem)
	}
	if err := v.checkBounds(src); err != nil {
		return err
	}

	switch v.Kind {
	case KindInteger:
		v.Int = src.Int
	case KindReal:
		v.Real = src.Real
	case KindString:
		v.Str = src.Str
	case KindCharacter:
		v.Char = src.Char
	case KindBoolean:
		v.Bool = src.Bool
	case KindArray:
		v.Elem = src.Elem
		v.Lower = src.Lower
		v.Elems = make([]*Value, len(src.Elems))
		for i, e := range src.Elems {
			v.Elems[i] = e.Clone().WithChangeable(v.Changeable)
		}
	}
	return nil
}

// CheckBounds verifies v against its own declared range.
func (v *Value) CheckBounds() error {
	return v.checkBounds(v)
}

func (v *Value) checkBounds(src *Value) error {
	if v.Bounds == nil {
		return nil
	}

	var x float64
	switch src.Kind {
	case KindInteger, KindReal:
		x = src.Float()
	case KindString:
		x = float64(src.Len())
	default:
		return nil
	}

	if x < v.Bounds.Lower || x > v.Bounds.Upper {
		what := "value " + src.String()
		if src.Kind == KindString {
			what = fmt.Sprintf("length %d", src.Len())
		}
		return fmt.Errorf("%w: %s outside [%s, %s]", ErrOutOfRange, what,
			formatReal(v.Bounds.Lower), formatReal(v.Bounds.Upper))
	}
	return nil
}

// Parse replaces v's payload with text interpreted as v's kind.
func (v *Value) Parse(text string) error {
	text = strings.TrimSpace(text)
	src := &Value{Kind: v.Kind}

	switch v.Kind {
	case KindInteger:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", ErrInvalidLiteral, text)
		}
		src.Int = n
	case KindReal:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not a real", ErrInvalidLiteral, text)
		}
		src.Real = f
	case KindString:
		src.Str = text
	case KindCharacter:
		if utf8.RuneCountInString(text) != 1 {
			return fmt.Errorf("%w: %q is not a single character", ErrInvalidLiteral, text)
		}
		src.Char, _ = utf8.DecodeRuneInString(text)
	case KindBoolean:
		switch text {
		case "true":
			src.Bool = true
		case "false":
			src.Bool = false
		default:
			return fmt.Errorf("%w: %q is not a boolean", ErrInvalidLiteral, text)
		}
	default:
		return fmt.Errorf("%w: cannot read a %s", ErrKindMismatch, v.Kind)
	}

	return v.Set(src)
}

// String renders the value the way write prints it.
func (v *Value) String() string {
	switch v.Kind {
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindReal:
		return formatReal(v.Real)
	case KindString:
		return v.Str
	case KindCharacter:
		return string(v.Char)
	case KindBoolean:
		return strconv.FormatBool(v.Bool)
	case KindArray:
		parts := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	}
	return "<invalid>"
}

// formatReal always shows a fractional part so reals read back as reals.
func formatReal(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
