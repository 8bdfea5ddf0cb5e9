package builtins

import (
	"fmt"

	"mercator-hq/callisto/pkg/runtime"
)

// element copies the lowest or highest slot of an array into its output.
type element struct {
	signature
	last bool
}

func newFirst() *element {
	return &element{signature: signature{name: "first", arity: 2}}
}

func newLast() *element {
	return &element{signature: signature{name: "last", arity: 2}, last: true}
}

// IsArgListValid expects (array of T, var T).
func (e *element) IsArgListValid(args []*runtime.Value) bool {
	return len(args) == 2 &&
		input(args[0], runtime.KindArray) &&
		output(args[1], args[0].Elem)
}

func (e *element) Execute(args []*runtime.Value) error {
	if !e.IsArgListValid(args) {
		return nil
	}

	arr := args[0]
	if arr.Len() == 0 {
		return fmt.Errorf("%s: %w: array is empty", e.name, runtime.ErrOutOfRange)
	}

	idx := arr.Lower
	if e.last {
		idx = arr.Upper()
	}
	v, err := arr.Index(idx)
	if err != nil {
		return fmt.Errorf("%s: %w", e.name, err)
	}
	return args[1].Set(v)
}

// length stores the element count of an array or the character count of a
// string.
type length struct {
	signature
}

func newLength() *length {
	return &length{signature: signature{name: "length", arity: 2}}
}

// IsArgListValid expects (array or string, var integer).
func (l *length) IsArgListValid(args []*runtime.Value) bool {
	if len(args) != 2 || !output(args[1], runtime.KindInteger) {
		return false
	}
	return input(args[0], runtime.KindArray) || input(args[0], runtime.KindString)
}

func (l *length) Execute(args []*runtime.Value) error {
	if !l.IsArgListValid(args) {
		return nil
	}
	return args[1].Set(runtime.NewInteger(int64(args[0].Len())))
}
