package builtins

import (
	"fmt"

	"mercator-hq/callisto/pkg/runtime"
)

// chop keeps the first (left) or last (right) n characters of a string.
type chop struct {
	signature
	right bool
}

func newChopLeft() *chop {
	return &chop{signature: signature{name: "chopLeft", arity: 3}}
}

func newChopRight() *chop {
	return &chop{signature: signature{name: "chopRight", arity: 3}, right: true}
}

// IsArgListValid expects (string, integer, var string).
func (c *chop) IsArgListValid(args []*runtime.Value) bool {
	return len(args) == 3 &&
		input(args[0], runtime.KindString) &&
		input(args[1], runtime.KindInteger) &&
		output(args[2], runtime.KindString)
}

func (c *chop) Execute(args []*runtime.Value) error {
	if !c.IsArgListValid(args) {
		return nil
	}

	chars := []rune(args[0].Str)
	n := args[1].Int
	if n < 0 || n > int64(len(chars)) {
		return fmt.Errorf("%s: %w: cannot keep %d of %d characters", c.name, runtime.ErrOutOfRange, n, len(chars))
	}

	kept := chars[:n]
	if c.right {
		kept = chars[int64(len(chars))-n:]
	}
	return args[2].Set(runtime.NewString(string(kept)))
}

// substring stores the characters at zero-based positions [from, to).
type substring struct {
	signature
}

func newSubstring() *substring {
	return &substring{signature: signature{name: "substring", arity: 4}}
}

// IsArgListValid expects (string, integer, integer, var string).
func (s *substring) IsArgListValid(args []*runtime.Value) bool {
	return len(args) == 4 &&
		input(args[0], runtime.KindString) &&
		input(args[1], runtime.KindInteger) &&
		input(args[2], runtime.KindInteger) &&
		output(args[3], runtime.KindString)
}

func (s *substring) Execute(args []*runtime.Value) error {
	if !s.IsArgListValid(args) {
		return nil
	}

	chars := []rune(args[0].Str)
	from, to := args[1].Int, args[2].Int
	if from < 0 || to < from || to > int64(len(chars)) {
		return fmt.Errorf("%s: %w: [%d, %d) of %d characters", s.name, runtime.ErrOutOfRange, from, to, len(chars))
	}
	return args[3].Set(runtime.NewString(string(chars[from:to])))
}
