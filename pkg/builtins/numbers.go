package builtins

import (
	"fmt"
	"math"
	"math/rand/v2"

	"mercator-hq/callisto/pkg/runtime"
)

// convert maps one non-changeable input kind onto a changeable output kind.
type convert struct {
	signature
	in, out runtime.Kind
	fn      func(*runtime.Value) (*runtime.Value, error)
}

func newSquareRoot() *convert {
	return &convert{
		signature: signature{name: "squareRoot", arity: 2},
		in:        runtime.KindReal,
		out:       runtime.KindReal,
		fn: func(v *runtime.Value) (*runtime.Value, error) {
			return runtime.NewReal(math.Sqrt(v.Real)), nil
		},
	}
}

func newIntegerToReal() *convert {
	return &convert{
		signature: signature{name: "integerToReal", arity: 2},
		in:        runtime.KindInteger,
		out:       runtime.KindReal,
		fn: func(v *runtime.Value) (*runtime.Value, error) {
			return runtime.NewReal(float64(v.Int)), nil
		},
	}
}

func newRealToInteger() *convert {
	return &convert{
		signature: signature{name: "realToInteger", arity: 2},
		in:        runtime.KindReal,
		out:       runtime.KindInteger,
		fn: func(v *runtime.Value) (*runtime.Value, error) {
			t := math.Trunc(v.Real)
			if math.IsNaN(t) || t >= math.MaxInt64 || t < math.MinInt64 {
				return nil, fmt.Errorf("realToInteger: %w: %s does not fit an integer", runtime.ErrOutOfRange, v)
			}
			return runtime.NewInteger(int64(t)), nil
		},
	}
}

// IsArgListValid expects (in, var out).
func (c *convert) IsArgListValid(args []*runtime.Value) bool {
	return len(args) == 2 && input(args[0], c.in) && output(args[1], c.out)
}

func (c *convert) Execute(args []*runtime.Value) error {
	if !c.IsArgListValid(args) {
		return nil
	}
	v, err := c.fn(args[0])
	if err != nil {
		return err
	}
	return args[1].Set(v)
}

// getRandom stores a non-negative pseudo-random integer.
type getRandom struct {
	signature
	rng *rand.Rand
}

func newGetRandom(rng *rand.Rand) *getRandom {
	return &getRandom{signature: signature{name: "getRandom", arity: 1}, rng: rng}
}

// IsArgListValid expects (var integer).
func (g *getRandom) IsArgListValid(args []*runtime.Value) bool {
	return len(args) == 1 && output(args[0], runtime.KindInteger)
}

func (g *getRandom) Execute(args []*runtime.Value) error {
	if !g.IsArgListValid(args) {
		return nil
	}

	out := args[0]
	if b := out.Bounds; b != nil {
		lo, hi := int64(math.Ceil(b.Lower)), int64(math.Floor(b.Upper))
		if hi < lo {
			return fmt.Errorf("getRandom: %w: empty range", runtime.ErrOutOfRange)
		}
		if span := hi - lo + 1; span > 0 {
			return out.Set(runtime.NewInteger(lo + g.rng.Int64N(span)))
		}
	}
	return out.Set(runtime.NewInteger(int64(g.rng.Int32())))
}
