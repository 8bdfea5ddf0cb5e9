package builtins

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sort"

	"mercator-hq/callisto/pkg/runtime"
)

// IO is the terminal the I/O built-ins talk to.
type IO struct {
	In  io.Reader
	Out io.Writer
}

// StdIO returns the process's standard input and output.
func StdIO() IO {
	return IO{In: os.Stdin, Out: os.Stdout}
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	seed    uint64
	seeded  bool
	exclude map[string]bool
}

// WithSeed makes getRandom deterministic.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// Without leaves the named built-ins out of the registry.
func Without(names ...string) Option {
	return func(o *options) {
		for _, name := range names {
			o.exclude[name] = true
		}
	}
}

// Registry holds built-ins by name. It is populated once and read-only
// afterwards, so it needs no locking.
type Registry struct {
	builtins map[string]runtime.Builtin
}

// RegistryError describes a failed registry operation.
type RegistryError struct {
	Name      string
	Operation string
	Message   string
}

// Error implements the error interface.
func (e *RegistryError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("builtin registry %s failed for %q: %s", e.Operation, e.Name, e.Message)
	}
	return fmt.Sprintf("builtin registry %s failed: %s", e.Operation, e.Message)
}

// NewEmptyRegistry creates a registry with no built-ins.
func NewEmptyRegistry() *Registry {
	return &Registry{builtins: make(map[string]runtime.Builtin)}
}

// NewRegistry creates a registry holding every standard built-in bound to
// the given terminal.
func NewRegistry(stdio IO, opts ...Option) *Registry {
	o := &options{exclude: make(map[string]bool)}
	for _, opt := range opts {
		opt(o)
	}

	var rng *rand.Rand
	if o.seeded {
		rng = rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	var in *bufio.Reader
	if stdio.In != nil {
		in = bufio.NewReader(stdio.In)
	}
	out := stdio.Out
	if out == nil {
		out = io.Discard
	}

	r := NewEmptyRegistry()
	for _, b := range []runtime.Builtin{
		newWrite(out),
		newWriteLine(out),
		newRead(in),
		newFirst(),
		newLast(),
		newLength(),
		newChopLeft(),
		newChopRight(),
		newSubstring(),
		newSquareRoot(),
		newGetRandom(rng),
		newIntegerToReal(),
		newRealToInteger(),
	} {
		if o.exclude[b.Name()] {
			continue
		}
		// Names above are distinct and non-empty.
		_ = r.Register(b)
	}
	return r
}

// Register adds a built-in. Names must be non-empty and unique.
func (r *Registry) Register(b runtime.Builtin) error {
	if b == nil {
		return &RegistryError{Operation: "register", Message: "builtin cannot be nil"}
	}
	if b.Name() == "" {
		return &RegistryError{Operation: "register", Message: "builtin name cannot be empty"}
	}
	if _, exists := r.builtins[b.Name()]; exists {
		return &RegistryError{Name: b.Name(), Operation: "register", Message: "already registered"}
	}

	r.builtins[b.Name()] = b
	return nil
}

// Lookup returns the built-in with the given name.
func (r *Registry) Lookup(name string) (runtime.Builtin, bool) {
	b, ok := r.builtins[name]
	return b, ok
}

// Names returns the registered names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builtins))
	for name := range r.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered built-ins.
func (r *Registry) Count() int {
	return len(r.builtins)
}

// signature supplies Name, Arity and Variadic.
type signature struct {
	name     string
	arity    int
	variadic bool
}

func (s signature) Name() string   { return s.name }
func (s signature) Arity() int     { return s.arity }
func (s signature) Variadic() bool { return s.variadic }

// input reports whether v is a non-changeable value of the given kind.
func input(v *runtime.Value, kind runtime.Kind) bool {
	return !v.Changeable && v.Kind == kind
}

// output reports whether v is a changeable value of the given kind.
func output(v *runtime.Value, kind runtime.Kind) bool {
	return v.Changeable && v.Kind == kind
}
