package runtime

// Builtin is a native function callable from Callisto source.
//
// The evaluator checks arity for non-variadic built-ins, clones every
// argument and hands the clones to Execute. A clone is changeable only when
// the caller passed a changeable variable with var; Execute may mutate those
// clones in place and the evaluator copies them back afterwards.
//
// Execute first consults IsArgListValid. An argument list that does not fit
// the built-in's pattern makes Execute return nil without any effect.
type Builtin interface {
	// Name is the identifier the built-in is called by.
	Name() string

	// Arity is the required argument count; ignored when Variadic is true.
	Arity() int

	// Variadic reports whether any number of arguments is accepted.
	Variadic() bool

	// IsArgListValid reports whether args match the expected kinds and
	// mutability pattern.
	IsArgListValid(args []*Value) bool

	// Execute performs the built-in's effect on args.
	Execute(args []*Value) error
}

// Registry resolves built-ins by name.
type Registry interface {
	Lookup(name string) (Builtin, bool)
	Names() []string
}
