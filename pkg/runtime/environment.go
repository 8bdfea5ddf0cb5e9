package runtime

import "sort"

// Environment maps names to values for exactly one function invocation.
// It is never shared between invocations.
type Environment struct {
	function string
	values   map[string]*Value
}

// NewEnvironment creates an empty environment for the named function.
func NewEnvironment(function string) *Environment {
	return &Environment{
		function: function,
		values:   make(map[string]*Value),
	}
}

// Function returns the name of the invocation that owns the environment.
func (e *Environment) Function() string {
	return e.function
}

// Lookup returns the value bound to name.
func (e *Environment) Lookup(name string) (*Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Bind binds name to v, replacing any previous binding.
func (e *Environment) Bind(name string, v *Value) {
	e.values[name] = v
}

// Remove deletes the binding for name.
func (e *Environment) Remove(name string) {
	delete(e.values, name)
}

// Len returns the number of bindings.
func (e *Environment) Len() int {
	return len(e.values)
}

// Names returns the bound names in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
