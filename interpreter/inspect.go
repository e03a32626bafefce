package interpreter

import "sort"

// VarsSnapshot returns a copy of the live scope (sorted usage is caller-side).
func (i *Interpreter) VarsSnapshot() map[string]Value {
	out := make(map[string]Value, len(i.vars))
	for k, v := range i.vars {
		out[k] = v
	}
	return out
}

// FuncNames returns sorted names of user-defined functions.
func (i *Interpreter) FuncNames() []string {
	names := make([]string, 0, len(i.funcs))
	for name := range i.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Func returns a registered function definition, for introspection.
func (i *Interpreter) Func(name string) (*Function, bool) {
	fn, ok := i.funcs[name]
	return fn, ok
}
