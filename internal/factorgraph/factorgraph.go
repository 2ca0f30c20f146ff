// Package factorgraph holds the variable, message and factor nodes used for
// local message passing, plus the Gaussian factor base shared by every
// concrete factor.
package factorgraph

import "fmt"

// Variable is a named holder of an evolving belief. It is not safe for
// concurrent writers; callers sequence updates to the same variable.
type Variable[T any] struct {
	name  string
	prior T
	value T
}

// NewVariable returns a variable whose value starts at prior.
func NewVariable[T any](name string, prior T) *Variable[T] {
	return &Variable[T]{name: name, prior: prior, value: prior}
}

func (v *Variable[T]) Name() string  { return v.name }
func (v *Variable[T]) Value() T      { return v.value }
func (v *Variable[T]) SetValue(t T)  { v.value = t }
func (v *Variable[T]) ResetToPrior() { v.value = v.prior }

func (v *Variable[T]) String() string {
	return v.name
}

// Message is a directed contribution from a factor toward a variable. The
// label only serves diagnostics.
type Message[T any] struct {
	value T
	label string
}

// NewMessage formats the label with fmt.Sprintf semantics.
func NewMessage[T any](value T, format string, args ...any) *Message[T] {
	return &Message[T]{value: value, label: fmt.Sprintf(format, args...)}
}

func (m *Message[T]) Value() T     { return m.value }
func (m *Message[T]) SetValue(t T) { m.value = t }

func (m *Message[T]) String() string {
	return m.label
}

// Factor owns messages and the variables they are bound to, but no variable
// state itself.
type Factor[T any] struct {
	name      string
	messages  []*Message[T]
	variables []*Variable[T]
	bindings  map[*Message[T]]*Variable[T]
}

func newFactor[T any](name string) Factor[T] {
	return Factor[T]{name: name, bindings: make(map[*Message[T]]*Variable[T])}
}

func (f *Factor[T]) Name() string { return f.name }

func (f *Factor[T]) String() string {
	return f.name
}

// NumberOfMessages is the count of messages bound so far.
func (f *Factor[T]) NumberOfMessages() int { return len(f.messages) }

// Messages returns the bound messages in binding order.
func (f *Factor[T]) Messages() []*Message[T] { return f.messages }

// Variables returns the bound variables in binding order.
func (f *Factor[T]) Variables() []*Variable[T] { return f.variables }

// BoundVariable returns the variable a message was bound to, if any.
func (f *Factor[T]) BoundVariable(m *Message[T]) (*Variable[T], bool) {
	v, ok := f.bindings[m]
	return v, ok
}

// ResetMarginals resets every bound variable to its prior.
func (f *Factor[T]) ResetMarginals() {
	for _, v := range f.variables {
		v.ResetToPrior()
	}
}

func (f *Factor[T]) bind(v *Variable[T], m *Message[T]) *Message[T] {
	f.bindings[m] = v
	f.messages = append(f.messages, m)
	f.variables = append(f.variables, v)
	return m
}

func (f *Factor[T]) messageAt(i int) (*Message[T], *Variable[T], error) {
	if i < 0 || i >= len(f.messages) {
		return nil, nil, fmt.Errorf("factor %s: message index %d out of range [0,%d)", f.name, i, len(f.messages))
	}
	m := f.messages[i]
	return m, f.bindings[m], nil
}
