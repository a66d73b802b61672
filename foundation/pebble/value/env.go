// File: env.go
// Title: Pebble Variable Environment
// Description: Case-sensitive name to Value bindings that remember the order
//              in which names were first bound.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-14
//
// Change History:
// - 2025-09-14 v0.1.0: Initial environment

package value

// Env holds the variables of one script run or one console session.
// It is not safe for concurrent use.
type Env struct {
	names []string
	vars  map[string]Value
}

// NewEnv creates an empty environment
func NewEnv() *Env {
	return &Env{vars: make(map[string]Value)}
}

// Get returns the value bound to name
func (e *Env) Get(name string) (Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Set binds name to v. Rebinding keeps the name's original position.
func (e *Env) Set(name string, v Value) {
	if _, exists := e.vars[name]; !exists {
		e.names = append(e.names, name)
	}
	e.vars[name] = v
}

// Has reports whether name is bound
func (e *Env) Has(name string) bool {
	_, ok := e.vars[name]
	return ok
}

// Names returns the bound names in first-binding order
func (e *Env) Names() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// Len returns the number of bound names
func (e *Env) Len() int {
	return len(e.names)
}

// Clear removes every binding
func (e *Env) Clear() {
	e.names = nil
	e.vars = make(map[string]Value)
}
