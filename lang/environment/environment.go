// Package environment implements the chained variable scopes of spec.md
// §4.5: a mutable name-to-value table per frame, an optional parent, and a
// shared resolver distance map that lets Get/Assign walk exactly as many
// parents as the resolver determined instead of searching outward.
package environment

import (
	"fmt"

	"github.com/dolthub/swiss"

	"github.com/tronlang/tron/lang/resolver"
	"github.com/tronlang/tron/lang/value"
)

// Environment is one frame of the lexical scope chain.
type Environment struct {
	values    *swiss.Map[string, value.Value]
	distances resolver.Distances
	types     map[string]string
	enclosing *Environment
}

// New returns the root (global) environment. dist is the resolver's
// distance map for the whole program; it is shared by every frame created
// through Enclose so a single resolver pass serves the entire chain
// (original_source/src/environment.rs: locals is an Rc shared across clones).
func New(dist resolver.Distances) *Environment {
	return &Environment{values: swiss.NewMap[string, value.Value](8), distances: dist, types: map[string]string{}}
}

// Enclose returns a new child frame of e, sharing e's distance map and
// declared-type table.
func (e *Environment) Enclose() *Environment {
	return &Environment{
		values:    swiss.NewMap[string, value.Value](8),
		distances: e.distances,
		types:     e.types,
		enclosing: e,
	}
}

// SetType records the declared type annotation for name, flat across the
// whole chain (original_source/src/environment/mod.rs: value_types), so a
// later Assign to that name can be checked against it regardless of which
// frame the declaration happened in.
func (e *Environment) SetType(name, typ string) { e.types[name] = typ }

// DeclaredType returns the type annotation recorded for name, if any.
func (e *Environment) DeclaredType(name string) (string, bool) {
	t, ok := e.types[name]
	return t, ok
}

// Resolve merges additional distance entries into the chain's shared
// distance map, as when a `use` statement loads and resolves another file
// into an already-running environment (original_source/src/environment.rs
// Environment::resolve). Every frame in the chain sees the merged entries
// immediately, since they all share the same underlying map.
func (e *Environment) Resolve(dist resolver.Distances) {
	for id, d := range dist {
		e.distances[id] = d
	}
}

// Define binds name to v in this frame, shadowing any binding of the same
// name in an enclosing frame.
func (e *Environment) Define(name string, v value.Value) {
	e.values.Put(name, v)
}

// Get returns the value bound to name for the reference identified by
// exprID, walking up the chain by the resolver-computed distance (or, if
// exprID has no entry, treating the reference as global and searching from
// the root).
func (e *Environment) Get(name string, exprID int) (value.Value, error) {
	if dist, ok := e.distances[exprID]; ok {
		return e.getAt(dist, name)
	}
	return e.getGlobal(name)
}

func (e *Environment) getAt(distance int, name string) (value.Value, error) {
	env := e
	for i := 0; i < distance; i++ {
		if env.enclosing == nil {
			return nil, fmt.Errorf("tried to resolve %q at a scope level deeper than the current environment", name)
		}
		env = env.enclosing
	}
	v, ok := env.values.Get(name)
	if !ok {
		return nil, fmt.Errorf("variable %q has not been declared", name)
	}
	return v, nil
}

func (e *Environment) getGlobal(name string) (value.Value, error) {
	env := e
	for env.enclosing != nil {
		env = env.enclosing
	}
	v, ok := env.values.Get(name)
	if !ok {
		return nil, fmt.Errorf("variable %q has not been declared", name)
	}
	return v, nil
}

// Assign stores v under name for the reference identified by exprID,
// walking up the chain by the resolver-computed distance, or writing to the
// global frame if exprID is unresolved. The write always happens; the
// returned bool merely reports whether a binding already existed at the
// target frame (spec.md §4.5: "Returns whether a binding actually
// existed"), it does not gate the write. The returned error fires only when
// exprID's recorded distance walks past the end of the chain — a
// resolver/evaluator invariant violation, not an ordinary undeclared-name
// condition.
func (e *Environment) Assign(name string, v value.Value, exprID int) (bool, error) {
	if dist, ok := e.distances[exprID]; ok {
		return e.assignAt(dist, name, v)
	}
	return e.assignGlobal(name, v)
}

func (e *Environment) assignAt(distance int, name string, v value.Value) (bool, error) {
	env := e
	for i := 0; i < distance; i++ {
		if env.enclosing == nil {
			return false, fmt.Errorf("tried to assign %q at a scope level deeper than the current environment", name)
		}
		env = env.enclosing
	}
	_, existed := env.values.Get(name)
	env.values.Put(name, v)
	return existed, nil
}

func (e *Environment) assignGlobal(name string, v value.Value) (bool, error) {
	env := e
	for env.enclosing != nil {
		env = env.enclosing
	}
	_, existed := env.values.Get(name)
	env.values.Put(name, v)
	return existed, nil
}
