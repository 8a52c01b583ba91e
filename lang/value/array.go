package value

import (
	"fmt"
	"strings"
)

// Array is a mutable, ordered list of values (spec.md §4.6).
type Array struct {
	elems []Value
}

// NewArray returns an array containing elems. Callers should not
// subsequently modify elems through the original slice.
func NewArray(elems []Value) *Array { return &Array{elems: elems} }

func (a *Array) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range a.elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		if s, ok := e.(String); ok {
			fmt.Fprintf(&sb, "%q", string(s))
		} else {
			sb.WriteString(e.String())
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a *Array) Type() string { return "array" }
func (a *Array) Truth() Bool  { return a.Len() > 0 }
func (a *Array) Len() int     { return len(a.elems) }

// Index returns the element at i, which must satisfy 0 <= i < Len().
func (a *Array) Index(i int) Value { return a.elems[i] }

// SetIndex assigns the element at i, which must satisfy 0 <= i < Len().
func (a *Array) SetIndex(i int, v Value) { a.elems[i] = v }

// Append appends v to the array.
func (a *Array) Append(v Value) { a.elems = append(a.elems, v) }

// Elems returns the backing slice. Callers must not retain it past a
// mutation of the array.
func (a *Array) Elems() []Value { return a.elems }
