package value

import (
	"fmt"
	"strings"

	"github.com/dolthub/swiss"
)

// Object is a `{ key: value, ... }` record (spec.md §4.6). Field lookup goes
// through a swiss.Map for O(1) access; a parallel slice of keys preserves
// insertion order for String and for-each iteration, the same split the
// teacher's machine package left for a future Map.Iterate to fill in.
type Object struct {
	fields *swiss.Map[string, Value]
	order  []string
}

// NewObject returns an empty object pre-sized for size fields.
func NewObject(size int) *Object {
	if size < 1 {
		size = 1
	}
	return &Object{fields: swiss.NewMap[string, Value](uint32(size))}
}

func (o *Object) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range o.order {
		if i > 0 {
			sb.WriteString(", ")
		}
		v, _ := o.fields.Get(k)
		fmt.Fprintf(&sb, "%s: %s", k, v.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o *Object) Type() string { return "object" }

// Truth is always True for an Object, even when empty (spec.md §4.6).
func (o *Object) Truth() Bool { return True }
func (o *Object) Len() int    { return len(o.order) }

// Get returns the value stored under key and whether it was present.
func (o *Object) Get(key string) (Value, bool) { return o.fields.Get(key) }

// Set stores value under key, appending key to the iteration order the
// first time it is written.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.fields.Get(key); !ok {
		o.order = append(o.order, key)
	}
	o.fields.Put(key, v)
}

// Keys returns the object's keys in insertion order. Callers must not
// modify the result.
func (o *Object) Keys() []string { return o.order }
