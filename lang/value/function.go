package value

import (
	"fmt"

	"github.com/tronlang/tron/lang/ast"
)

// Function is a user-defined, closure-capturing callable created by a
// function declaration, a function expression, or the `| x, y | { }`
// callback sugar (spec.md §4.7 "Function-decl", §9). Closure holds a
// *environment.Environment; it is typed as any here so this package does not
// import lang/environment, which itself stores Values and would otherwise
// form an import cycle. lang/interp, which constructs and calls Functions,
// knows the concrete type on both ends.
type Function struct {
	FnName     string
	Params     []ast.Param
	ReturnType string // empty means untyped, "null" is the default for a bodiless return
	Body       []ast.Stmt
	Closure    any
}

func (f *Function) String() string { return fmt.Sprintf("<fn %s>", f.name()) }
func (f *Function) Type() string   { return "function" }

// Truth is always True for a callable, per spec.md §4.6.
func (f *Function) Truth() Bool { return True }
func (f *Function) Name() string { return f.name() }
func (f *Function) Arity() int   { return len(f.Params) }

func (f *Function) name() string {
	if f.FnName == "" {
		return "anonymous"
	}
	return f.FnName
}

// Builtin is a native function registered with the interpreter (spec.md
// §9, "Builtins", supplemented by the @name(args) syntax in DESIGN.md).
type Builtin struct {
	BuiltinName string
	NumArgs     int // -1 means variadic
	Fn          func(args []Value) (Value, error)
}

func (b *Builtin) String() string { return fmt.Sprintf("<builtin %s>", b.BuiltinName) }
func (b *Builtin) Type() string   { return "builtin" }
func (b *Builtin) Truth() Bool    { return True }
func (b *Builtin) Name() string   { return b.BuiltinName }
func (b *Builtin) Arity() int     { return b.NumArgs }

var (
	_ Callable = (*Function)(nil)
	_ Callable = (*Builtin)(nil)
)
