// Package interp implements the tree-walking evaluator of spec.md §4.7: it
// executes a resolved statement list against an Environment chain, producing
// side effects (variable mutation, printing, file loading) and, for the
// top-level entry point, nothing but a possible error. Types are dispatched
// with plain Go type switches rather than a double-dispatch visitor, per
// spec.md §9's explicit instruction for the value and AST layers.
package interp

import (
	"github.com/tronlang/tron/lang/ast"
	"github.com/tronlang/tron/lang/environment"
	"github.com/tronlang/tron/lang/reporter"
	"github.com/tronlang/tron/lang/resolver"
	"github.com/tronlang/tron/lang/value"
)

// Loader resolves and reads the source of a `use "path";` statement
// (spec.md §6 "use path resolution"). A missing file is reported by
// returning ok == false, which the interpreter turns into a non-fatal
// E4005 rather than a Go error.
type Loader interface {
	Load(path string) (src string, ok bool, err error)
}

// breakSignal unwinds exactly one enclosing loop. The resolver already
// rejects break outside a loop (E3007), so by the time one of these is
// produced a catching While is always on the call stack.
type breakSignal struct{}

func (breakSignal) Error() string { return "break" }

var errBreak error = breakSignal{}

// returnSignal unwinds to the nearest enclosing function call. The resolver
// rejects return outside a function (E3006).
type returnSignal struct{ Value value.Value }

func (returnSignal) Error() string { return "return" }

// Interp holds the state of one evaluation: the current environment frame,
// the diagnostics sink, and the Loader that backs the `use` statement.
// Output goes through builtins (lang/builtin), not through Interp.
type Interp struct {
	Reporter *reporter.Reporter
	Loader   Loader

	globals *environment.Environment
	env     *environment.Environment
}

// New returns an Interp with a fresh global environment. dist is the
// resolver's node-id-to-distance map produced for the program that will be
// run; it is shared by every Environment frame created during execution
// (spec.md §4.5), and a `use` statement merges the loaded file's entries
// into it. Callers register the builtin catalog into
// Globals() (typically via lang/builtin.Register) before calling Run.
func New(rep *reporter.Reporter, dist resolver.Distances, loader Loader) *Interp {
	g := environment.New(dist)
	return &Interp{
		Reporter: rep,
		Loader:   loader,
		globals:  g,
		env:      g,
	}
}

// Globals returns the root environment, so callers (chiefly lang/builtin)
// can register native functions before Run is called.
func (in *Interp) Globals() *environment.Environment { return in.globals }

// Run executes stmts in the current environment. A returned error is always
// a genuine runtime failure (I/O error from a use statement, for instance);
// diagnostics for recoverable language-level errors are reported through
// Reporter and execution continues with value.NullValue standing in for the
// failed expression, mirroring the teacher's err-message-as-value fallback
// for user-facing mistakes versus Go errors for host failures.
func (in *Interp) Run(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := in.exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interp) execBlock(stmts []ast.Stmt, env *environment.Environment) error {
	prev := in.env
	in.env = env
	defer func() { in.env = prev }()
	for _, s := range stmts {
		if err := in.exec(s); err != nil {
			return err
		}
	}
	return nil
}
