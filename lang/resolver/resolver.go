// Package resolver performs the single static pass of spec.md §4.4: for
// every variable reference and assignment in the tree, it determines how
// many enclosing environment frames separate the reference from the scope
// that declares the name, and records that distance in a node-id keyed map
// the evaluator consults instead of doing its own scope search.
package resolver

import (
	"github.com/tronlang/tron/lang/ast"
	"github.com/tronlang/tron/lang/reporter"
)

// Distances maps an expression's node ID to the number of enclosing
// environment frames to walk before finding its declaring scope. An entry's
// absence means the name is resolved as global.
type Distances map[int]int

type funcKind int

const (
	funcNone funcKind = iota
	funcInFunction
)

type loopKind int

const (
	loopNone loopKind = iota
	loopInLoop
)

// Resolver walks a parsed program once, front to back, maintaining a stack
// of block scopes mirroring the one the evaluator's environment chain builds
// at runtime.
type Resolver struct {
	rep    *reporter.Reporter
	scopes []map[string]bool // true once a name's initializer has finished resolving
	dist   Distances

	fn   funcKind
	loop loopKind
}

// New returns a Resolver that reports diagnostics to rep.
func New(rep *reporter.Reporter) *Resolver {
	return &Resolver{rep: rep, dist: make(Distances)}
}

// Resolve walks stmts and returns the accumulated distance map.
func (r *Resolver) Resolve(stmts []ast.Stmt) Distances {
	r.resolveStmts(stmts)
	return r.dist
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, make(map[string]bool)) }
func (r *Resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) declare(name string, line int) {
	if len(r.scopes) == 0 {
		return
	}
	top := r.scopes[len(r.scopes)-1]
	if _, ok := top[name]; ok {
		r.rep.Report(reporter.E3002, line, name)
	}
	top[name] = false
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()
	case *ast.VarDecl:
		r.declare(s.Name, s.Line())
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)
	case *ast.FuncDecl:
		r.declare(s.Name, s.Line())
		r.define(s.Name)
		r.resolveFunction(s.Params, s.Body)
	case *ast.ExprStmt:
		r.resolveExpr(s.X)
	case *ast.If:
		r.resolveExpr(s.Cond)
		r.resolveStmt(&ast.Block{Stmts: s.Then})
		for _, e := range s.Elif {
			r.resolveExpr(e.Cond)
			r.resolveStmt(&ast.Block{Stmts: e.Body})
		}
		if s.Else != nil {
			r.resolveStmt(&ast.Block{Stmts: s.Else})
		}
	case *ast.While:
		for _, c := range s.Cond {
			r.resolveExpr(c)
		}
		enclosing := r.loop
		r.loop = loopInLoop
		r.resolveStmt(&ast.Block{Stmts: s.Body})
		r.loop = enclosing
	case *ast.Return:
		if r.fn == funcNone {
			r.rep.Report(reporter.E3006, s.Line())
		}
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}
	case *ast.Break:
		if r.loop == loopNone {
			r.rep.Report(reporter.E3007, s.Line())
		}
	case *ast.Switch:
		r.resolveExpr(s.Disc)
		for _, c := range s.Cases {
			r.resolveExpr(c.Value)
			r.resolveStmt(&ast.Block{Stmts: c.Body})
		}
		if s.Default != nil {
			r.resolveStmt(&ast.Block{Stmts: s.Default})
		}
	case *ast.Use:
		r.resolveExpr(s.Path)
	default:
		r.rep.Report(reporter.E3001, stmt.Line(), "unknown")
	}
}

// resolveFunction resolves a function body in its own scope, with parameters
// declared and immediately defined (spec.md §4.4, §4.7 "Function-decl").
func (r *Resolver) resolveFunction(params []ast.Param, body []ast.Stmt) {
	enclosingFn := r.fn
	enclosingLoop := r.loop
	r.fn = funcInFunction
	r.loop = loopNone
	r.beginScope()
	for _, p := range params {
		r.declare(p.Name, 0)
		r.define(p.Name)
	}
	r.resolveStmts(body)
	r.endScope()
	r.fn = enclosingFn
	r.loop = enclosingLoop
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
	case *ast.Variable:
		r.resolveVariable(e)
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e.ID(), e.Name)
	case *ast.Unary:
		r.resolveExpr(e.Right)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Grouping:
		r.resolveExpr(e.Inner)
	case *ast.Call:
		if !e.Builtin {
			r.resolveExpr(e.Callee)
		}
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *ast.Array:
		for _, el := range e.Elems {
			r.resolveExpr(el)
		}
	case *ast.Object:
		for _, v := range e.Values {
			r.resolveExpr(v)
		}
	case *ast.ObjectCall:
		r.resolveExpr(e.Target)
	case *ast.Function:
		r.resolveFunction(e.Params, e.Body)
	default:
		r.rep.Report(reporter.E3001, expr.Line(), "unknown")
	}
}

// resolveVariable mirrors original_source/src/resolver.rs's
// resolve_expr_var: reading a name whose declaration in the innermost scope
// hasn't finished its own initializer yet is an error, since that would
// observe the variable before it has a value.
func (r *Resolver) resolveVariable(v *ast.Variable) {
	if len(r.scopes) > 0 {
		if defined, ok := r.scopes[len(r.scopes)-1][v.Name]; ok && !defined {
			r.rep.Report(reporter.E3003, v.Line())
		}
	}
	r.resolveLocal(v.ID(), v.Name)
}

// resolveLocal walks the scope stack from innermost to outermost looking for
// name, recording the distance if found. An unresolved name is left absent
// from the map and treated as global by the evaluator.
func (r *Resolver) resolveLocal(id int, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.dist[id] = len(r.scopes) - 1 - i
			return
		}
	}
}
