package interp

import (
	"github.com/tronlang/tron/lang/ast"
	"github.com/tronlang/tron/lang/parser"
	"github.com/tronlang/tron/lang/reporter"
	"github.com/tronlang/tron/lang/resolver"
	"github.com/tronlang/tron/lang/value"
)

func (in *Interp) exec(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.ExprStmt:
		_, err := in.eval(n.X)
		return err

	case *ast.VarDecl:
		return in.execVarDecl(n)

	case *ast.Block:
		return in.execBlock(n.Stmts, in.env.Enclose())

	case *ast.If:
		return in.execIf(n)

	case *ast.While:
		return in.execWhile(n)

	case *ast.FuncDecl:
		in.env.Define(n.Name, &value.Function{
			FnName:     n.Name,
			Params:     n.Params,
			ReturnType: n.ReturnType,
			Body:       n.Body,
			Closure:    in.env,
		})
		return nil

	case *ast.Return:
		v, err := in.evalOrNull(n.Value)
		if err != nil {
			return err
		}
		return returnSignal{Value: v}

	case *ast.Break:
		return errBreak

	case *ast.Switch:
		return in.execSwitch(n)

	case *ast.Use:
		return in.execUse(n)

	default:
		panic("interp: unexpected statement type")
	}
}

func (in *Interp) execVarDecl(n *ast.VarDecl) error {
	v, err := in.evalOrNull(n.Init)
	if err != nil {
		return err
	}
	if n.Type != "" {
		if !matchesDeclaredType(n.Type, v) {
			in.Reporter.Report(reporter.E4003, n.Line(), "variable", n.Name, n.Type, v.Type())
		}
		in.env.SetType(n.Name, n.Type)
	}
	in.env.Define(n.Name, v)
	return nil
}

func (in *Interp) execIf(n *ast.If) error {
	cond, err := in.eval(n.Cond)
	if err != nil {
		return err
	}
	if cond.Truth() == value.True {
		return in.execBlock(n.Then, in.env.Enclose())
	}
	for _, elif := range n.Elif {
		ev, err := in.eval(elif.Cond)
		if err != nil {
			return err
		}
		if ev.Truth() == value.True {
			return in.execBlock(elif.Body, in.env.Enclose())
		}
	}
	if n.Else != nil {
		return in.execBlock(n.Else, in.env.Enclose())
	}
	return nil
}

func (in *Interp) allTrue(conds []ast.Expr) (bool, error) {
	for _, c := range conds {
		v, err := in.eval(c)
		if err != nil {
			return false, err
		}
		if v.Truth() != value.True {
			return false, nil
		}
	}
	return true, nil
}

func (in *Interp) execWhile(n *ast.While) error {
	for {
		ok, err := in.allTrue(n.Cond)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		err = in.execBlock(n.Body, in.env.Enclose())
		if err != nil {
			if _, isBreak := err.(breakSignal); isBreak {
				return nil
			}
			return err
		}
	}
}

func (in *Interp) execSwitch(n *ast.Switch) error {
	disc, err := in.eval(n.Disc)
	if err != nil {
		return err
	}
	for _, c := range n.Cases {
		cv, err := in.eval(c.Value)
		if err != nil {
			return err
		}
		if value.Equal(disc, cv) {
			return in.execBlock(c.Body, in.env.Enclose())
		}
	}
	if n.Default != nil {
		return in.execBlock(n.Default, in.env.Enclose())
	}
	return nil
}

func (in *Interp) execUse(n *ast.Use) error {
	pathVal, err := in.eval(n.Path)
	if err != nil {
		return err
	}
	path := pathVal.String()

	src, ok, err := in.loaderLoad(path)
	if err != nil {
		return err
	}
	if !ok {
		in.Reporter.Report(reporter.E4005, n.Line(), path)
		return nil
	}

	p := parser.New([]byte(src), in.Reporter)
	stmts := p.ParseProgram()
	dist := resolver.New(in.Reporter).Resolve(stmts)

	// The loaded file's statements execute directly against the current
	// environment, and its resolution entries are merged into the shared
	// distance map, so top-level declarations in the used file become
	// visible to the rest of the program exactly as original_source's
	// execute_lib shares the running Environment with the loaded library.
	in.env.Resolve(dist)
	return in.Run(stmts)
}

func (in *Interp) loaderLoad(path string) (string, bool, error) {
	if in.Loader == nil {
		return "", false, nil
	}
	return in.Loader.Load(path)
}

func (in *Interp) evalOrNull(e ast.Expr) (value.Value, error) {
	if e == nil {
		return value.NullValue, nil
	}
	return in.eval(e)
}

func matchesDeclaredType(typ string, v value.Value) bool {
	switch typ {
	case "number":
		_, ok := v.(value.Number)
		return ok
	case "string":
		_, ok := v.(value.String)
		return ok
	case "array":
		_, ok := v.(*value.Array)
		return ok
	case "object":
		_, ok := v.(*value.Object)
		return ok
	case "bool":
		_, ok := v.(value.Bool)
		return ok
	case "null":
		_, ok := v.(value.Null)
		return ok
	case "function":
		_, ok := v.(value.Callable)
		return ok
	default:
		return true
	}
}
