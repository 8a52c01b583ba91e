package interp

import (
	"fmt"
	"math"
	"unicode"

	"github.com/tronlang/tron/lang/ast"
	"github.com/tronlang/tron/lang/environment"
	"github.com/tronlang/tron/lang/reporter"
	"github.com/tronlang/tron/lang/token"
	"github.com/tronlang/tron/lang/value"
)

func (in *Interp) eval(e ast.Expr) (value.Value, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return literalValue(n), nil

	case *ast.Variable:
		v, err := in.env.Get(n.Name, n.ID())
		if err != nil {
			in.Reporter.Report(reporter.E4011, n.Line(), n.Name)
			return value.NullValue, nil
		}
		return v, nil

	case *ast.Assign:
		return in.evalAssign(n)

	case *ast.Unary:
		return in.evalUnary(n)

	case *ast.Binary:
		return in.evalBinary(n)

	case *ast.Logical:
		return in.evalLogical(n)

	case *ast.Grouping:
		return in.eval(n.Inner)

	case *ast.Call:
		return in.evalCall(n)

	case *ast.Array:
		return in.evalArray(n)

	case *ast.Object:
		return in.evalObject(n)

	case *ast.ObjectCall:
		return in.evalObjectCall(n)

	case *ast.Function:
		return &value.Function{Params: n.Params, ReturnType: n.ReturnType, Body: n.Body, Closure: in.env}, nil

	default:
		panic("interp: unexpected expression type")
	}
}

func literalValue(n *ast.Literal) value.Value {
	switch n.Kind {
	case token.NUMBER:
		return value.Number(n.Float)
	case token.STRING:
		return value.String(n.Str)
	case token.TRUE:
		return value.True
	case token.FALSE:
		return value.False
	case token.NULL:
		return value.NullValue
	default:
		return value.NullValue
	}
}

func (in *Interp) evalAssign(n *ast.Assign) (value.Value, error) {
	first := []rune(n.Name)[0]
	if unicode.IsUpper(first) {
		in.Reporter.Report(reporter.E4012, n.Line())
	}

	v, err := in.eval(n.Value)
	if err != nil {
		return nil, err
	}

	if objName, key, ok := splitDotted(n.Name); ok {
		obj, gerr := in.env.Get(objName, n.ID())
		o, isObj := obj.(*value.Object)
		if gerr != nil || !isObj {
			in.Reporter.Report(reporter.E4011, n.Line(), objName)
			return value.NullValue, nil
		}
		o.Set(key, v)
		return v, nil
	}

	if typ, ok := in.env.DeclaredType(n.Name); ok && !matchesDeclaredType(typ, v) {
		in.Reporter.Report(reporter.E4003, n.Line(), "variable", n.Name, typ, v.Type())
	}

	if _, err := in.env.Assign(n.Name, v, n.ID()); err != nil {
		in.Reporter.Report(reporter.E4011, n.Line(), n.Name)
		return value.NullValue, nil
	}
	return v, nil
}

func splitDotted(name string) (obj, key string, ok bool) {
	for i, r := range name {
		if r == '.' {
			return name[:i], name[i+1:], true
		}
	}
	return "", "", false
}

func (in *Interp) evalUnary(n *ast.Unary) (value.Value, error) {
	right, err := in.eval(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case token.MINUS:
		switch r := right.(type) {
		case value.Number:
			return -r, nil
		case value.Bool:
			return !r, nil
		default:
			in.Reporter.Report(reporter.E4015, n.Line(), "minus", right.Type())
			return value.NullValue, nil
		}
	case token.PLUS_PLUS:
		if r, ok := right.(value.Number); ok {
			return r + 1, nil
		}
		in.Reporter.Report(reporter.E4015, n.Line(), "increment", right.Type())
		return value.NullValue, nil
	case token.MINUS_MINUS:
		if r, ok := right.(value.Number); ok {
			return r - 1, nil
		}
		in.Reporter.Report(reporter.E4015, n.Line(), "decrement", right.Type())
		return value.NullValue, nil
	case token.PERCENT:
		// Unary % has no defined meaning for any value (resolved Open
		// Question, see DESIGN.md): it always reports a misuse error.
		in.Reporter.Report(reporter.E4015, n.Line(), "percent", right.Type())
		return value.NullValue, nil
	case token.BANG:
		return !right.Truth(), nil
	default:
		in.Reporter.Report(reporter.E4015, n.Line(), n.Op.String(), right.Type())
		return value.NullValue, nil
	}
}

func (in *Interp) evalBinary(n *ast.Binary) (value.Value, error) {
	left, err := in.eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(n.Right)
	if err != nil {
		return nil, err
	}

	if n.Op == token.EQ_EQ {
		return value.Bool(value.Equal(left, right)), nil
	}
	if n.Op == token.BANG_EQ {
		return value.Bool(!value.Equal(left, right)), nil
	}

	lnum, lIsNum := left.(value.Number)
	rnum, rIsNum := right.(value.Number)
	lstr, lIsStr := left.(value.String)
	rstr, rIsStr := right.(value.String)

	switch {
	case lIsNum && rIsNum:
		switch n.Op {
		case token.PLUS:
			return lnum + rnum, nil
		case token.MINUS:
			return lnum - rnum, nil
		case token.STAR:
			return lnum * rnum, nil
		case token.SLASH:
			return lnum / rnum, nil
		case token.CARET:
			return value.Number(math.Pow(float64(lnum), float64(rnum))), nil
		case token.GT:
			return value.Bool(lnum > rnum), nil
		case token.GE:
			return value.Bool(lnum >= rnum), nil
		case token.LT:
			return value.Bool(lnum < rnum), nil
		case token.LE:
			return value.Bool(lnum <= rnum), nil
		}
	case lIsStr && rIsStr:
		// Strings order by length, not lexicographically (resolved Open
		// Question, see DESIGN.md).
		switch n.Op {
		case token.PLUS:
			return lstr + rstr, nil
		case token.GT:
			return value.Bool(len(lstr) > len(rstr)), nil
		case token.GE:
			return value.Bool(len(lstr) >= len(rstr)), nil
		case token.LT:
			return value.Bool(len(lstr) < len(rstr)), nil
		case token.LE:
			return value.Bool(len(lstr) <= len(rstr)), nil
		}
	case lIsStr && rIsNum && n.Op == token.PLUS:
		return lstr + value.String(rnum.String()), nil
	case lIsNum && rIsStr && n.Op == token.PLUS:
		return value.String(lnum.String()) + rstr, nil
	}

	in.Reporter.Report(reporter.E4015, n.Line(), n.Op.String(), left.Type()+" and "+right.Type())
	return value.NullValue, nil
}

func (in *Interp) evalLogical(n *ast.Logical) (value.Value, error) {
	left, err := in.eval(n.Left)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case token.OR:
		if left.Truth() == value.True {
			return left, nil
		}
		return in.eval(n.Right)
	case token.AND:
		if left.Truth() != value.True {
			return left.Truth(), nil
		}
		return in.eval(n.Right)
	case token.XOR:
		right, err := in.eval(n.Right)
		if err != nil {
			return nil, err
		}
		return value.Bool(left.Truth() != right.Truth()), nil
	case token.NOR:
		right, err := in.eval(n.Right)
		if err != nil {
			return nil, err
		}
		return value.Bool(left.Truth() == value.False && right.Truth() == value.False), nil
	default:
		in.Reporter.Report(reporter.E4016, n.Line(), n.Op.String())
		return value.NullValue, nil
	}
}

func (in *Interp) evalCall(n *ast.Call) (value.Value, error) {
	callee, err := in.eval(n.Callee)
	if err != nil {
		return nil, err
	}
	if _, isBuiltin := callee.(*value.Builtin); n.Builtin && !isBuiltin {
		in.Reporter.Report(reporter.E4011, n.Line(), calleeName(n))
		return value.NullValue, nil
	}

	args := make([]value.Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, err := in.eval(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	switch fn := callee.(type) {
	case *value.Function:
		return in.callFunction(fn, args, n.Line())
	case *value.Builtin:
		if fn.NumArgs >= 0 && len(args) != fn.NumArgs {
			in.Reporter.Report(reporter.E4001, n.Line(), fn.BuiltinName, fmt.Sprint(fn.NumArgs), fmt.Sprint(len(args)))
			return value.NullValue, nil
		}
		v, err := fn.Fn(args)
		if err != nil {
			in.Reporter.Report(reporter.E4021, n.Line(), err.Error())
			return value.NullValue, nil
		}
		return v, nil
	default:
		in.Reporter.Report(reporter.E4013, n.Line(), calleeName(n))
		return value.NullValue, nil
	}
}

func calleeName(n *ast.Call) string {
	if v, ok := n.Callee.(*ast.Variable); ok {
		return v.Name
	}
	return "expression"
}

// callFunction binds arguments into a fresh frame enclosing the function's
// captured closure, executes the body, and returns the value surfaced by a
// returnSignal (or Null if the body falls off the end), per
// original_source's run_tron_function.
func (in *Interp) callFunction(fn *value.Function, args []value.Value, line int) (value.Value, error) {
	if len(args) != len(fn.Params) {
		in.Reporter.Report(reporter.E4014, line)
		return value.NullValue, nil
	}

	closure, _ := fn.Closure.(*environment.Environment)
	if closure == nil {
		closure = in.globals
	}
	frame := closure.Enclose()

	for i, p := range fn.Params {
		v := args[i]
		if p.Type != "" {
			if !matchesDeclaredType(p.Type, v) {
				in.Reporter.Report(reporter.E4002, line, fn.Name(), p.Name, v.Type())
				// Per the general runtime-error policy (spec.md §7), execution
				// continues with Null standing in for the offending value.
				v = value.NullValue
			}
			frame.SetType(p.Name, p.Type)
		}
		frame.Define(p.Name, v)
	}

	prev := in.env
	in.env = frame
	defer func() { in.env = prev }()

	for _, s := range fn.Body {
		err := in.exec(s)
		if err == nil {
			continue
		}
		if rs, ok := err.(returnSignal); ok {
			if fn.ReturnType != "" && fn.ReturnType != "null" && !matchesDeclaredType(fn.ReturnType, rs.Value) {
				in.Reporter.Report(reporter.E4017, line)
			}
			return rs.Value, nil
		}
		return nil, err
	}
	return value.NullValue, nil
}

func (in *Interp) evalArray(n *ast.Array) (value.Value, error) {
	if n.IsIndex {
		target, err := in.eval(n.Elems[0])
		if err != nil {
			return nil, err
		}
		idx, err := in.eval(n.Elems[1])
		if err != nil {
			return nil, err
		}
		arr, isArr := target.(*value.Array)
		num, isNum := idx.(value.Number)
		if !isArr || !isNum {
			in.Reporter.Report(reporter.E4010, n.Line())
			return value.NullValue, nil
		}
		i := int(num)
		if i < 0 || i >= arr.Len() {
			in.Reporter.Report(reporter.E4009, n.Line())
			return value.NullValue, nil
		}
		return arr.Index(i), nil
	}

	elems := make([]value.Value, 0, len(n.Elems))
	for _, e := range n.Elems {
		v, err := in.eval(e)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return value.NewArray(elems), nil
}

func (in *Interp) evalObject(n *ast.Object) (value.Value, error) {
	obj := value.NewObject(len(n.Keys))
	for i, k := range n.Keys {
		v, err := in.eval(n.Values[i])
		if err != nil {
			return nil, err
		}
		obj.Set(k, v)
	}
	return obj, nil
}

func (in *Interp) evalObjectCall(n *ast.ObjectCall) (value.Value, error) {
	target, err := in.eval(n.Target)
	if err != nil {
		return nil, err
	}
	obj, ok := target.(*value.Object)
	if !ok {
		in.Reporter.Report(reporter.E4010, n.Line())
		return value.NullValue, nil
	}
	v, ok := obj.Get(n.Key)
	if !ok {
		in.Reporter.Report(reporter.E4011, n.Line(), n.Key)
		return value.NullValue, nil
	}
	return v, nil
}
