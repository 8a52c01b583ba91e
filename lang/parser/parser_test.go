package parser_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tronlang/tron/lang/ast"
	"github.com/tronlang/tron/lang/parser"
	"github.com/tronlang/tron/lang/reporter"
	"github.com/tronlang/tron/lang/token"
)

func parseProgram(t *testing.T, src string) ([]ast.Stmt, *reporter.Reporter, string) {
	t.Helper()
	var buf bytes.Buffer
	rep := reporter.New(&buf)
	rep.SetExit(func(int) {})
	p := parser.New([]byte(src), rep)
	return p.ParseProgram(), rep, buf.String()
}

func TestParseVarDecl(t *testing.T) {
	stmts, rep, out := parseProgram(t, `let x: number = 1 + 2;`)
	require.Equal(t, 0, rep.Count, out)
	require.Len(t, stmts, 1)
	v, ok := stmts[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "x", v.Name)
	assert.Equal(t, "number", v.Type)
	bin, ok := v.Init.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, token.PLUS, bin.Op)
}

func TestParseFuncDeclBlockForm(t *testing.T) {
	stmts, rep, out := parseProgram(t, `fn add(a, b: number): number { return a + b; }`)
	require.Equal(t, 0, rep.Count, out)
	require.Len(t, stmts, 1)
	fd, ok := stmts[0].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fd.Name)
	require.Len(t, fd.Params, 2)
	assert.Equal(t, "a", fd.Params[0].Name)
	assert.Equal(t, "number", fd.Params[1].Type)
	require.Len(t, fd.Body, 1)
	_, ok = fd.Body[0].(*ast.Return)
	assert.True(t, ok)
}

func TestParseFuncDeclExpressionForm(t *testing.T) {
	stmts, rep, out := parseProgram(t, `fn square(x) = x * x;`)
	require.Equal(t, 0, rep.Count, out)
	fd := stmts[0].(*ast.FuncDecl)
	require.Len(t, fd.Body, 1)
	ret, ok := fd.Body[0].(*ast.Return)
	require.True(t, ok)
	_, ok = ret.Value.(*ast.Binary)
	assert.True(t, ok)
}

func TestParseIfElifElse(t *testing.T) {
	src := `
	if x == 1 {
		y = 1;
	} elif x == 2 {
		y = 2;
	} else {
		y = 3;
	}`
	stmts, rep, out := parseProgram(t, src)
	require.Equal(t, 0, rep.Count, out)
	ifs, ok := stmts[0].(*ast.If)
	require.True(t, ok)
	require.Len(t, ifs.Elif, 1)
	require.Len(t, ifs.Else, 1)
}

func TestParseIfWithConjoinedConditions(t *testing.T) {
	stmts, rep, out := parseProgram(t, `if x, y { z = 1; }`)
	require.Equal(t, 0, rep.Count, out)
	ifs := stmts[0].(*ast.If)
	logical, ok := ifs.Cond.(*ast.Logical)
	require.True(t, ok)
	assert.Equal(t, token.AND, logical.Op)
}

func TestParseWhile(t *testing.T) {
	stmts, rep, out := parseProgram(t, `while x < 10 { x = x + 1; }`)
	require.Equal(t, 0, rep.Count, out)
	w, ok := stmts[0].(*ast.While)
	require.True(t, ok)
	require.Len(t, w.Cond, 1)
	require.Len(t, w.Body, 1)
}

func TestParseForDesugarsToBlockWhile(t *testing.T) {
	stmts, rep, out := parseProgram(t, `for let i = 0; i < 10; i = i + 1 { print(i); }`)
	require.Equal(t, 0, rep.Count, out)
	blk, ok := stmts[0].(*ast.Block)
	require.True(t, ok)
	require.Len(t, blk.Stmts, 2)
	_, ok = blk.Stmts[0].(*ast.VarDecl)
	assert.True(t, ok)
	loop, ok := blk.Stmts[1].(*ast.While)
	require.True(t, ok)
	// body statement plus the appended increment expression statement.
	require.Len(t, loop.Body, 2)
}

func TestParseSwitch(t *testing.T) {
	src := `
	switch x {
	case 1 {
		y = 1;
	}
	case 2 {
		y = 2;
	}
	default {
		y = 0;
	}
	}`
	stmts, rep, out := parseProgram(t, src)
	require.Equal(t, 0, rep.Count, out)
	sw, ok := stmts[0].(*ast.Switch)
	require.True(t, ok)
	require.Len(t, sw.Cases, 2)
	require.Len(t, sw.Default, 1)
}

func TestParseBuiltinCall(t *testing.T) {
	stmts, rep, out := parseProgram(t, `@print("hi");`)
	require.Equal(t, 0, rep.Count, out)
	es := stmts[0].(*ast.ExprStmt)
	call, ok := es.X.(*ast.Call)
	require.True(t, ok)
	assert.True(t, call.Builtin)
	callee, ok := call.Callee.(*ast.Variable)
	require.True(t, ok)
	assert.Equal(t, "print", callee.Name)
}

func TestParseArrayIndexVersusConstruction(t *testing.T) {
	stmts, rep, out := parseProgram(t, `let a = [1, 2, 3]; let b = a[0];`)
	require.Equal(t, 0, rep.Count, out)
	arr := stmts[0].(*ast.VarDecl).Init.(*ast.Array)
	assert.False(t, arr.IsIndex)
	assert.Len(t, arr.Elems, 3)

	idx := stmts[1].(*ast.VarDecl).Init.(*ast.Array)
	assert.True(t, idx.IsIndex)
	assert.Len(t, idx.Elems, 2)
}

func TestParseObjectLiteralAndFieldAccess(t *testing.T) {
	stmts, rep, out := parseProgram(t, `let o = { x: 1, y: 2 }; let v = o.x;`)
	require.Equal(t, 0, rep.Count, out)
	obj := stmts[0].(*ast.VarDecl).Init.(*ast.Object)
	require.Len(t, obj.Keys, 2)
	assert.Equal(t, "x", obj.Keys[0])

	oc := stmts[1].(*ast.VarDecl).Init.(*ast.ObjectCall)
	assert.Equal(t, "x", oc.Key)
}

func TestParseCallbackSugar(t *testing.T) {
	stmts, rep, out := parseProgram(t, `let f = |x, y| { return x + y; };`)
	require.Equal(t, 0, rep.Count, out)
	fn := stmts[0].(*ast.VarDecl).Init.(*ast.Function)
	require.Len(t, fn.Params, 2)
}

func TestParsePrecedenceOfLogicalOperators(t *testing.T) {
	// xor binds tighter than nor binds tighter than or, per the grammar chain.
	stmts, rep, out := parseProgram(t, `let r = a or b nor c xor d;`)
	require.Equal(t, 0, rep.Count, out)
	top := stmts[0].(*ast.VarDecl).Init.(*ast.Logical)
	assert.Equal(t, token.OR, top.Op)
	_, ok := top.Left.(*ast.Variable)
	assert.True(t, ok)
	right, ok := top.Right.(*ast.Logical)
	require.True(t, ok)
	assert.Equal(t, token.NOR, right.Op)
}

func TestParseSymbolicLogicalOperators(t *testing.T) {
	// `&&` and `||` are accepted alongside the `and`/`or` keywords and fold
	// to the same token.Logical op, per spec.md §4.1.
	stmts, rep, out := parseProgram(t, `let r = a || b && c;`)
	require.Equal(t, 0, rep.Count, out)
	top := stmts[0].(*ast.VarDecl).Init.(*ast.Logical)
	assert.Equal(t, token.OR, top.Op)
	right, ok := top.Right.(*ast.Logical)
	require.True(t, ok)
	assert.Equal(t, token.AND, right.Op)
}

func TestParseUnaryPercentAlwaysParses(t *testing.T) {
	stmts, rep, out := parseProgram(t, `let r = %5;`)
	require.Equal(t, 0, rep.Count, out)
	u, ok := stmts[0].(*ast.VarDecl).Init.(*ast.Unary)
	require.True(t, ok)
	assert.Equal(t, token.PERCENT, u.Op)
}

func TestParseAssignToDottedField(t *testing.T) {
	stmts, rep, out := parseProgram(t, `o.x = 5;`)
	require.Equal(t, 0, rep.Count, out)
	es := stmts[0].(*ast.ExprStmt)
	as, ok := es.X.(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "o.x", as.Name)
}

func TestParseTooManyParamsReportsE2004(t *testing.T) {
	var params bytes.Buffer
	for i := 0; i < 33; i++ {
		if i > 0 {
			params.WriteByte(',')
		}
		params.WriteByte('a' + byte(i%26))
	}
	src := "fn f(" + params.String() + ") { return 0; }"
	_, rep, out := parseProgram(t, src)
	assert.Greater(t, rep.Count, 0, out)
}

func TestParseUseStatement(t *testing.T) {
	stmts, rep, out := parseProgram(t, `use "lib.tron";`)
	require.Equal(t, 0, rep.Count, out)
	u, ok := stmts[0].(*ast.Use)
	require.True(t, ok)
	lit, ok := u.Path.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, "lib.tron", lit.Str)
}

func TestParseNodeIDsAreUnique(t *testing.T) {
	stmts, rep, out := parseProgram(t, `let a = 1 + 2 * 3 - 4;`)
	require.Equal(t, 0, rep.Count, out)
	seen := map[int]bool{}
	ast.Walk(idCollector{seen: seen}, stmts[0])
	assert.NotEmpty(t, seen)
}

type idCollector struct{ seen map[int]bool }

func (c idCollector) Visit(n ast.Node) ast.Visitor {
	if n == nil {
		return nil
	}
	if e, ok := n.(ast.Expr); ok {
		if c.seen[e.ID()] {
			panic("duplicate node id")
		}
		c.seen[e.ID()] = true
	}
	return c
}
