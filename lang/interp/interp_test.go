package interp_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tronlang/tron/lang/builtin"
	"github.com/tronlang/tron/lang/interp"
	"github.com/tronlang/tron/lang/parser"
	"github.com/tronlang/tron/lang/reporter"
	"github.com/tronlang/tron/lang/resolver"
)

type bufPrinter struct{ lines []string }

func (b *bufPrinter) Print(s string) { b.lines = append(b.lines, s) }

type testLoader map[string]string

func (l testLoader) Load(path string) (string, bool, error) {
	src, ok := l[path]
	return src, ok, nil
}

func run(t *testing.T, src string) (*bufPrinter, string) {
	t.Helper()
	var diag bytes.Buffer
	rep := reporter.New(&diag)
	rep.SetExit(func(int) {})

	p := parser.New([]byte(src), rep)
	stmts := p.ParseProgram()
	require.Zero(t, rep.Count, "unexpected parse diagnostics: %s", diag.String())

	dist := resolver.New(rep).Resolve(stmts)
	require.Zero(t, rep.Count, "unexpected resolve diagnostics: %s", diag.String())

	it := interp.New(rep, dist, nil)
	pr := &bufPrinter{}
	builtin.Register(it.Globals(), pr, nil)

	require.NoError(t, it.Run(stmts))
	return pr, diag.String()
}

func TestExampleAddition(t *testing.T) {
	pr, _ := run(t, `let x = 1; let y = 2; @print(x + y);`)
	assert.Equal(t, []string{"3"}, pr.lines)
}

func TestExampleFunctionCall(t *testing.T) {
	pr, _ := run(t, `fn add(a: number, b: number): number { return a + b; } @print(add(2, 3));`)
	assert.Equal(t, []string{"5"}, pr.lines)
}

func TestExampleClosureCapture(t *testing.T) {
	src := `fn mk(): function {
		let c = 0;
		fn inc(): number { c = c + 1; return c; }
		return inc;
	}
	let f = mk();
	@print(f());
	@print(f());`
	pr, _ := run(t, src)
	assert.Equal(t, []string{"1", "2"}, pr.lines)
}

func TestExampleWhileLoop(t *testing.T) {
	pr, _ := run(t, `let i = 0; while i < 3 { @print(i); i = i + 1; }`)
	assert.Equal(t, []string{"0", "1", "2"}, pr.lines)
}

func TestExampleArrayIndex(t *testing.T) {
	pr, _ := run(t, `let xs = [10, 20, 30]; @print(xs[1]);`)
	assert.Equal(t, []string{"20"}, pr.lines)
}

func TestExampleObjectFieldAccess(t *testing.T) {
	pr, _ := run(t, `let p = { x: 1, y: 2 }; @print(p.x + p.y);`)
	assert.Equal(t, []string{"3"}, pr.lines)
}

func TestExampleArgumentTypeMismatchReportsE4002(t *testing.T) {
	pr, diag := run(t, `fn f(a: number): number { return a; } f("hi");`)
	assert.Empty(t, pr.lines)
	assert.Contains(t, diag, "E4002")
}

func TestExampleBlockScopeShadowing(t *testing.T) {
	pr, _ := run(t, `let x = 1; { let x = 2; @print(x); } @print(x);`)
	assert.Equal(t, []string{"2", "1"}, pr.lines)
}

func TestShortCircuitOrSkipsRightOperand(t *testing.T) {
	src := `let touched = false;
	fn sideEffect(): bool { touched = true; return true; }
	let r = true or sideEffect();
	@print(touched);`
	pr, _ := run(t, src)
	assert.Equal(t, []string{"false"}, pr.lines)
}

func TestShortCircuitAndSkipsRightOperand(t *testing.T) {
	src := `let touched = false;
	fn sideEffect(): bool { touched = true; return true; }
	let r = false and sideEffect();
	@print(touched);`
	pr, _ := run(t, src)
	assert.Equal(t, []string{"false"}, pr.lines)
}

func TestXorReturnsTrueIffOperandsDiffer(t *testing.T) {
	src := `@print(true xor false);
	@print(false xor true);
	@print(true xor true);
	@print(false xor false);`
	pr, _ := run(t, src)
	assert.Equal(t, []string{"true", "true", "false", "false"}, pr.lines)
}

func TestNorReturnsTrueOnlyWhenBothFalsy(t *testing.T) {
	src := `@print(false nor false);
	@print(false nor true);
	@print(true nor false);
	@print(true nor true);`
	pr, _ := run(t, src)
	assert.Equal(t, []string{"true", "false", "false", "false"}, pr.lines)
}

func TestBreakExitsOnlyInnermostLoop(t *testing.T) {
	src := `let outer = 0;
	let inner = 0;
	while outer < 2 {
		while true {
			inner = inner + 1;
			break;
		}
		outer = outer + 1;
	}
	@print(outer);
	@print(inner);`
	pr, _ := run(t, src)
	assert.Equal(t, []string{"2", "2"}, pr.lines)
}

func TestVariableTypeAnnotationMismatchReportsE4003(t *testing.T) {
	_, diag := run(t, `let x: number = 1; x = "oops";`)
	assert.Contains(t, diag, "E4003")
}

func TestUnaryBoolNegationFlips(t *testing.T) {
	pr, _ := run(t, `@print(-true); @print(-false);`)
	assert.Equal(t, []string{"false", "true"}, pr.lines)
}

func TestUnaryPercentAlwaysErrors(t *testing.T) {
	_, diag := run(t, `let x = %5;`)
	assert.Contains(t, diag, "E4015")
}

func TestStringComparisonByLength(t *testing.T) {
	pr, _ := run(t, `@print("ab" < "abc"); @print("abcd" > "xy");`)
	assert.Equal(t, []string{"true", "true"}, pr.lines)
}

func TestSwitchMatchesByEquality(t *testing.T) {
	src := `let n = 2;
	switch n {
		case 1 { @print("one"); }
		case 2 { @print("two"); }
		default { @print("other"); }
	}`
	pr, _ := run(t, src)
	assert.Equal(t, []string{"two"}, pr.lines)
}

func TestForLoopDesugaring(t *testing.T) {
	src := `for let i = 0; i < 3; i = i + 1 { @print(i); }`
	pr, _ := run(t, src)
	assert.Equal(t, []string{"0", "1", "2"}, pr.lines)
}

func TestUseStatementSharesEnvironment(t *testing.T) {
	var diag bytes.Buffer
	rep := reporter.New(&diag)
	rep.SetExit(func(int) {})

	src := `use "lib.tron"; @print(shared);`
	p := parser.New([]byte(src), rep)
	stmts := p.ParseProgram()
	require.Zero(t, rep.Count)

	dist := resolver.New(rep).Resolve(stmts)
	require.Zero(t, rep.Count)

	loader := testLoader{"lib.tron": `let shared = 42;`}
	it := interp.New(rep, dist, loader)
	pr := &bufPrinter{}
	builtin.Register(it.Globals(), pr, nil)

	require.NoError(t, it.Run(stmts))
	assert.Equal(t, []string{"42"}, pr.lines)
}

func TestMissingUseFileReportsE4005(t *testing.T) {
	_, diag := run(t, `use "nope.tron";`)
	assert.Contains(t, diag, "E4005")
}
