package ast

import "github.com/tronlang/tron/lang/token"

// Param is a function parameter with an optional declared type (spec.md
// §4.2, "fn name ( p1[: T1], ... )").
type Param struct {
	Name string
	Type string // empty if not declared
}

type (
	// Literal is a number, string, bool or null constant.
	Literal struct {
		ExprBase
		Kind  token.Token // NUMBER, STRING, TRUE, FALSE, or NULL
		Float float64
		Str   string
	}

	// Variable references a name, e.g. `x`. Field access is parsed as an
	// ObjectCall, never as a dotted Variable.
	Variable struct {
		ExprBase
		Name string
	}

	// Assign assigns Value to the variable named Name, or, when Name has the
	// dotted form `a.b`, to field b of the object bound to a.
	Assign struct {
		ExprBase
		Name  string
		Value Expr
	}

	// Unary applies a prefix operator to Right.
	Unary struct {
		ExprBase
		Op    token.Token
		Right Expr
	}

	// Binary applies an infix operator to Left and Right.
	Binary struct {
		ExprBase
		Op    token.Token
		Left  Expr
		Right Expr
	}

	// Logical applies a logical infix operator (and, or, nor, xor) to Left
	// and Right. and/or short-circuit; nor/xor always evaluate both sides.
	Logical struct {
		ExprBase
		Op    token.Token
		Left  Expr
		Right Expr
	}

	// Grouping is a parenthesized expression, kept as its own node so the
	// printer can round-trip parentheses.
	Grouping struct {
		ExprBase
		Inner Expr
	}

	// Call invokes Callee with Args. If Builtin is true, Callee was written
	// with the `@name` sigil (spec.md open question, see DESIGN.md) and must
	// resolve to a registered builtin rather than a variable.
	Call struct {
		ExprBase
		Callee  Expr
		Args    []Expr
		Builtin bool
	}

	// Array is either a literal array construction (any number of elements)
	// or an indexing expression `target[index]` (exactly 2 elements, per
	// spec.md §4.3's shared-tag design note). The parser distinguishes these
	// syntactically
	// (a leading `[` with comma-separated elements is always a construction;
	// a postfix `[` after a primary is always an index), so IsIndex records
	// the parser's determination directly instead of re-deriving it from
	// arity at evaluation time.
	Array struct {
		ExprBase
		Elems   []Expr
		IsIndex bool
	}

	// Object is a `{ key: value, ... }` literal.
	Object struct {
		ExprBase
		Keys   []string
		Values []Expr
	}

	// ObjectCall is field access `target.Key` written through the dedicated
	// postfix-dot syntax (spec.md §4.3). As an assignment target it is turned
	// into an Assign with the dotted name `a.b`.
	ObjectCall struct {
		ExprBase
		Target Expr
		Key    string
	}

	// Function is an anonymous function expression: `fn (params) { body }`
	// or the callback sugar `| params | { body }` (spec.md §4.2, §9).
	Function struct {
		ExprBase
		Params     []Param
		ReturnType string
		Body       []Stmt
	}
)
