// Package ast defines the tron abstract syntax tree: the two node sum types
// (Expr and Stmt) described in spec.md §3, each carrying a parser-assigned
// node ID used exclusively as the resolver's distance-map key (spec.md §4.4).
package ast

// Node is implemented by every AST node.
type Node interface {
	// Line returns the 1-indexed source line the node starts on.
	Line() int
}

// Expr is implemented by every expression node. ID is stable for the
// lifetime of the AST and is the key the resolver and evaluator use to look
// up scope distance; it is never reused within a single parse (spec.md §3).
type Expr interface {
	Node
	ID() int
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

type base struct {
	line int
}

func (b base) Line() int { return b.line }

type ExprBase struct {
	base
	id int
}

func (e ExprBase) ID() int { return e.id }
func (e ExprBase) exprNode() {}

type StmtBase struct {
	base
}

func (StmtBase) stmtNode() {}

// NewExprBase constructs the embeddable base for an expression node with the
// given node id and source line. Callers outside this package (the parser)
// use this instead of a composite literal since the id/line fields are
// unexported.
func NewExprBase(id, line int) ExprBase { return ExprBase{base: base{line: line}, id: id} }

// NewStmtBase constructs the embeddable base for a statement node with the
// given source line.
func NewStmtBase(line int) StmtBase { return StmtBase{base: base{line: line}} }
