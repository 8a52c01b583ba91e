package ast

// Visitor is implemented by callers that want to walk the tree generically
// (the resolver, the printer). Walk calls Visit(node); if Visit returns a
// non-nil Visitor, Walk recurses into node's children with it, then calls
// Visit(nil) to signal the end of node's children, mirroring go/ast.Walk.
type Visitor interface {
	Visit(node Node) Visitor
}

// Walk traverses an AST in depth-first order, calling v.Visit for every
// non-nil node encountered.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	v = v.Visit(node)
	if v == nil {
		return
	}

	switch n := node.(type) {
	case *Literal:
	case *Variable:
	case *Assign:
		Walk(v, n.Value)
	case *Unary:
		Walk(v, n.Right)
	case *Binary:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *Logical:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *Grouping:
		Walk(v, n.Inner)
	case *Call:
		Walk(v, n.Callee)
		for _, a := range n.Args {
			Walk(v, a)
		}
	case *Array:
		for _, e := range n.Elems {
			Walk(v, e)
		}
	case *Object:
		for _, val := range n.Values {
			Walk(v, val)
		}
	case *ObjectCall:
		Walk(v, n.Target)
	case *Function:
		walkStmts(v, n.Body)

	case *ExprStmt:
		Walk(v, n.X)
	case *VarDecl:
		if n.Init != nil {
			Walk(v, n.Init)
		}
	case *Block:
		walkStmts(v, n.Stmts)
	case *If:
		Walk(v, n.Cond)
		walkStmts(v, n.Then)
		for _, e := range n.Elif {
			Walk(v, e.Cond)
			walkStmts(v, e.Body)
		}
		walkStmts(v, n.Else)
	case *While:
		for _, c := range n.Cond {
			Walk(v, c)
		}
		walkStmts(v, n.Body)
	case *FuncDecl:
		walkStmts(v, n.Body)
	case *Return:
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *Break:
	case *Switch:
		Walk(v, n.Disc)
		for _, c := range n.Cases {
			Walk(v, c.Value)
			walkStmts(v, c.Body)
		}
		walkStmts(v, n.Default)
	case *Use:
		Walk(v, n.Path)
	default:
		panic("ast.Walk: unexpected node type")
	}
	v.Visit(nil)
}

func walkStmts(v Visitor, stmts []Stmt) {
	for _, s := range stmts {
		Walk(v, s)
	}
}
