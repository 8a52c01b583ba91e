package ast

import (
	"fmt"
	"io"
)

// Print writes an indented, one-line-per-node rendering of the tree rooted
// at n to w, used by the `parse` CLI command (spec.md §6).
func Print(w io.Writer, n Node) {
	p := &printer{w: w}
	Walk(p, n)
}

type printer struct {
	w     io.Writer
	depth int
}

func (p *printer) Visit(n Node) Visitor {
	if n == nil {
		p.depth--
		return nil
	}
	fmt.Fprintf(p.w, "%s%s (line %d)\n", indent(p.depth), describe(n), n.Line())
	p.depth++
	return p
}

func indent(depth int) string {
	b := make([]byte, depth*2)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

func describe(n Node) string {
	switch v := n.(type) {
	case *Literal:
		return fmt.Sprintf("literal %s", v.Kind)
	case *Variable:
		return fmt.Sprintf("variable %s", v.Name)
	case *Assign:
		return fmt.Sprintf("assign %s", v.Name)
	case *Unary:
		return fmt.Sprintf("unary %s", v.Op)
	case *Binary:
		return fmt.Sprintf("binary %s", v.Op)
	case *Logical:
		return fmt.Sprintf("logical %s", v.Op)
	case *Grouping:
		return "grouping"
	case *Call:
		return "call"
	case *Array:
		if v.IsIndex {
			return "index"
		}
		return "array"
	case *Object:
		return "object"
	case *ObjectCall:
		return fmt.Sprintf("field .%s", v.Key)
	case *Function:
		return "function"
	case *ExprStmt:
		return "expr-stmt"
	case *VarDecl:
		return fmt.Sprintf("var %s", v.Name)
	case *Block:
		return "block"
	case *If:
		return "if"
	case *While:
		return "while"
	case *FuncDecl:
		return fmt.Sprintf("fn %s", v.Name)
	case *Return:
		return "return"
	case *Break:
		return "break"
	case *Switch:
		return "switch"
	case *Use:
		return "use"
	default:
		return "node"
	}
}
