package parser

import (
	"github.com/tronlang/tron/lang/ast"
	"github.com/tronlang/tron/lang/reporter"
	"github.com/tronlang/tron/lang/token"
)

const maxArgs = 32

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	line := p.val.Line
	e := p.logicOr()
	if p.check(token.EQ) {
		p.advance()
		value := p.assignment()
		switch v := e.(type) {
		case *ast.Variable:
			return &ast.Assign{ExprBase: ast.NewExprBase(p.newID(), line), Name: v.Name, Value: value}
		case *ast.ObjectCall:
			// `target.key = value` desugars to an assignment against the
			// dotted-name form so the evaluator has a single assignment path.
			return &ast.Assign{ExprBase: ast.NewExprBase(p.newID(), line), Name: objectCallName(v), Value: value}
		default:
			p.rep.Report(reporter.E2007, line)
			return e
		}
	}
	return e
}

func objectCallName(v *ast.ObjectCall) string {
	if base, ok := v.Target.(*ast.Variable); ok {
		return base.Name + "." + v.Key
	}
	return v.Key
}

// logicOr and logicAnd also accept the `||`/`&&` symbolic spellings
// alongside the `or`/`and` keywords (spec.md §4.1: "`&&` and `||` are
// available as logical operators alongside keyword forms");
// canonicalLogicalOp folds either spelling down to the single token an
// ast.Logical node carries.
func (p *Parser) logicOr() ast.Expr  { return p.logicBinary(p.logicNor, token.OR, token.PIPE_PIPE) }
func (p *Parser) logicNor() ast.Expr { return p.logicBinary(p.logicXor, token.NOR) }
func (p *Parser) logicXor() ast.Expr { return p.logicBinary(p.logicAnd, token.XOR) }
func (p *Parser) logicAnd() ast.Expr { return p.logicBinary(p.equality, token.AND, token.AMP_AMP) }

func (p *Parser) logicBinary(next func() ast.Expr, ops ...token.Token) ast.Expr {
	e := next()
	for p.matchAny(ops...) {
		op := canonicalLogicalOp(p.prevTok)
		line := p.prevLine
		right := next()
		e = &ast.Logical{ExprBase: ast.NewExprBase(p.newID(), line), Op: op, Left: e, Right: right}
	}
	return e
}

func canonicalLogicalOp(tok token.Token) token.Token {
	switch tok {
	case token.PIPE_PIPE:
		return token.OR
	case token.AMP_AMP:
		return token.AND
	default:
		return tok
	}
}

func (p *Parser) equality() ast.Expr {
	e := p.comparison()
	for p.matchAny(token.EQ_EQ, token.BANG_EQ) {
		op, line := p.prevTok, p.prevLine
		right := p.comparison()
		e = &ast.Binary{ExprBase: ast.NewExprBase(p.newID(), line), Op: op, Left: e, Right: right}
	}
	return e
}

func (p *Parser) comparison() ast.Expr {
	e := p.term()
	for p.matchAny(token.LT, token.LE, token.GT, token.GE) {
		op, line := p.prevTok, p.prevLine
		right := p.term()
		e = &ast.Binary{ExprBase: ast.NewExprBase(p.newID(), line), Op: op, Left: e, Right: right}
	}
	return e
}

func (p *Parser) term() ast.Expr {
	e := p.factor()
	for p.matchAny(token.PLUS, token.MINUS) {
		op, line := p.prevTok, p.prevLine
		right := p.factor()
		e = &ast.Binary{ExprBase: ast.NewExprBase(p.newID(), line), Op: op, Left: e, Right: right}
	}
	return e
}

func (p *Parser) factor() ast.Expr {
	e := p.unary()
	for p.matchAny(token.STAR, token.SLASH, token.CARET) {
		op, line := p.prevTok, p.prevLine
		right := p.unary()
		e = &ast.Binary{ExprBase: ast.NewExprBase(p.newID(), line), Op: op, Left: e, Right: right}
	}
	return e
}

func (p *Parser) matchAny(toks ...token.Token) bool {
	for _, t := range toks {
		if p.tok == t {
			p.prevTok, p.prevLine = p.tok, p.val.Line
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) unary() ast.Expr {
	if p.check(token.BANG) || p.check(token.MINUS) || p.check(token.PLUS_PLUS) ||
		p.check(token.MINUS_MINUS) || p.check(token.PERCENT) {
		op, line := p.tok, p.val.Line
		p.advance()
		right := p.unary()
		return &ast.Unary{ExprBase: ast.NewExprBase(p.newID(), line), Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	e := p.primary()
	for {
		switch {
		case p.check(token.LPAREN):
			e = p.finishCall(e, false)
		case p.check(token.DOT):
			p.advance()
			key := p.val.Raw
			p.expect(token.IDENT)
			e = &ast.ObjectCall{ExprBase: ast.NewExprBase(p.newID(), e.Line()), Target: e, Key: key}
		case p.check(token.LBRACK):
			line := p.val.Line
			p.advance()
			idx := p.expression()
			p.expect(token.RBRACK)
			e = &ast.Array{ExprBase: ast.NewExprBase(p.newID(), line), Elems: []ast.Expr{e, idx}, IsIndex: true}
		default:
			return e
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr, builtin bool) ast.Expr {
	line := p.val.Line
	p.expect(token.LPAREN)
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		for {
			if len(args) >= maxArgs {
				p.rep.Report(reporter.E2004, line)
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RPAREN)
	return &ast.Call{ExprBase: ast.NewExprBase(p.newID(), line), Callee: callee, Args: args, Builtin: builtin}
}

func (p *Parser) primary() ast.Expr {
	line := p.val.Line
	switch {
	case p.check(token.NUMBER):
		f := p.val.Float
		p.advance()
		return &ast.Literal{ExprBase: ast.NewExprBase(p.newID(), line), Kind: token.NUMBER, Float: f}
	case p.check(token.STRING):
		s := p.val.String
		p.advance()
		return &ast.Literal{ExprBase: ast.NewExprBase(p.newID(), line), Kind: token.STRING, Str: s}
	case p.check(token.TRUE), p.check(token.FALSE), p.check(token.NULL):
		kind := p.tok
		p.advance()
		return &ast.Literal{ExprBase: ast.NewExprBase(p.newID(), line), Kind: kind}
	case p.check(token.IDENT):
		name := p.val.Raw
		p.advance()
		return &ast.Variable{ExprBase: ast.NewExprBase(p.newID(), line), Name: name}
	case p.check(token.AT):
		p.advance()
		name := p.val.Raw
		p.expect(token.IDENT)
		callee := &ast.Variable{ExprBase: ast.NewExprBase(p.newID(), line), Name: name}
		return p.finishCall(callee, true)
	case p.check(token.LPAREN):
		p.advance()
		inner := p.expression()
		p.expect(token.RPAREN)
		return &ast.Grouping{ExprBase: ast.NewExprBase(p.newID(), line), Inner: inner}
	case p.check(token.LBRACK):
		return p.arrayLiteral()
	case p.check(token.LBRACE):
		return p.objectLiteral()
	case p.check(token.FN):
		return p.funcExpr()
	case p.check(token.PIPE):
		return p.callbackExpr()
	default:
		p.rep.Report(reporter.E2002, line, p.tok.String())
		p.advance()
		return &ast.Literal{ExprBase: ast.NewExprBase(p.newID(), line), Kind: token.NULL}
	}
}

func (p *Parser) arrayLiteral() ast.Expr {
	line := p.val.Line
	p.advance() // '['
	var elems []ast.Expr
	if !p.check(token.RBRACK) {
		for {
			elems = append(elems, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RBRACK)
	return &ast.Array{ExprBase: ast.NewExprBase(p.newID(), line), Elems: elems}
}

func (p *Parser) objectLiteral() ast.Expr {
	line := p.val.Line
	p.advance() // '{'
	var keys []string
	var vals []ast.Expr
	if !p.check(token.RBRACE) {
		for {
			key := p.val.Raw
			if p.check(token.IDENT) || p.check(token.STRING) {
				p.advance()
			} else {
				p.rep.Report(reporter.E2003, p.val.Line, "object key")
			}
			p.expect(token.COLON)
			keys = append(keys, key)
			vals = append(vals, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RBRACE)
	return &ast.Object{ExprBase: ast.NewExprBase(p.newID(), line), Keys: keys, Values: vals}
}

func (p *Parser) funcExpr() ast.Expr {
	line := p.val.Line
	p.advance() // 'fn'
	params := p.params()
	retType := p.typeAnnotation()
	body := p.blockStmts()
	return &ast.Function{ExprBase: ast.NewExprBase(p.newID(), line), Params: params, ReturnType: retType, Body: body}
}

// callbackExpr parses the `| x, y | { body }` sugar for anonymous functions
// (spec.md §4.2, §9).
func (p *Parser) callbackExpr() ast.Expr {
	line := p.val.Line
	p.advance() // '|'
	var params []ast.Param
	if !p.check(token.PIPE) {
		for {
			name := p.val.Raw
			p.expect(token.IDENT)
			typ := p.typeAnnotation()
			params = append(params, ast.Param{Name: name, Type: typ})
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.PIPE)
	body := p.blockStmts()
	return &ast.Function{ExprBase: ast.NewExprBase(p.newID(), line), Params: params, Body: body}
}
