package parser

import (
	"salc/internal/ast"
	"salc/internal/diag"
	"salc/internal/token"
)

// parseIf: если cond то ... [иначе ...] все
func (p *Parser) parseIf() (ast.StmtID, bool) {
	kw := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwThen, diag.SynUnexpectedToken, "expected \"то\" after condition, got "+describe(p.peek())); !ok {
		return ast.NoStmtID, false
	}
	then := p.parseBlock()
	els := ast.NoStmtID
	if p.eat(token.KwElse) {
		els = p.parseBlock()
	}
	if !p.closeBlock(token.KwFi, kw.Span, "if statement") {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewIf(kw.Span.Cover(p.lastSpan), cond, then, els), true
}

// parseLoop различает три формы цикла после "нц":
//
//	нц пока cond ... кц
//	нц для i от a до b ... кц
//	нц ... кц_при cond   (или просто кц, тогда цикл бесконечный)
func (p *Parser) parseLoop() (ast.StmtID, bool) {
	kw := p.advance()
	switch p.peek().Kind {
	case token.KwWhile:
		p.advance()
		cond, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		body := p.parseBlock()
		if !p.closeBlock(token.KwEndLoop, kw.Span, "loop") {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewWhile(kw.Span.Cover(p.lastSpan), cond, body), true
	case token.KwFor:
		return p.parseFor(kw)
	}

	body := p.parseBlock()
	if p.eat(token.KwUntil) {
		cond, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewDoWhile(kw.Span.Cover(p.lastSpan), body, cond), true
	}
	if !p.closeBlock(token.KwEndLoop, kw.Span, "loop") {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFor(kw.Span.Cover(p.lastSpan), ast.StmtForData{Body: body}), true
}

// parseFor раскрывает "нц для i от a до b" в общий for:
// init i := a; cond i <= b; step i := i + 1.
func (p *Parser) parseFor(kw token.Token) (ast.StmtID, bool) {
	p.advance() // для
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected loop variable, got "+describe(p.peek()))
	if !ok {
		return ast.NoStmtID, false
	}
	name := p.arenas.Strings.Intern(nameTok.Text)
	ident := func() ast.ExprID { return p.arenas.Exprs.NewIdent(nameTok.Span, name) }

	if _, ok := p.expect(token.KwFrom, diag.SynUnexpectedToken, "expected \"от\" after loop variable, got "+describe(p.peek())); !ok {
		return ast.NoStmtID, false
	}
	from, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwTo, diag.SynUnexpectedToken, "expected \"до\" after lower bound, got "+describe(p.peek())); !ok {
		return ast.NoStmtID, false
	}
	to, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	headSpan := kw.Span.Cover(p.lastSpan)

	exprs := p.arenas.Exprs
	initExpr := exprs.NewAssign(nameTok.Span.Cover(exprs.Get(from).Span), ident(), from)
	cond := exprs.NewBinary(nameTok.Span.Cover(exprs.Get(to).Span), ast.ExprBinaryLessEq, ident(), to)
	one := exprs.NewLiteral(nameTok.Span, ast.ExprLitInt, "1")
	inc := exprs.NewBinary(nameTok.Span, ast.ExprBinaryAdd, ident(), one)
	stepExpr := exprs.NewAssign(nameTok.Span, ident(), inc)

	body := p.parseBlock()
	if !p.closeBlock(token.KwEndLoop, kw.Span, "loop") {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFor(kw.Span.Cover(p.lastSpan), ast.StmtForData{
		Init: p.arenas.Stmts.NewExpr(headSpan, initExpr),
		Cond: cond,
		Step: p.arenas.Stmts.NewExpr(headSpan, stepExpr),
		Body: body,
	}), true
}
