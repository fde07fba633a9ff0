package parser

import (
	"salc/internal/ast"
	"salc/internal/diag"
	"salc/internal/source"
	"salc/internal/token"
)

// parseStmtList читает операторы до терминатора блока (не съедая его).
func (p *Parser) parseStmtList() []ast.StmtID {
	var stmts []ast.StmtID
	for !isBlockEnd(p.peek().Kind) {
		if p.eat(token.Semicolon) {
			continue
		}
		before := p.consumed
		id, ok := p.parseStmt()
		if ok {
			stmts = append(stmts, id)
			p.eat(token.Semicolon)
			continue
		}
		if p.consumed == before {
			p.advance()
		}
		p.resyncStmt()
	}
	return stmts
}

// parseBlock оборачивает список операторов в StmtBlock.
func (p *Parser) parseBlock() ast.StmtID {
	start := p.diagSpan()
	stmts := p.parseStmtList()
	sp := start
	if len(stmts) > 0 {
		sp = start.Cover(p.lastSpan)
	}
	return p.arenas.Stmts.NewBlock(sp, stmts, false)
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.KwAlg:
		return p.parseFuncDecl()
	case token.KwIf:
		return p.parseIf()
	case token.KwLoop:
		return p.parseLoop()
	case token.KwInput:
		return p.parseInput()
	case token.KwOutput:
		return p.parseOutput()
	case token.Ident:
		if p.peekN(1).Kind == token.Ident {
			return p.parseVarDecl()
		}
	}
	return p.parseExprStmt()
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(p.arenas.Exprs.Get(expr).Span, expr), true
}

func (p *Parser) parseTypeName() (ast.TypeName, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectType, "expected type name, got "+describe(p.peek()))
	if !ok {
		return ast.TypeName{}, false
	}
	return ast.TypeName{Name: p.arenas.Strings.Intern(tok.Text), Span: tok.Span}, true
}

// parseIdent ожидает Ident и строит для него узел выражения.
func (p *Parser) parseIdent() (ast.ExprID, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier, got "+describe(p.peek()))
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewIdent(tok.Span, p.arenas.Strings.Intern(tok.Text)), true
}

// parseVarDecl: цел a, b := 1, c
func (p *Parser) parseVarDecl() (ast.StmtID, bool) {
	typ, ok := p.parseTypeName()
	if !ok {
		return ast.NoStmtID, false
	}
	var vars []ast.ExprID
	for {
		v, ok := p.parseDeclarator()
		if !ok {
			return ast.NoStmtID, false
		}
		vars = append(vars, v)
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.arenas.Stmts.NewVarDecl(typ.Span.Cover(p.lastSpan), typ, vars), true
}

// parseDeclarator: ident или ident := expr
func (p *Parser) parseDeclarator() (ast.ExprID, bool) {
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.eat(token.ColonAssign) {
		return name, true
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	sp := p.arenas.Exprs.Get(name).Span.Cover(p.arenas.Exprs.Get(value).Span)
	return p.arenas.Exprs.NewAssign(sp, name, value), true
}

func (p *Parser) parseInput() (ast.StmtID, bool) {
	kw := p.advance()
	target, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewInput(kw.Span.Cover(p.lastSpan), target), true
}

func (p *Parser) parseOutput() (ast.StmtID, bool) {
	kw := p.advance()
	var args []ast.ExprID
	for {
		e, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		args = append(args, e)
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.arenas.Stmts.NewOutput(kw.Span.Cover(p.lastSpan), args), true
}

func (p *Parser) closeBlock(k token.Kind, open source.Span, what string) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	sp := p.diagSpan()
	p.report(diag.SynUnclosedBlock, diag.SevError, sp,
		"expected \""+token.Spelling(k)+"\" to close "+what+", got "+describe(p.peek()),
		diag.Note{Span: open, Msg: what + " starts here"})
	return false
}
