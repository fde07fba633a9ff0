package parser

import (
	"salc/internal/ast"
	"salc/internal/diag"
	"salc/internal/token"
)

// parseFuncDecl: алг имя(арг цел a, b, вещ c, рез лит r) нач ... кон
func (p *Parser) parseFuncDecl() (ast.StmtID, bool) {
	kw := p.advance() // алг
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.StmtFuncDeclData{Name: name}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected \"(\" after algorithm name, got "+describe(p.peek())); !ok {
		return ast.NoStmtID, false
	}
	if !p.at(token.RParen) {
		if !p.parseParams(&data) {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected \")\" after parameters, got "+describe(p.peek())); !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwBegin, diag.SynUnexpectedToken, "expected \"нач\" before algorithm body, got "+describe(p.peek())); !ok {
		return ast.NoStmtID, false
	}
	data.Body = p.parseBlock()
	if !p.closeBlock(token.KwEnd, kw.Span, "algorithm") {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFuncDecl(kw.Span.Cover(p.lastSpan), data), true
}

// parseParams разбирает список параметров. Режим (арг/рез) и тип
// распространяются на следующие имена, пока не встретится новый:
// "арг цел a, b" объявляет два целых аргумента. Результат только один и последний.
func (p *Parser) parseParams(data *ast.StmtFuncDeclData) bool {
	var (
		mode    token.Kind
		typ     ast.TypeName
		hasType bool
	)
	for {
		if p.atOr(token.KwArg, token.KwRes) {
			mode = p.advance().Kind
			hasType = false
		} else if mode == 0 {
			p.err(diag.SynExpectParamMode, "expected \"арг\" or \"рез\" before parameter, got "+describe(p.peek()))
			return false
		}
		if data.HasResult {
			p.err(diag.SynUnexpectedToken, "result parameter must be the last one")
			return false
		}
		if p.at(token.Ident) && p.peekN(1).Kind == token.Ident {
			t, _ := p.parseTypeName()
			typ, hasType = t, true
		} else if !hasType {
			p.err(diag.SynExpectType, "expected parameter type, got "+describe(p.peek()))
			return false
		}
		name, ok := p.parseIdent()
		if !ok {
			return false
		}
		param := ast.Param{Name: name, Type: typ}
		if mode == token.KwRes {
			data.Result = param
			data.HasResult = true
		} else {
			data.Params = append(data.Params, param)
		}
		if !p.eat(token.Comma) {
			return true
		}
	}
}
