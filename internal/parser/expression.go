package parser

import (
	"strings"

	"salc/internal/ast"
	"salc/internal/diag"
	"salc/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr: Pratt parsing; присваивание обрабатывается здесь же
// как правоассоциативный оператор с наименьшим приоритетом.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		prec, rightAssoc := binaryPrec(p.peek().Kind)
		if prec < 0 || prec < minPrec {
			break
		}
		opTok := p.advance()
		next := prec + 1
		if rightAssoc {
			next = prec
		}
		right, ok := p.parseBinaryExpr(next)
		if !ok {
			return ast.NoExprID, false
		}
		sp := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		if opTok.Kind == token.ColonAssign {
			if p.arenas.Exprs.Get(left).Kind != ast.ExprIdent {
				p.report(diag.SynBadAssignTarget, diag.SevError, p.arenas.Exprs.Get(left).Span, "left side of \":=\" must be a variable name")
				return ast.NoExprID, false
			}
			left = p.arenas.Exprs.NewAssign(sp, left, right)
			continue
		}
		left = p.arenas.Exprs.NewBinary(sp, binaryOps[opTok.Kind], left, right)
	}
	return left, true
}

func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	var op ast.ExprUnaryOp
	switch p.peek().Kind {
	case token.KwNot:
		op = ast.ExprUnaryNot
	case token.Minus:
		op = ast.ExprUnaryNeg
	default:
		return p.parsePrimary()
	}
	opTok := p.advance()
	operand, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	sp := opTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
	return p.arenas.Exprs.NewUnary(sp, op, operand), true
}

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.peek()
	exprs := p.arenas.Exprs
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return exprs.NewLiteral(tok.Span, ast.ExprLitInt, tok.Text), true
	case token.FloatLit:
		p.advance()
		return exprs.NewLiteral(tok.Span, ast.ExprLitFloat, tok.Text), true
	case token.StringLit:
		p.advance()
		return exprs.NewLiteral(tok.Span, ast.ExprLitString, strings.Trim(tok.Text, "\"")), true
	case token.CharLit:
		p.advance()
		return exprs.NewLiteral(tok.Span, ast.ExprLitChar, strings.Trim(tok.Text, "'")), true
	case token.KwTrue, token.KwFalse:
		p.advance()
		return exprs.NewLiteral(tok.Span, ast.ExprLitBool, tok.Text), true
	case token.Ident:
		p.advance()
		ident := exprs.NewIdent(tok.Span, p.arenas.Strings.Intern(tok.Text))
		if p.at(token.LParen) {
			return p.parseCall(ident)
		}
		return ident, true
	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected \")\", got "+describe(p.peek())); !ok {
			return ast.NoExprID, false
		}
		return inner, true
	}
	p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
	return ast.NoExprID, false
}

// parseCall: callee уже разобран, текущий токен "(".
func (p *Parser) parseCall(callee ast.ExprID) (ast.ExprID, bool) {
	p.advance()
	var args []ast.ExprID
	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			args = append(args, arg)
			if !p.eat(token.Comma) {
				break
			}
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected \")\" to close call arguments, got "+describe(p.peek())); !ok {
		return ast.NoExprID, false
	}
	sp := p.arenas.Exprs.Get(callee).Span.Cover(p.lastSpan)
	return p.arenas.Exprs.NewCall(sp, callee, args), true
}
