package lexer

import (
	"salc/internal/diag"
	"salc/internal/token"
)

// scanOperatorOrPunct: жадно сначала двухсимвольные (:=, <=, >=), потом одиночные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b1 == '=' {
		var kind token.Kind
		switch b0 {
		case ':':
			kind = token.ColonAssign
		case '<':
			kind = token.LtEq
		case '>':
			kind = token.GtEq
		}
		if kind != token.Invalid {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.tokenFrom(start, kind)
		}
	}

	var kind token.Kind
	switch lx.cursor.Peek() {
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '=':
		kind = token.Eq
	case '<':
		kind = token.Lt
	case '>':
		kind = token.Gt
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semicolon
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	default:
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexUnknownChar, sp, "unknown character "+quoteRune(lx.text(sp)))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	lx.cursor.Bump()
	return lx.tokenFrom(start, kind)
}

func (lx *Lexer) tokenFrom(start Mark, kind token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func quoteRune(s string) string {
	return "'" + s + "'"
}
