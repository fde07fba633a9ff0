package lexer

import (
	"strconv"

	"salc/internal/diag"
	"salc/internal/token"
)

// Числа: 123, 1.5. Экспонент и систем счисления язык не знает.
// Литерал с точкой: FloatLit, иначе IntLit.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexBadNumber, sp, "expected digit after '.'")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	// "12абв": склеенное число и имя
	if r, sz := lx.peekRune(); sz > 0 && isIdentStartRune(r) {
		for {
			r, sz := lx.peekRune()
			if sz == 0 || !isIdentContinueRune(r) {
				break
			}
			lx.bumpRune()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexBadNumber, sp, "invalid number literal "+lx.text(sp))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if kind == token.IntLit {
		// цел это int32: больший литерал ldc.i4 не примет
		if _, err := strconv.ParseInt(text, 10, 32); err != nil {
			lx.report(diag.LexBadNumber, sp, "integer literal "+text+" does not fit in цел")
		}
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}
