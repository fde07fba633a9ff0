package parser

import (
	"salc/internal/diag"
	"salc/internal/source"
	"salc/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return tok
	}
	p.ahead = p.ahead[1:]
	p.consumed++
	p.lastSpan = tok.Span
	return tok
}

// diagSpan: для EOF указываем сразу за последним токеном
func (p *Parser) diagSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagSpan()
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: p.peek().Text}, false
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.diagSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes ...diag.Note) bool {
	if p.opts.Reporter == nil {
		return false
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Enough() {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, notes)
	return true
}

// describe рендерит токен для сообщений об ошибке.
func describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of file"
	}
	return "\"" + tok.Text + "\""
}

// isBlockEnd: токены, закрывающие список операторов.
func isBlockEnd(k token.Kind) bool {
	switch k {
	case token.EOF, token.KwEnd, token.KwElse, token.KwFi, token.KwEndLoop, token.KwUntil:
		return true
	}
	return false
}

// isStmtStarter: токены, с которых может начинаться оператор.
func isStmtStarter(k token.Kind) bool {
	switch k {
	case token.KwAlg, token.KwIf, token.KwLoop, token.KwInput, token.KwOutput, token.Ident:
		return true
	}
	return false
}

// resyncStmt: восстановление после ошибки: прокручиваем до ';',
// начала следующего оператора или конца блока.
func (p *Parser) resyncStmt() {
	for {
		k := p.peek().Kind
		if k == token.Semicolon {
			p.advance()
			return
		}
		if isBlockEnd(k) || (isStmtStarter(k) && k != token.Ident) {
			return
		}
		p.advance()
	}
}
