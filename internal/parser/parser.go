package parser

import (
	"slices"

	"salc/internal/ast"
	"salc/internal/diag"
	"salc/internal/lexer"
	"salc/internal/source"
	"salc/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Root ast.StmtID
	Bag  *diag.Bag
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     source.FileID
	ahead    []token.Token // буфер предпросмотра поверх лексера
	consumed int
	opts     Options
	lastSpan source.Span // span последнего съеденного токена
}

// ParseFile разбирает программу целиком и записывает корень в arenas.Root.
func ParseFile(file *source.File, lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		lx:     lx,
		arenas: arenas,
		file:   file.ID,
		opts:   opts,
	}
	p.lastSpan = source.Span{File: file.ID}

	start := p.peek().Span
	stmts := p.parseStmtList()
	for !p.at(token.EOF) {
		// висячие терминаторы блоков на верхнем уровне
		p.err(diag.SynUnexpectedToken, "unexpected \""+p.peek().Text+"\" at top level")
		p.advance()
		stmts = append(stmts, p.parseStmtList()...)
	}
	root := p.arenas.Stmts.NewBlock(start.Cover(p.lastSpan), stmts, true)
	p.arenas.Root = root

	var bag *diag.Bag
	if br, ok := opts.Reporter.(diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{Root: root, Bag: bag}
}

func (p *Parser) fill(n int) {
	for len(p.ahead) <= n {
		p.ahead = append(p.ahead, p.lx.Next())
	}
}

func (p *Parser) peek() token.Token {
	p.fill(0)
	return p.ahead[0]
}

// peekN смотрит на n токенов вперёд; peekN(0) == peek().
func (p *Parser) peekN(n int) token.Token {
	p.fill(n)
	return p.ahead[n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}
