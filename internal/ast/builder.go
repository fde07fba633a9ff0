package ast

import (
	"salc/internal/source"
)

type Hints struct{ Stmts, Exprs uint }

// Builder owns every node of one program. Root is set by the parser
// once the top-level block is complete.
type Builder struct {
	Stmts   *Stmts
	Exprs   *Exprs
	Strings *source.Interner
	Root    StmtID
}

func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 7
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
		Strings: strings,
	}
}

// Name returns the spelling of an identifier expression, "" for anything else.
func (b *Builder) Name(id ExprID) string {
	data, ok := b.Exprs.Ident(id)
	if !ok {
		return ""
	}
	name, _ := b.Strings.Lookup(data.Name)
	return name
}

// Program returns the top-level statement list.
func (b *Builder) Program() []StmtID {
	blk, ok := b.Stmts.Block(b.Root)
	if !ok {
		return nil
	}
	return blk.Stmts
}
