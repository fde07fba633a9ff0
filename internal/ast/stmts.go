package ast

import (
	"slices"

	"salc/internal/source"
)

type Stmts struct {
	Arena     *Arena[Stmt]
	Blocks    *Arena[StmtBlockData]
	VarDecls  *Arena[StmtVarDeclData]
	FuncDecls *Arena[StmtFuncDeclData]
	Ifs       *Arena[StmtIfData]
	Whiles    *Arena[StmtWhileData]
	DoWhiles  *Arena[StmtDoWhileData]
	Fors      *Arena[StmtForData]
	Inputs    *Arena[StmtInputData]
	Outputs   *Arena[StmtOutputData]
	Exprs     *Arena[StmtExprData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 7
	}
	small := capHint / 4
	return &Stmts{
		Arena:     NewArena[Stmt](capHint),
		Blocks:    NewArena[StmtBlockData](small),
		VarDecls:  NewArena[StmtVarDeclData](small),
		FuncDecls: NewArena[StmtFuncDeclData](small),
		Ifs:       NewArena[StmtIfData](small),
		Whiles:    NewArena[StmtWhileData](small),
		DoWhiles:  NewArena[StmtDoWhileData](small),
		Fors:      NewArena[StmtForData](small),
		Inputs:    NewArena[StmtInputData](small),
		Outputs:   NewArena[StmtOutputData](small),
		Exprs:     NewArena[StmtExprData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return 0, false
	}
	return uint32(st.Payload), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID, program bool) StmtID {
	return s.new(StmtBlock, span, s.Blocks.Allocate(StmtBlockData{Stmts: slices.Clone(stmts), Program: program}))
}

func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	p, ok := s.payload(id, StmtBlock)
	if !ok {
		return nil, false
	}
	return s.Blocks.Get(p), true
}

func (s *Stmts) NewVarDecl(span source.Span, typ TypeName, vars []ExprID) StmtID {
	return s.new(StmtVarDecl, span, s.VarDecls.Allocate(StmtVarDeclData{Type: typ, Vars: slices.Clone(vars)}))
}

func (s *Stmts) VarDecl(id StmtID) (*StmtVarDeclData, bool) {
	p, ok := s.payload(id, StmtVarDecl)
	if !ok {
		return nil, false
	}
	return s.VarDecls.Get(p), true
}

func (s *Stmts) NewFuncDecl(span source.Span, data StmtFuncDeclData) StmtID {
	data.Params = slices.Clone(data.Params)
	return s.new(StmtFuncDecl, span, s.FuncDecls.Allocate(data))
}

func (s *Stmts) FuncDecl(id StmtID) (*StmtFuncDeclData, bool) {
	p, ok := s.payload(id, StmtFuncDecl)
	if !ok {
		return nil, false
	}
	return s.FuncDecls.Get(p), true
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, span, s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els}))
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	return s.new(StmtWhile, span, s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body}))
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	p, ok := s.payload(id, StmtWhile)
	if !ok {
		return nil, false
	}
	return s.Whiles.Get(p), true
}

func (s *Stmts) NewDoWhile(span source.Span, body StmtID, cond ExprID) StmtID {
	return s.new(StmtDoWhile, span, s.DoWhiles.Allocate(StmtDoWhileData{Body: body, Cond: cond}))
}

func (s *Stmts) DoWhile(id StmtID) (*StmtDoWhileData, bool) {
	p, ok := s.payload(id, StmtDoWhile)
	if !ok {
		return nil, false
	}
	return s.DoWhiles.Get(p), true
}

func (s *Stmts) NewFor(span source.Span, data StmtForData) StmtID {
	return s.new(StmtFor, span, s.Fors.Allocate(data))
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	p, ok := s.payload(id, StmtFor)
	if !ok {
		return nil, false
	}
	return s.Fors.Get(p), true
}

func (s *Stmts) NewInput(span source.Span, target ExprID) StmtID {
	return s.new(StmtInput, span, s.Inputs.Allocate(StmtInputData{Target: target}))
}

func (s *Stmts) Input(id StmtID) (*StmtInputData, bool) {
	p, ok := s.payload(id, StmtInput)
	if !ok {
		return nil, false
	}
	return s.Inputs.Get(p), true
}

func (s *Stmts) NewOutput(span source.Span, args []ExprID) StmtID {
	return s.new(StmtOutput, span, s.Outputs.Allocate(StmtOutputData{Args: slices.Clone(args)}))
}

func (s *Stmts) Output(id StmtID) (*StmtOutputData, bool) {
	p, ok := s.payload(id, StmtOutput)
	if !ok {
		return nil, false
	}
	return s.Outputs.Get(p), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(StmtExprData{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}
