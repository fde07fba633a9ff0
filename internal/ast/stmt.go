package ast

import (
	"salc/internal/source"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtVarDecl
	StmtFuncDecl
	StmtIf
	StmtWhile
	StmtDoWhile
	StmtFor
	StmtInput
	StmtOutput
	StmtExpr
)

func (k StmtKind) String() string {
	switch k {
	case StmtBlock:
		return "Block"
	case StmtVarDecl:
		return "VarDecl"
	case StmtFuncDecl:
		return "FuncDecl"
	case StmtIf:
		return "If"
	case StmtWhile:
		return "While"
	case StmtDoWhile:
		return "DoWhile"
	case StmtFor:
		return "For"
	case StmtInput:
		return "Input"
	case StmtOutput:
		return "Output"
	case StmtExpr:
		return "ExprStmt"
	}
	return "Stmt(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// StmtBlockData: список операторов. Program помечает корень программы:
// его операторы живут в глобальной области видимости.
type StmtBlockData struct {
	Stmts   []StmtID
	Program bool
}

// TypeName is a type as written in source (цел, вещ, ...); resolved by sema.
type TypeName struct {
	Name source.StringID
	Span source.Span
}

// StmtVarDeclData: "цел a, b := 1". Each entry of Vars is either an
// ExprIdent (no initializer) or an ExprAssign whose target is the ident.
type StmtVarDeclData struct {
	Type TypeName
	Vars []ExprID
}

// Param is a formal parameter; ByRef is representable but the surface
// syntax only produces value parameters.
type Param struct {
	Name  ExprID // ExprIdent
	Type  TypeName
	ByRef bool
}

type StmtFuncDeclData struct {
	Name      ExprID // ExprIdent
	Params    []Param
	Result    Param // valid when HasResult
	HasResult bool
	Body      StmtID // StmtBlock
}

type StmtIfData struct {
	Cond ExprID
	Then StmtID // StmtBlock
	Else StmtID // StmtBlock or NoStmtID
}

type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

// StmtDoWhileData: тело выполняется хотя бы раз, повтор пока Cond истинно.
type StmtDoWhileData struct {
	Body StmtID
	Cond ExprID
}

// StmtForData: every header part is optional; a missing Cond means "always".
type StmtForData struct {
	Init StmtID
	Cond ExprID
	Step StmtID
	Body StmtID
}

type StmtInputData struct {
	Target ExprID // ExprIdent
}

type StmtOutputData struct {
	Args []ExprID
}

type StmtExprData struct {
	Expr ExprID
}
