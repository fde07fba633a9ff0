package ast

import (
	"salc/internal/source"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLit
	ExprBinary
	ExprUnary
	ExprAssign
	ExprCall
	// ExprConvert is never produced by the parser: the checker wraps an
	// operand into it when an implicit widening is required.
	ExprConvert
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "Ident"
	case ExprLit:
		return "Lit"
	case ExprBinary:
		return "Binary"
	case ExprUnary:
		return "Unary"
	case ExprAssign:
		return "Assign"
	case ExprCall:
		return "Call"
	case ExprConvert:
		return "Convert"
	}
	return "Expr(?)"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprIdentData struct {
	Name source.StringID
}

type ExprLitKind uint8

const (
	ExprLitInt ExprLitKind = iota
	ExprLitFloat
	ExprLitString
	ExprLitChar
	ExprLitBool
)

func (k ExprLitKind) String() string {
	switch k {
	case ExprLitInt:
		return "int"
	case ExprLitFloat:
		return "float"
	case ExprLitString:
		return "string"
	case ExprLitChar:
		return "char"
	case ExprLitBool:
		return "bool"
	}
	return "lit(?)"
}

// ExprLiteralData хранит текст литерала без кавычек; для логических "да"/"нет".
type ExprLiteralData struct {
	Kind  ExprLitKind
	Value string
}

type ExprBinaryOp uint8

const (
	// Арифметика
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv

	// Сравнения
	ExprBinaryGreater
	ExprBinaryLess
	ExprBinaryGreaterEq
	ExprBinaryLessEq
	ExprBinaryEq

	// Логика
	ExprBinaryAnd
	ExprBinaryOr
)

var binaryOpSpelling = [...]string{
	ExprBinaryAdd:       "+",
	ExprBinarySub:       "-",
	ExprBinaryMul:       "*",
	ExprBinaryDiv:       "/",
	ExprBinaryGreater:   ">",
	ExprBinaryLess:      "<",
	ExprBinaryGreaterEq: ">=",
	ExprBinaryLessEq:    "<=",
	ExprBinaryEq:        "=",
	ExprBinaryAnd:       "и",
	ExprBinaryOr:        "или",
}

func (op ExprBinaryOp) String() string {
	if int(op) < len(binaryOpSpelling) {
		return binaryOpSpelling[op]
	}
	return "?"
}

// IsComparison reports whether op yields лог from ordered operands.
func (op ExprBinaryOp) IsComparison() bool {
	return op >= ExprBinaryGreater && op <= ExprBinaryEq
}

// IsLogical reports whether op is и / или.
func (op ExprBinaryOp) IsLogical() bool {
	return op == ExprBinaryAnd || op == ExprBinaryOr
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryOp uint8

const (
	ExprUnaryNot ExprUnaryOp = iota // не
	ExprUnaryNeg                    // -
)

func (op ExprUnaryOp) String() string {
	if op == ExprUnaryNot {
		return "не"
	}
	return "-"
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

// ExprAssignData: присваивание является выражением, его тип равен типу цели.
type ExprAssignData struct {
	Target ExprID // всегда ExprIdent
	Value  ExprID
}

type ExprCallData struct {
	Callee ExprID // всегда ExprIdent
	Args   []ExprID
}

// ExprConvertData wraps Value; the destination type lives in the checker's tables.
type ExprConvertData struct {
	Value ExprID
}
