package parser

import (
	"salc/internal/ast"
	"salc/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAssignment     = 1 // :=
	precLogicalOr      = 2 // или
	precLogicalAnd     = 3 // и
	precComparison     = 4 // = < <= > >=
	precAdditive       = 5 // + -
	precMultiplicative = 6 // * /
)

// binaryPrec возвращает приоритет и правоассоциативность; -1 если не бинарный оператор.
func binaryPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.ColonAssign:
		return precAssignment, true
	case token.KwOr:
		return precLogicalOr, false
	case token.KwAnd:
		return precLogicalAnd, false
	case token.Eq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash:
		return precMultiplicative, false
	default:
		return -1, false
	}
}

var binaryOps = map[token.Kind]ast.ExprBinaryOp{
	token.Plus:  ast.ExprBinaryAdd,
	token.Minus: ast.ExprBinarySub,
	token.Star:  ast.ExprBinaryMul,
	token.Slash: ast.ExprBinaryDiv,
	token.Gt:    ast.ExprBinaryGreater,
	token.Lt:    ast.ExprBinaryLess,
	token.GtEq:  ast.ExprBinaryGreaterEq,
	token.LtEq:  ast.ExprBinaryLessEq,
	token.Eq:    ast.ExprBinaryEq,
	token.KwAnd: ast.ExprBinaryAnd,
	token.KwOr:  ast.ExprBinaryOr,
}
