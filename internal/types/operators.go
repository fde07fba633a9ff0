package types

import "salc/internal/ast"

// Match is the outcome of operator resolution. Left and Right are the
// operand types the operator is applied to; when one differs from the
// actual operand type the checker wraps that operand into a conversion.
type Match struct {
	Left   TypeID
	Right  TypeID
	Result TypeID
}

type kindPair struct{ l, r Kind }

var (
	arithPairs = map[kindPair]Kind{
		{KindInt, KindInt}:     KindInt,
		{KindFloat, KindFloat}: KindFloat,
	}
	addPairs = map[kindPair]Kind{
		{KindInt, KindInt}:       KindInt,
		{KindFloat, KindFloat}:   KindFloat,
		{KindString, KindString}: KindString,
	}
	comparePairs = map[kindPair]Kind{
		{KindInt, KindInt}:       KindBool,
		{KindFloat, KindFloat}:   KindBool,
		{KindString, KindString}: KindBool,
	}
	logicPairs = map[kindPair]Kind{
		{KindBool, KindBool}: KindBool,
	}
)

func pairsFor(op ast.ExprBinaryOp) map[kindPair]Kind {
	switch {
	case op == ast.ExprBinaryAdd:
		return addPairs
	case op.IsComparison():
		return comparePairs
	case op.IsLogical():
		return logicPairs
	default:
		return arithPairs
	}
}

func (in *Interner) exact(op ast.ExprBinaryOp, l, r TypeID) (TypeID, bool) {
	res, ok := pairsFor(op)[kindPair{in.KindOf(l), in.KindOf(r)}]
	if !ok {
		return NoTypeID, false
	}
	return in.Simple(res), true
}

// Compatible resolves a binary operator. Exact pairs win; otherwise each
// widening of the left operand is tried with the right fixed, then each
// widening of the right operand with the left fixed. и/или never widen.
func (in *Interner) Compatible(op ast.ExprBinaryOp, l, r TypeID) (Match, bool) {
	if res, ok := in.exact(op, l, r); ok {
		return Match{Left: l, Right: r, Result: res}, true
	}
	if op.IsLogical() {
		return Match{}, false
	}
	for _, cand := range in.WidenCandidates(l) {
		if res, ok := in.exact(op, cand, r); ok {
			return Match{Left: cand, Right: r, Result: res}, true
		}
	}
	for _, cand := range in.WidenCandidates(r) {
		if res, ok := in.exact(op, l, cand); ok {
			return Match{Left: l, Right: cand, Result: res}, true
		}
	}
	return Match{}, false
}

// CompatibleUnary resolves не (лог→лог) and unary minus (цел→цел, вещ→вещ).
func (in *Interner) CompatibleUnary(op ast.ExprUnaryOp, t TypeID) (TypeID, bool) {
	k := in.KindOf(t)
	switch op {
	case ast.ExprUnaryNot:
		if k == KindBool {
			return t, true
		}
	case ast.ExprUnaryNeg:
		if k == KindInt || k == KindFloat {
			return t, true
		}
	}
	return NoTypeID, false
}
