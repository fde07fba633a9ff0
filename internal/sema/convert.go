package sema

import (
	"salc/internal/ast"
	"salc/internal/diag"
	"salc/internal/types"
)

// convert wraps id into a conversion node with destination type to.
// Idempotent: an expression already of type to is returned unchanged.
func (c *checker) convert(id ast.ExprID, to types.TypeID) ast.ExprID {
	if c.types.Equal(c.res.ExprTypes[id], to) {
		return id
	}
	conv := c.b.Exprs.NewConvert(id)
	c.res.ExprTypes[conv] = to
	return conv
}

// coerce converts an already checked expression to want or fails with code.
func (c *checker) coerce(id ast.ExprID, want types.TypeID, code diag.Code, msg func(from types.TypeID) string) (ast.ExprID, error) {
	have := c.res.ExprTypes[id]
	if c.types.Equal(have, want) {
		return id, nil
	}
	if !c.types.CanConvert(have, want) {
		return id, c.fail(code, c.span(id), msg(have))
	}
	return c.convert(id, want), nil
}

