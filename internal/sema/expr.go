package sema

import (
	"fmt"

	"salc/internal/ast"
	"salc/internal/diag"
	"salc/internal/symbols"
	"salc/internal/types"
)

// checkExpr computes and records the type of id. Void is allowed here;
// use value for positions that need a result.
func (c *checker) checkExpr(scope symbols.ScopeID, id ast.ExprID) (types.TypeID, error) {
	expr := c.b.Exprs.Get(id)
	if expr == nil {
		return types.NoTypeID, c.fail(diag.GenInternal, c.span(id), "missing expression")
	}
	var (
		t   types.TypeID
		err error
	)
	switch expr.Kind {
	case ast.ExprIdent:
		var sym *symbols.Symbol
		sym, err = c.variable(scope, id)
		if err == nil {
			t = sym.Type
		}
	case ast.ExprLit:
		t = c.literalType(id)
	case ast.ExprBinary:
		t, err = c.checkBinary(scope, id)
	case ast.ExprUnary:
		t, err = c.checkUnary(scope, id)
	case ast.ExprAssign:
		t, err = c.checkAssign(scope, id)
	case ast.ExprCall:
		t, err = c.checkCall(scope, id)
	case ast.ExprConvert:
		// узлы преобразования создаёт только checker
		recorded, ok := c.res.ExprTypes[id]
		if !ok {
			return types.NoTypeID, c.fail(diag.GenInternal, expr.Span, "conversion node without a destination type")
		}
		t = recorded
	default:
		return types.NoTypeID, c.fail(diag.GenInternal, expr.Span, fmt.Sprintf("unexpected expression kind %s", expr.Kind))
	}
	if err != nil {
		return types.NoTypeID, err
	}
	c.res.ExprTypes[id] = t
	return t, nil
}

// value checks id and rejects void results.
func (c *checker) value(scope symbols.ScopeID, id ast.ExprID) (types.TypeID, error) {
	t, err := c.checkExpr(scope, id)
	if err != nil {
		return t, err
	}
	if c.types.KindOf(t) == types.KindVoid {
		what := "expression"
		if call, ok := c.b.Exprs.Call(id); ok {
			what = fmt.Sprintf("algorithm %q", c.b.Name(call.Callee))
		}
		return t, c.fail(diag.SemaVoidValue, c.span(id), what+" returns no value")
	}
	return t, nil
}

// variable resolves an identifier that must denote a variable, not an algorithm.
func (c *checker) variable(scope symbols.ScopeID, id ast.ExprID) (*symbols.Symbol, error) {
	ident, ok := c.b.Exprs.Ident(id)
	if !ok {
		return nil, c.fail(diag.SynBadAssignTarget, c.span(id), "expected a variable name")
	}
	name := c.b.Strings.MustLookup(ident.Name)
	symID, ok := c.table.Resolve(scope, ident.Name)
	if !ok {
		return nil, c.fail(diag.SemaUnresolvedSymbol, c.span(id), fmt.Sprintf("unknown identifier %q", name))
	}
	sym := c.table.Symbols.Get(symID)
	if !sym.HasSlot() {
		return nil, c.fail(diag.SemaFunctionAsValue, c.span(id), fmt.Sprintf("algorithm %q cannot be used as a value", name))
	}
	c.res.ExprSymbols[id] = symID
	c.res.ExprTypes[id] = sym.Type
	return sym, nil
}

func (c *checker) literalType(id ast.ExprID) types.TypeID {
	lit, _ := c.b.Exprs.Literal(id)
	b := c.types.Builtins()
	switch lit.Kind {
	case ast.ExprLitInt:
		return b.Int
	case ast.ExprLitFloat:
		return b.Float
	case ast.ExprLitString:
		return b.String
	case ast.ExprLitChar:
		return b.Char
	default:
		return b.Bool
	}
}

func (c *checker) checkBinary(scope symbols.ScopeID, id ast.ExprID) (types.TypeID, error) {
	data, _ := c.b.Exprs.Binary(id)
	op, left, right := data.Op, data.Left, data.Right
	lt, err := c.value(scope, left)
	if err != nil {
		return types.NoTypeID, err
	}
	rt, err := c.value(scope, right)
	if err != nil {
		return types.NoTypeID, err
	}
	m, ok := c.types.Compatible(op, lt, rt)
	if !ok {
		return types.NoTypeID, c.fail(diag.SemaOperatorMismatch, c.span(id),
			fmt.Sprintf("operator %q is not applicable to %s and %s", op.String(), c.typeName(lt), c.typeName(rt)))
	}
	data, _ = c.b.Exprs.Binary(id)
	data.Left = c.convert(left, m.Left)
	data.Right = c.convert(right, m.Right)
	return m.Result, nil
}

func (c *checker) checkUnary(scope symbols.ScopeID, id ast.ExprID) (types.TypeID, error) {
	data, _ := c.b.Exprs.Unary(id)
	op := data.Op
	t, err := c.value(scope, data.Operand)
	if err != nil {
		return types.NoTypeID, err
	}
	res, ok := c.types.CompatibleUnary(op, t)
	if !ok {
		return types.NoTypeID, c.fail(diag.SemaOperatorMismatch, c.span(id),
			fmt.Sprintf("operator %q is not applicable to %s", op.String(), c.typeName(t)))
	}
	return res, nil
}

func (c *checker) checkAssign(scope symbols.ScopeID, id ast.ExprID) (types.TypeID, error) {
	data, _ := c.b.Exprs.Assign(id)
	target, value := data.Target, data.Value
	sym, err := c.variable(scope, target)
	if err != nil {
		return types.NoTypeID, err
	}
	if _, err := c.value(scope, value); err != nil {
		return types.NoTypeID, err
	}
	conv, err := c.coerce(value, sym.Type, diag.SemaNotConvertible, func(from types.TypeID) string {
		return fmt.Sprintf("cannot assign %s to %s variable %q", c.typeName(from), c.typeName(sym.Type), c.b.Name(target))
	})
	if err != nil {
		return types.NoTypeID, err
	}
	data, _ = c.b.Exprs.Assign(id)
	data.Value = conv
	return sym.Type, nil
}

func (c *checker) checkCall(scope symbols.ScopeID, id ast.ExprID) (types.TypeID, error) {
	data, _ := c.b.Exprs.Call(id)
	callee := data.Callee
	args := append([]ast.ExprID(nil), data.Args...)

	ident, ok := c.b.Exprs.Ident(callee)
	if !ok {
		return types.NoTypeID, c.fail(diag.SemaNotAFunction, c.span(callee), "only algorithms can be called")
	}
	name := c.b.Strings.MustLookup(ident.Name)
	symID, ok := c.table.Resolve(scope, ident.Name)
	if !ok {
		return types.NoTypeID, c.fail(diag.SemaUnresolvedSymbol, c.span(callee), fmt.Sprintf("unknown algorithm %q", name))
	}
	sym := c.table.Symbols.Get(symID)
	info, ok := c.types.FnInfo(sym.Type)
	if !ok {
		return types.NoTypeID, c.fail(diag.SemaNotAFunction, c.span(callee), fmt.Sprintf("%q is not an algorithm", name))
	}
	c.res.ExprSymbols[callee] = symID
	c.res.ExprTypes[callee] = sym.Type

	if len(args) != len(info.Params) {
		return types.NoTypeID, c.fail(diag.SemaArgumentCount, c.span(id),
			fmt.Sprintf("wrong number of arguments for %q: expected %d, got %d", name, len(info.Params), len(args)))
	}
	// сначала типизируем все аргументы, чтобы ошибка перечисляла оба списка
	actual := make([]types.TypeID, len(args))
	mismatch := false
	for i, arg := range args {
		t, err := c.value(scope, arg)
		if err != nil {
			return types.NoTypeID, err
		}
		actual[i] = t
		if !c.types.Equal(t, info.Params[i]) && !c.types.CanConvert(t, info.Params[i]) {
			mismatch = true
		}
	}
	if mismatch {
		return types.NoTypeID, c.fail(diag.SemaArgumentTypes, c.span(id),
			fmt.Sprintf("actual types %s of %q do not match declared %s", c.typeList(actual), name, c.typeList(info.Params)))
	}
	for i, arg := range args {
		args[i] = c.convert(arg, info.Params[i])
	}
	data, _ = c.b.Exprs.Call(id)
	copy(data.Args, args)
	return info.Result, nil
}

// condition checks a branch/loop condition and coerces it to лог.
func (c *checker) condition(scope symbols.ScopeID, id ast.ExprID) (ast.ExprID, error) {
	if _, err := c.value(scope, id); err != nil {
		return id, err
	}
	want := c.types.Builtins().Bool
	return c.coerce(id, want, diag.SemaNotConvertible, func(from types.TypeID) string {
		return fmt.Sprintf("condition of type %s is not convertible to %s", c.typeName(from), c.typeName(want))
	})
}
