package sema

import (
	"fmt"
	"slices"

	"salc/internal/ast"
	"salc/internal/diag"
	"salc/internal/symbols"
	"salc/internal/types"
)

// checkProgram обходит корневой список: алгоритмы объявляются в порядке
// появления, поэтому вызов видит только уже объявленные алгоритмы и себя.
func (c *checker) checkProgram(root ast.StmtID) error {
	blk, ok := c.b.Stmts.Block(root)
	if !ok || !blk.Program {
		return c.fail(diag.GenInternal, c.b.Stmts.Get(root).Span, "program root must be a program block")
	}
	for _, st := range blk.Stmts {
		var err error
		if c.b.Stmts.Get(st).Kind == ast.StmtFuncDecl {
			err = c.checkFunc(st)
		} else {
			err = c.checkStmt(c.res.Program, st)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) checkFunc(id ast.StmtID) error {
	decl, _ := c.b.Stmts.FuncDecl(id)
	stmt := c.b.Stmts.Get(id)

	params := make([]types.TypeID, len(decl.Params))
	for i, p := range decl.Params {
		t, err := c.resolveType(p.Type)
		if err != nil {
			return err
		}
		params[i] = t
	}
	result := c.types.Builtins().Void
	if decl.HasResult {
		t, err := c.resolveType(decl.Result.Type)
		if err != nil {
			return err
		}
		result = t
	}
	fnType := c.types.RegisterFn(params, result)

	nameIdent, _ := c.b.Exprs.Ident(decl.Name)
	if prev, ok := c.table.Resolve(c.res.Program, nameIdent.Name); ok {
		if sym := c.table.Symbols.Get(prev); !sym.IsBuiltin() && c.types.IsFunction(sym.Type) {
			return c.fail(diag.SemaFunctionRedeclared, c.span(decl.Name),
				fmt.Sprintf("algorithm %q is already declared", c.table.Name(prev)),
				diag.Note{Span: sym.Span, Msg: "previous declaration"})
		}
	}
	fnSym, err := c.declare(c.res.Program, decl.Name, fnType, 0)
	if err != nil {
		return err
	}

	info := &FuncInfo{Decl: id, Symbol: fnSym}
	c.res.Funcs = append(c.res.Funcs, info)
	c.res.funcIndex[id] = info
	prevFn := c.fn
	c.fn = info
	defer func() { c.fn = prevFn }()

	scope := c.table.NewFunctionScope(c.res.Program, fnSym, stmt.Span)
	for i, p := range decl.Params {
		sym, err := c.declare(scope, p.Name, params[i], symbols.SymbolFlagParam)
		if err != nil {
			return err
		}
		info.Params = append(info.Params, sym)
	}
	if decl.HasResult {
		sym, err := c.declare(scope, decl.Result.Name, result, 0)
		if err != nil {
			return err
		}
		info.Result = sym
	}
	return c.checkStmt(scope, decl.Body)
}

func (c *checker) checkStmt(scope symbols.ScopeID, id ast.StmtID) error {
	stmt := c.b.Stmts.Get(id)
	if stmt == nil {
		return nil
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		blk, _ := c.b.Stmts.Block(id)
		inner := c.table.NewBlockScope(scope, stmt.Span)
		for _, st := range blk.Stmts {
			if err := c.checkStmt(inner, st); err != nil {
				return err
			}
		}
		return nil

	case ast.StmtVarDecl:
		return c.checkVarDecl(scope, id)

	case ast.StmtFuncDecl:
		decl, _ := c.b.Stmts.FuncDecl(id)
		return c.fail(diag.SemaNestedFunction, c.span(decl.Name),
			fmt.Sprintf("algorithm %q must be declared at the top level", c.b.Name(decl.Name)))

	case ast.StmtIf:
		data, _ := c.b.Stmts.If(id)
		cond, err := c.condition(scope, data.Cond)
		if err != nil {
			return err
		}
		data, _ = c.b.Stmts.If(id)
		data.Cond = cond
		if err := c.checkStmt(scope, data.Then); err != nil {
			return err
		}
		return c.checkStmt(scope, data.Else)

	case ast.StmtWhile:
		data, _ := c.b.Stmts.While(id)
		cond, err := c.condition(scope, data.Cond)
		if err != nil {
			return err
		}
		data, _ = c.b.Stmts.While(id)
		data.Cond = cond
		return c.checkStmt(scope, data.Body)

	case ast.StmtDoWhile:
		data, _ := c.b.Stmts.DoWhile(id)
		if err := c.checkStmt(scope, data.Body); err != nil {
			return err
		}
		cond, err := c.condition(scope, data.Cond)
		if err != nil {
			return err
		}
		data, _ = c.b.Stmts.DoWhile(id)
		data.Cond = cond
		return nil

	case ast.StmtFor:
		return c.checkFor(scope, id)

	case ast.StmtInput:
		data, _ := c.b.Stmts.Input(id)
		_, err := c.variable(scope, data.Target)
		return err

	case ast.StmtOutput:
		data, _ := c.b.Stmts.Output(id)
		for _, arg := range data.Args {
			if _, err := c.value(scope, arg); err != nil {
				return err
			}
		}
		return nil

	case ast.StmtExpr:
		data, _ := c.b.Stmts.Expr(id)
		_, err := c.checkExpr(scope, data.Expr)
		return err
	}
	return c.fail(diag.GenInternal, stmt.Span, fmt.Sprintf("unexpected statement kind %s", stmt.Kind))
}

// checkVarDecl: инициализатор проверяется до объявления имени,
// поэтому "цел a := a" ссылается на внешнее a.
func (c *checker) checkVarDecl(scope symbols.ScopeID, id ast.StmtID) error {
	data, _ := c.b.Stmts.VarDecl(id)
	typ, err := c.resolveType(data.Type)
	if err != nil {
		return err
	}
	for _, v := range slices.Clone(data.Vars) {
		asg, isAssign := c.b.Exprs.Assign(v)
		if !isAssign {
			if _, err := c.declare(scope, v, typ, 0); err != nil {
				return err
			}
			continue
		}
		target, valueID := asg.Target, asg.Value
		// имя объявлено до инициализатора: "цел x := x" читает новую переменную
		if _, err := c.declare(scope, target, typ, 0); err != nil {
			return err
		}
		if _, err := c.value(scope, valueID); err != nil {
			return err
		}
		conv, err := c.coerce(valueID, typ, diag.SemaNotConvertible, func(from types.TypeID) string {
			return fmt.Sprintf("cannot initialize %s variable %q with %s", c.typeName(typ), c.b.Name(target), c.typeName(from))
		})
		if err != nil {
			return err
		}
		asg, _ = c.b.Exprs.Assign(v)
		asg.Value = conv
		c.res.ExprTypes[v] = typ
	}
	return nil
}

// checkFor: заголовок получает свою область, тело вложено в неё.
// Отсутствующее условие заменяется литералом "да".
func (c *checker) checkFor(scope symbols.ScopeID, id ast.StmtID) error {
	stmt := c.b.Stmts.Get(id)
	header := c.table.NewBlockScope(scope, stmt.Span)
	data, _ := c.b.Stmts.For(id)
	if err := c.checkStmt(header, data.Init); err != nil {
		return err
	}
	data, _ = c.b.Stmts.For(id)
	if !data.Cond.IsValid() {
		data.Cond = c.b.Exprs.NewLiteral(stmt.Span, ast.ExprLitBool, "да")
	}
	cond, err := c.condition(header, data.Cond)
	if err != nil {
		return err
	}
	data, _ = c.b.Stmts.For(id)
	data.Cond = cond
	if err := c.checkStmt(header, data.Step); err != nil {
		return err
	}
	return c.checkStmt(header, data.Body)
}
