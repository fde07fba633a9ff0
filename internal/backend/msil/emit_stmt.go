package msil

import (
	"salc/internal/ast"
	"salc/internal/types"
)

func (e *Emitter) emitStmt(id ast.StmtID) error {
	if !id.IsValid() {
		return nil
	}
	st := e.b.Stmts.Get(id)
	if st == nil {
		return e.internal(e.stmtSpan(id), "statement %d is missing", id)
	}
	switch st.Kind {
	case ast.StmtBlock:
		data, _ := e.b.Stmts.Block(id)
		for _, child := range data.Stmts {
			if err := e.emitStmt(child); err != nil {
				return err
			}
		}
		return nil

	case ast.StmtVarDecl:
		data, _ := e.b.Stmts.VarDecl(id)
		for _, v := range data.Vars {
			// без инициализатора слот уже обнулён
			if _, ok := e.b.Exprs.Assign(v); !ok {
				continue
			}
			if err := e.emitAssign(v, false); err != nil {
				return err
			}
		}
		return nil

	case ast.StmtFuncDecl:
		return e.unsupported(st.Span, "nested algorithm declarations are not supported")

	case ast.StmtIf:
		data, _ := e.b.Stmts.If(id)
		elseLabel, endLabel := &Label{}, &Label{}
		if err := e.emitCondJump(data.Cond, elseLabel); err != nil {
			return err
		}
		if err := e.emitStmt(data.Then); err != nil {
			return err
		}
		e.code.jump("br", endLabel)
		e.code.mark(elseLabel)
		if err := e.emitStmt(data.Else); err != nil {
			return err
		}
		e.code.mark(endLabel)
		return nil

	case ast.StmtWhile:
		data, _ := e.b.Stmts.While(id)
		start, end := &Label{}, &Label{}
		e.code.mark(start)
		if err := e.emitCondJump(data.Cond, end); err != nil {
			return err
		}
		if err := e.emitStmt(data.Body); err != nil {
			return err
		}
		e.code.jump("br", start)
		e.code.mark(end)
		return nil

	case ast.StmtDoWhile:
		data, _ := e.b.Stmts.DoWhile(id)
		start := &Label{}
		e.code.mark(start)
		if err := e.emitStmt(data.Body); err != nil {
			return err
		}
		if err := e.emitExpr(data.Cond); err != nil {
			return err
		}
		e.code.jump("brtrue", start)
		return nil

	case ast.StmtFor:
		data, _ := e.b.Stmts.For(id)
		start, end := &Label{}, &Label{}
		if err := e.emitStmt(data.Init); err != nil {
			return err
		}
		e.code.mark(start)
		if err := e.emitCondJump(data.Cond, end); err != nil {
			return err
		}
		if err := e.emitStmt(data.Body); err != nil {
			return err
		}
		if err := e.emitStmt(data.Step); err != nil {
			return err
		}
		e.code.jump("br", start)
		e.code.mark(end)
		return nil

	case ast.StmtInput:
		data, _ := e.b.Stmts.Input(id)
		t := e.typeName(e.res.TypeOf(data.Target))
		e.code.emit("call", t, "class", e.opts.RuntimeClass+"::read_"+t+"()")
		return e.emitStore(data.Target)

	case ast.StmtOutput:
		data, _ := e.b.Stmts.Output(id)
		for _, arg := range data.Args {
			if err := e.emitExpr(arg); err != nil {
				return err
			}
			e.code.emit("call", "void", "class", e.opts.RuntimeClass+"::print("+e.typeName(e.res.TypeOf(arg))+")")
		}
		e.code.emit("call", "void", "class", e.opts.RuntimeClass+"::println()")
		return nil

	case ast.StmtExpr:
		data, _ := e.b.Stmts.Expr(id)
		if _, ok := e.b.Exprs.Assign(data.Expr); ok {
			return e.emitAssign(data.Expr, false)
		}
		if err := e.emitExpr(data.Expr); err != nil {
			return err
		}
		if e.types.KindOf(e.res.TypeOf(data.Expr)) != types.KindVoid {
			e.code.emit("pop")
		}
		return nil
	}
	return e.unsupported(st.Span, "unsupported statement %s", st.Kind)
}

// emitCondJump переходит на target, когда условие ложно.
func (e *Emitter) emitCondJump(cond ast.ExprID, target *Label) error {
	if err := e.emitExpr(cond); err != nil {
		return err
	}
	e.code.emit("ldc.i4", 0)
	e.code.emit("ceq")
	e.code.jump("brtrue", target)
	return nil
}
