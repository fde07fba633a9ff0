package msil

import (
	"strconv"
	"unicode/utf8"

	"salc/internal/ast"
	"salc/internal/symbols"
	"salc/internal/types"
)

const stringClass = "[mscorlib]System.String"

func (e *Emitter) emitExpr(id ast.ExprID) error {
	ex := e.b.Exprs.Get(id)
	if ex == nil {
		return e.internal(e.exprSpan(id), "expression %d is missing", id)
	}
	switch ex.Kind {
	case ast.ExprIdent:
		return e.emitLoad(id)
	case ast.ExprLit:
		data, _ := e.b.Exprs.Literal(id)
		return e.emitLiteral(id, data)
	case ast.ExprBinary:
		return e.emitBinary(id)
	case ast.ExprUnary:
		data, _ := e.b.Exprs.Unary(id)
		if err := e.emitExpr(data.Operand); err != nil {
			return err
		}
		if data.Op == ast.ExprUnaryNot {
			e.code.emit("ldc.i4", 0)
			e.code.emit("ceq")
		} else {
			e.code.emit("neg")
		}
		return nil
	case ast.ExprAssign:
		return e.emitAssign(id, true)
	case ast.ExprCall:
		return e.emitCall(id)
	case ast.ExprConvert:
		data, _ := e.b.Exprs.Convert(id)
		if err := e.emitExpr(data.Value); err != nil {
			return err
		}
		src := e.typeName(e.res.TypeOf(data.Value))
		dst := e.typeName(e.res.TypeOf(id))
		e.code.emit("call", dst, "class", e.opts.RuntimeClass+"::convert("+src+")")
		return nil
	}
	return e.unsupported(ex.Span, "unsupported expression %s", ex.Kind)
}

func (e *Emitter) emitLiteral(id ast.ExprID, lit *ast.ExprLiteralData) error {
	switch lit.Kind {
	case ast.ExprLitInt:
		e.code.emit("ldc.i4", lit.Value)
	case ast.ExprLitFloat:
		e.code.emit("ldc.r8", lit.Value)
	case ast.ExprLitBool:
		if lit.Value == "да" {
			e.code.emit("ldc.i4", 1)
		} else {
			e.code.emit("ldc.i4", 0)
		}
	case ast.ExprLitChar:
		r, _ := utf8.DecodeRuneInString(lit.Value)
		e.code.emit("ldc.i4", int(r))
	case ast.ExprLitString:
		e.code.emit("ldstr", strconv.Quote(lit.Value))
	default:
		return e.unsupported(e.exprSpan(id), "unsupported literal kind %s", lit.Kind)
	}
	return nil
}

func (e *Emitter) symbol(id ast.ExprID) (*symbols.Symbol, error) {
	sym, ok := e.res.SymbolOf(id)
	if !ok || sym == nil {
		return nil, e.internal(e.exprSpan(id), "identifier %q was not resolved", e.b.Name(id))
	}
	return sym, nil
}

func (e *Emitter) emitLoad(id ast.ExprID) error {
	sym, err := e.symbol(id)
	if err != nil {
		return err
	}
	switch sym.Storage {
	case symbols.StorageLocal:
		e.code.emit("ldloc", sym.Index)
	case symbols.StorageParam:
		e.code.emit("ldarg", sym.Index)
	case symbols.StorageGlobal, symbols.StorageGlobalLocal:
		e.code.emit("ldsfld", e.typeName(sym.Type), e.opts.ProgramClass+"::"+globalName(sym.Index))
	default:
		return e.unsupported(e.exprSpan(id), "%q cannot be used as a value", e.b.Name(id))
	}
	return nil
}

func (e *Emitter) emitStore(id ast.ExprID) error {
	sym, err := e.symbol(id)
	if err != nil {
		return err
	}
	switch sym.Storage {
	case symbols.StorageLocal:
		e.code.emit("stloc", sym.Index)
	case symbols.StorageParam:
		e.code.emit("starg", sym.Index)
	case symbols.StorageGlobal, symbols.StorageGlobalLocal:
		e.code.emit("stsfld", e.typeName(sym.Type), e.opts.ProgramClass+"::"+globalName(sym.Index))
	default:
		return e.unsupported(e.exprSpan(id), "cannot assign to %q", e.b.Name(id))
	}
	return nil
}

// emitAssign keeps a copy of the value on the stack when asValue is set.
func (e *Emitter) emitAssign(id ast.ExprID, asValue bool) error {
	data, _ := e.b.Exprs.Assign(id)
	if err := e.emitExpr(data.Value); err != nil {
		return err
	}
	if asValue {
		e.code.emit("dup")
	}
	return e.emitStore(data.Target)
}

func (e *Emitter) emitCall(id ast.ExprID) error {
	data, _ := e.b.Exprs.Call(id)
	for _, arg := range data.Args {
		if err := e.emitExpr(arg); err != nil {
			return err
		}
	}
	sym, err := e.symbol(data.Callee)
	if err != nil {
		return err
	}
	info, ok := e.types.FnInfo(sym.Type)
	if !ok {
		return e.internal(e.exprSpan(id), "%q is not an algorithm", e.b.Name(data.Callee))
	}
	class := e.opts.ProgramClass
	if sym.IsBuiltin() {
		class = e.opts.RuntimeClass
	}
	e.code.emit("call", e.typeName(info.Result), "class",
		class+"::"+ilName(e.b.Name(data.Callee))+"("+e.typeList(info.Params)+")")
	return nil
}

func (e *Emitter) emitBinary(id ast.ExprID) error {
	data, _ := e.b.Exprs.Binary(id)
	if err := e.emitExpr(data.Left); err != nil {
		return err
	}
	if err := e.emitExpr(data.Right); err != nil {
		return err
	}
	// после вставки Convert оба операнда одного типа
	isString := e.types.KindOf(e.res.TypeOf(data.Left)) == types.KindString

	switch data.Op {
	case ast.ExprBinaryAdd:
		if isString {
			e.code.emit("call", "string", stringClass+"::Concat(string, string)")
		} else {
			e.code.emit("add")
		}
	case ast.ExprBinarySub:
		e.code.emit("sub")
	case ast.ExprBinaryMul:
		e.code.emit("mul")
	case ast.ExprBinaryDiv:
		e.code.emit("div")
	case ast.ExprBinaryAnd:
		e.code.emit("and")
	case ast.ExprBinaryOr:
		e.code.emit("or")
	case ast.ExprBinaryEq:
		if isString {
			e.code.emit("call", "bool", stringClass+"::op_Equality(string, string)")
		} else {
			e.code.emit("ceq")
		}
	case ast.ExprBinaryGreater, ast.ExprBinaryLess, ast.ExprBinaryGreaterEq, ast.ExprBinaryLessEq:
		if isString {
			e.code.emit("call", "int32", stringClass+"::Compare(string, string)")
			e.code.emit("ldc.i4", 0)
		}
		e.emitOrdering(data.Op)
	default:
		return e.unsupported(e.exprSpan(id), "unsupported operator %s", data.Op)
	}
	return nil
}

// emitOrdering: >= и <= выражаются через отрицание противоположного сравнения.
func (e *Emitter) emitOrdering(op ast.ExprBinaryOp) {
	switch op {
	case ast.ExprBinaryGreater:
		e.code.emit("cgt")
	case ast.ExprBinaryLess:
		e.code.emit("clt")
	case ast.ExprBinaryGreaterEq:
		e.code.emit("clt")
		e.code.emit("ldc.i4", 0)
		e.code.emit("ceq")
	case ast.ExprBinaryLessEq:
		e.code.emit("cgt")
		e.code.emit("ldc.i4", 0)
		e.code.emit("ceq")
	}
}
