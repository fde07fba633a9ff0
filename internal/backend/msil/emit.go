// Package msil lowers a checked program into textual MSIL for ilasm.
package msil

import (
	"fmt"
	"strings"
	"unicode"

	"salc/internal/ast"
	"salc/internal/diag"
	"salc/internal/sema"
	"salc/internal/source"
	"salc/internal/symbols"
	"salc/internal/types"
)

const (
	memberIndent = "    "
	bodyIndent   = "        "
)

// Emitter holds state for generating one assembly listing.
type Emitter struct {
	b     *ast.Builder
	res   *sema.Result
	types *types.Interner
	syms  *symbols.Table
	opts  Options

	out  []string
	code *methodCode // тело текущего метода
	fn   *sema.FuncInfo
}

// Generate renders the whole program as MSIL lines. The checker must have
// succeeded on the same builder; failures come back as *diag.Error.
func Generate(b *ast.Builder, res *sema.Result, opts Options) ([]string, error) {
	if b == nil || res == nil {
		return nil, fmt.Errorf("msil: nil program")
	}
	e := &Emitter{
		b:     b,
		res:   res,
		types: res.Types,
		syms:  res.Symbols,
		opts:  opts.withDefaults(),
	}
	if err := e.emitAssembly(); err != nil {
		return nil, err
	}
	return e.out, nil
}

// Text joins the generated lines into a single .il file body.
func Text(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}

func (e *Emitter) line(format string, args ...any) {
	e.out = append(e.out, fmt.Sprintf(format, args...))
}

func (e *Emitter) emitAssembly() error {
	e.line(".assembly extern mscorlib {}")
	e.line(".assembly %s {}", e.opts.Assembly)
	e.line(".class public %s", e.opts.ProgramClass)
	e.line("{")
	if err := e.emitGlobals(); err != nil {
		return err
	}
	for _, fi := range e.res.Funcs {
		if err := e.emitFunc(fi); err != nil {
			return err
		}
	}
	if err := e.emitMain(); err != nil {
		return err
	}
	e.line("}")
	return nil
}

func (e *Emitter) emitGlobals() error {
	for _, id := range e.res.Globals {
		sym := e.syms.Symbols.Get(id)
		if sym == nil {
			return e.internal(source.Span{}, "unknown global symbol %d", id)
		}
		e.line("%s.field public static %s %s", memberIndent, e.typeName(sym.Type), globalName(sym.Index))
	}
	if len(e.res.Globals) > 0 {
		e.line("")
	}
	return nil
}

func (e *Emitter) emitFunc(fi *sema.FuncInfo) error {
	decl, ok := e.b.Stmts.FuncDecl(fi.Decl)
	if !ok {
		return e.internal(e.stmtSpan(fi.Decl), "function declaration %d is missing", fi.Decl)
	}
	for _, p := range decl.Params {
		if p.ByRef {
			return e.unsupported(e.exprSpan(p.Name), "by-reference parameters are not supported")
		}
	}
	fnSym := e.syms.Symbols.Get(fi.Symbol)
	info, ok := e.types.FnInfo(fnSym.Type)
	if !ok {
		return e.internal(e.stmtSpan(fi.Decl), "%s has no function type", e.syms.Name(fi.Symbol))
	}

	e.line("%s.method public static %s %s(%s) cil managed", memberIndent,
		e.typeName(info.Result), ilName(e.syms.Name(fi.Symbol)), e.typeList(info.Params))
	e.line("%s{", memberIndent)
	if len(fi.Locals) > 0 {
		decls := make([]string, len(fi.Locals))
		for i, id := range fi.Locals {
			sym := e.syms.Symbols.Get(id)
			decls[i] = fmt.Sprintf("%s V_%d", e.typeName(sym.Type), sym.Index)
		}
		e.line("%s.locals init (%s)", bodyIndent, strings.Join(decls, ", "))
	}

	e.code, e.fn = &methodCode{}, fi
	defer func() { e.code, e.fn = nil, nil }()
	if err := e.emitStmt(decl.Body); err != nil {
		return err
	}
	if fi.Result.IsValid() {
		e.code.emit("ldloc", e.syms.Symbols.Get(fi.Result).Index)
	}
	e.code.emit("ret")
	if err := e.flush(e.stmtSpan(fi.Decl)); err != nil {
		return err
	}
	e.line("%s}", memberIndent)
	e.line("")
	return nil
}

func (e *Emitter) emitMain() error {
	e.line("%s.method public static void Main() cil managed", memberIndent)
	e.line("%s{", memberIndent)
	e.line("%s.entrypoint", bodyIndent)
	e.code = &methodCode{}
	defer func() { e.code = nil }()
	for _, id := range e.b.Program() {
		st := e.b.Stmts.Get(id)
		if st != nil && st.Kind == ast.StmtFuncDecl {
			continue
		}
		if err := e.emitStmt(id); err != nil {
			return err
		}
	}
	e.code.emit("ret")
	if err := e.flush(source.Span{}); err != nil {
		return err
	}
	e.line("%s}", memberIndent)
	return nil
}

func (e *Emitter) flush(sp source.Span) error {
	lines, err := e.code.finalize(bodyIndent)
	if err != nil {
		return e.internal(sp, "%v", err)
	}
	e.out = append(e.out, lines...)
	return nil
}

func (e *Emitter) typeName(id types.TypeID) string {
	if name := e.types.MSILName(id); name != "" {
		return name
	}
	return "void"
}

func (e *Emitter) typeList(ids []types.TypeID) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = e.typeName(id)
	}
	return strings.Join(names, ", ")
}

func (e *Emitter) stmtSpan(id ast.StmtID) source.Span {
	if st := e.b.Stmts.Get(id); st != nil {
		return st.Span
	}
	return source.Span{}
}

func (e *Emitter) exprSpan(id ast.ExprID) source.Span {
	if ex := e.b.Exprs.Get(id); ex != nil {
		return ex.Span
	}
	return source.Span{}
}

func (e *Emitter) unsupported(sp source.Span, format string, args ...any) error {
	return diag.NewFatal(e.opts.Files, diag.GenUnsupportedConstruct, sp, fmt.Sprintf(format, args...))
}

func (e *Emitter) internal(sp source.Span, format string, args ...any) error {
	return diag.NewFatal(e.opts.Files, diag.GenInternal, sp, fmt.Sprintf(format, args...))
}

func globalName(index uint32) string {
	return fmt.Sprintf("_gv%d", index)
}

// ilName quotes identifiers ilasm would not accept bare (Cyrillic ones included).
func ilName(name string) string {
	for i, r := range name {
		if r > unicode.MaxASCII || !(r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r))) {
			return "'" + name + "'"
		}
	}
	return name
}
