package sema

import (
	"errors"
	"fmt"
	"strings"

	"salc/internal/ast"
	"salc/internal/diag"
	"salc/internal/source"
	"salc/internal/symbols"
	"salc/internal/types"
)

// Options configure a semantic pass over one program.
type Options struct {
	Reporter diag.Reporter
	// Files resolves spans into line/column for the returned *diag.Error.
	Files   *source.FileSet
	Types   *types.Interner
	Symbols *symbols.Table
	// NoPrelude skips installing the built-in algorithms.
	NoPrelude bool
}

// FuncInfo collects what the code generator needs about one algorithm.
type FuncInfo struct {
	Decl   ast.StmtID
	Symbol symbols.SymbolID
	Params []symbols.SymbolID
	Result symbols.SymbolID // NoSymbolID for procedures
	// Locals in slot order; the result parameter is Locals[0] when present.
	Locals []symbols.SymbolID
}

// Result stores semantic artefacts produced by the checker.
type Result struct {
	Types       *types.Interner
	Symbols     *symbols.Table
	Program     symbols.ScopeID
	ExprTypes   map[ast.ExprID]types.TypeID
	ExprSymbols map[ast.ExprID]symbols.SymbolID
	Funcs       []*FuncInfo
	Globals     []symbols.SymbolID // in slot order

	funcIndex map[ast.StmtID]*FuncInfo
}

// TypeOf returns the resolved type of an expression.
func (r *Result) TypeOf(id ast.ExprID) types.TypeID {
	return r.ExprTypes[id]
}

// SymbolOf returns the symbol an identifier resolved to.
func (r *Result) SymbolOf(id ast.ExprID) (*symbols.Symbol, bool) {
	symID, ok := r.ExprSymbols[id]
	if !ok {
		return nil, false
	}
	return r.Symbols.Symbols.Get(symID), true
}

// Func returns the info of a checked function declaration.
func (r *Result) Func(decl ast.StmtID) (*FuncInfo, bool) {
	fi, ok := r.funcIndex[decl]
	return fi, ok
}

// Check resolves names, computes types and inserts implicit conversions.
// It stops at the first error; the returned error is a *diag.Error which is
// also reported to opts.Reporter.
func Check(builder *ast.Builder, root ast.StmtID, opts Options) (*Result, error) {
	if opts.Types == nil {
		opts.Types = types.NewInterner()
	}
	if opts.Symbols == nil {
		opts.Symbols = symbols.NewTable(symbols.Hints{}, builder.Strings, opts.Types)
	}
	res := &Result{
		Types:       opts.Types,
		Symbols:     opts.Symbols,
		ExprTypes:   make(map[ast.ExprID]types.TypeID),
		ExprSymbols: make(map[ast.ExprID]symbols.SymbolID),
		funcIndex:   make(map[ast.StmtID]*FuncInfo),
	}
	rootStmt := builder.Stmts.Get(root)
	if rootStmt == nil {
		return res, fmt.Errorf("sema: invalid root statement %d", root)
	}
	res.Program = opts.Symbols.NewProgramScope(rootStmt.Span)

	c := checker{
		b:        builder,
		fs:       opts.Files,
		reporter: opts.Reporter,
		types:    opts.Types,
		table:    opts.Symbols,
		res:      res,
	}
	if !opts.NoPrelude {
		if err := installPrelude(c.table, res.Program); err != nil {
			return res, err
		}
	}
	if err := c.checkProgram(root); err != nil {
		return res, err
	}
	return res, nil
}

type checker struct {
	b        *ast.Builder
	fs       *source.FileSet
	reporter diag.Reporter
	types    *types.Interner
	table    *symbols.Table
	res      *Result
	fn       *FuncInfo // текущая функция, nil на верхнем уровне
}

// fail создаёт фатальную ошибку и дублирует её в Reporter.
func (c *checker) fail(code diag.Code, sp source.Span, msg string, notes ...diag.Note) error {
	e := diag.NewFatal(c.fs, code, sp, msg)
	e.Notes = append(e.Notes, notes...)
	if c.reporter != nil {
		c.reporter.Report(code, diag.SevError, sp, msg, e.Notes)
	}
	return e
}

func (c *checker) span(id ast.ExprID) source.Span {
	if e := c.b.Exprs.Get(id); e != nil {
		return e.Span
	}
	return source.Span{}
}

func (c *checker) typeName(t types.TypeID) string {
	return c.types.Name(t)
}

// typeList renders "(цел, вещ)".
func (c *checker) typeList(ts []types.TypeID) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = c.typeName(t)
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// resolveType maps a written type name onto a simple type.
func (c *checker) resolveType(tn ast.TypeName) (types.TypeID, error) {
	name := c.b.Strings.MustLookup(tn.Name)
	kind, ok := types.KindByName(name)
	if !ok {
		return types.NoTypeID, c.fail(diag.SemaUnknownType, tn.Span, fmt.Sprintf("unknown type %q", name))
	}
	return c.types.Simple(kind), nil
}

// declare объявляет идентификатор-узел nameExpr и аннотирует его.
func (c *checker) declare(scope symbols.ScopeID, nameExpr ast.ExprID, typ types.TypeID, flags symbols.SymbolFlags) (symbols.SymbolID, error) {
	ident, ok := c.b.Exprs.Ident(nameExpr)
	if !ok {
		return symbols.NoSymbolID, c.fail(diag.SynExpectIdentifier, c.span(nameExpr), "declaration target is not an identifier")
	}
	sp := c.span(nameExpr)
	id, err := c.table.Declare(scope, ident.Name, typ, sp, flags)
	if err != nil {
		var de *symbols.DeclareError
		if !errors.As(err, &de) {
			return symbols.NoSymbolID, err
		}
		if de.Builtin {
			return symbols.NoSymbolID, c.fail(diag.SemaBuiltinRedeclared, sp, de.Error())
		}
		prev := c.table.Symbols.Get(de.Existing)
		return symbols.NoSymbolID, c.fail(diag.SemaDuplicateSymbol, sp, de.Error(),
			diag.Note{Span: prev.Span, Msg: "previous declaration"})
	}
	c.res.ExprSymbols[nameExpr] = id
	c.res.ExprTypes[nameExpr] = typ

	sym := c.table.Symbols.Get(id)
	switch {
	case sym.Storage == symbols.StorageLocal && c.fn != nil:
		c.fn.Locals = append(c.fn.Locals, id)
	case sym.Storage.IsGlobal():
		c.res.Globals = append(c.res.Globals, id)
	}
	return id, nil
}
