package sema

import (
	_ "embed"
	"fmt"
	"sync"

	"salc/internal/ast"
	"salc/internal/diag"
	"salc/internal/lexer"
	"salc/internal/parser"
	"salc/internal/source"
	"salc/internal/symbols"
	"salc/internal/types"
)

//go:embed prelude.sal
var preludeSource []byte

// PreludeEntry is a frozen built-in algorithm. Kinds do not depend on any
// particular interner, so entries can be installed into every compilation.
type PreludeEntry struct {
	Name   string
	Params []types.Kind
	Result types.Kind
}

var (
	preludeOnce    sync.Once
	preludeEntries []PreludeEntry
	errPrelude     error
)

// Prelude parses and checks the built-in source once per process.
func Prelude() ([]PreludeEntry, error) {
	preludeOnce.Do(func() {
		preludeEntries, errPrelude = loadPrelude()
	})
	return preludeEntries, errPrelude
}

func loadPrelude() ([]PreludeEntry, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<prelude>", preludeSource))
	bag := diag.NewBag(8)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(file, lexer.New(file, lexer.Options{Reporter: rep}), b, parser.Options{Reporter: rep})
	if first, ok := bag.First(); ok {
		return nil, fmt.Errorf("prelude: %s", first.Message)
	}
	checked, err := Check(b, res.Root, Options{Files: fs, NoPrelude: true})
	if err != nil {
		return nil, fmt.Errorf("prelude: %w", err)
	}
	entries := make([]PreludeEntry, 0, len(checked.Funcs))
	for _, fi := range checked.Funcs {
		sym := checked.Symbols.Symbols.Get(fi.Symbol)
		info, _ := checked.Types.FnInfo(sym.Type)
		e := PreludeEntry{
			Name:   checked.Symbols.Name(fi.Symbol),
			Result: checked.Types.KindOf(info.Result),
		}
		for _, p := range info.Params {
			e.Params = append(e.Params, checked.Types.KindOf(p))
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// installPrelude declares every built-in algorithm in the program scope.
func installPrelude(table *symbols.Table, program symbols.ScopeID) error {
	entries, err := Prelude()
	if err != nil {
		return err
	}
	for _, e := range entries {
		params := make([]types.TypeID, len(e.Params))
		for i, k := range e.Params {
			params[i] = table.Types.Simple(k)
		}
		fn := table.Types.RegisterFn(params, table.Types.Simple(e.Result))
		if _, err := table.Declare(program, table.Strings.Intern(e.Name), fn, source.Span{}, symbols.SymbolFlagBuiltin); err != nil {
			return fmt.Errorf("prelude: %w", err)
		}
	}
	return nil
}
