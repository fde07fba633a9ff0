package symbols

import (
	"errors"
	"testing"

	"salc/internal/source"
)

func declare(t *testing.T, tbl *Table, scope ScopeID, name string, flags SymbolFlags) *Symbol {
	t.Helper()
	id, err := tbl.Declare(scope, tbl.Strings.Intern(name), tbl.Types.Builtins().Int, source.Span{}, flags)
	if err != nil {
		t.Fatalf("declare %s: %v", name, err)
	}
	return tbl.Symbols.Get(id)
}

func TestStorageClasses(t *testing.T) {
	tbl := NewTable(Hints{}, nil, nil)
	prog := tbl.NewProgramScope(source.Span{})
	g := declare(t, tbl, prog, "g", 0)
	blk := tbl.NewBlockScope(prog, source.Span{})
	gl := declare(t, tbl, blk, "gl", 0)

	fnType := tbl.Types.RegisterFn(nil, tbl.Types.Builtins().Void)
	fnID, err := tbl.Declare(prog, tbl.Strings.Intern("f"), fnType, source.Span{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	fscope := tbl.NewFunctionScope(prog, fnID, source.Span{})
	p0 := declare(t, tbl, fscope, "a", SymbolFlagParam)
	p1 := declare(t, tbl, fscope, "b", SymbolFlagParam)
	body := tbl.NewBlockScope(fscope, source.Span{})
	l0 := declare(t, tbl, body, "x", 0)
	inner := tbl.NewBlockScope(body, source.Span{})
	l1 := declare(t, tbl, inner, "y", 0)

	checks := []struct {
		sym     *Symbol
		storage Storage
		index   uint32
	}{
		{g, StorageGlobal, 0},
		{gl, StorageGlobalLocal, 1},
		{p0, StorageParam, 0},
		{p1, StorageParam, 1},
		{l0, StorageLocal, 0},
		{l1, StorageLocal, 1},
	}
	for _, c := range checks {
		if c.sym.Storage != c.storage || c.sym.Index != c.index {
			t.Errorf("%s: got %s/%d, want %s/%d", tbl.Strings.MustLookup(c.sym.Name), c.sym.Storage, c.sym.Index, c.storage, c.index)
		}
	}
	if tbl.Symbols.Get(fnID).HasSlot() {
		t.Fatalf("function symbols carry no slot")
	}
	if fn, ok := tbl.EnclosingFunction(inner); !ok || fn != fnID {
		t.Fatalf("EnclosingFunction = %d, %v", fn, ok)
	}
	if _, ok := tbl.EnclosingFunction(blk); ok {
		t.Fatalf("program block has no enclosing function")
	}
	if err := tbl.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestResolveThroughFunctionBoundary(t *testing.T) {
	tbl := NewTable(Hints{}, nil, nil)
	prog := tbl.NewProgramScope(source.Span{})
	declare(t, tbl, prog, "g", 0)
	fnType := tbl.Types.RegisterFn(nil, tbl.Types.Builtins().Void)
	fnID, _ := tbl.Declare(prog, tbl.Strings.Intern("f"), fnType, source.Span{}, 0)
	body := tbl.NewBlockScope(tbl.NewFunctionScope(prog, fnID, source.Span{}), source.Span{})

	id, ok := tbl.Resolve(body, tbl.Strings.Intern("g"))
	if !ok || tbl.Name(id) != "g" {
		t.Fatalf("global must be visible inside functions")
	}
	if _, ok := tbl.Resolve(body, tbl.Strings.Intern("nope")); ok {
		t.Fatalf("unknown name resolved")
	}
	// имя из функции не видно снаружи
	declare(t, tbl, body, "x", 0)
	if _, ok := tbl.Resolve(prog, tbl.Strings.Intern("x")); ok {
		t.Fatalf("local leaked into program scope")
	}
}

func TestShadowingRule(t *testing.T) {
	tbl := NewTable(Hints{}, nil, nil)
	prog := tbl.NewProgramScope(source.Span{})
	declare(t, tbl, prog, "g", 0)
	blk := tbl.NewBlockScope(prog, source.Span{})
	declare(t, tbl, blk, "gl", 0)
	fnType := tbl.Types.RegisterFn(nil, tbl.Types.Builtins().Void)
	fnID, _ := tbl.Declare(blk, tbl.Strings.Intern("f"), fnType, source.Span{}, 0)
	fscope := tbl.NewFunctionScope(blk, fnID, source.Span{})

	// параметр скрывает глобальную, локальная скрывает глобальную из блока
	declare(t, tbl, fscope, "g", SymbolFlagParam)
	body := tbl.NewBlockScope(fscope, source.Span{})
	declare(t, tbl, body, "gl", 0)

	rejected := []struct {
		scope ScopeID
		name  string
		flags SymbolFlags
	}{
		{body, "g", 0},                 // локальная поверх параметра
		{fscope, "g", SymbolFlagParam}, // параметр поверх параметра
		{body, "gl", 0},                // повтор в той же области
		{prog, "g", 0},                 // глобальная поверх глобальной
		{blk, "g", 0},                  // глобальная блока поверх глобальной
		{blk, "f", 0},                  // глобальная блока поверх функции
	}
	for _, r := range rejected {
		_, err := tbl.Declare(r.scope, tbl.Strings.Intern(r.name), tbl.Types.Builtins().Int, source.Span{}, r.flags)
		var de *DeclareError
		if !errors.As(err, &de) {
			t.Errorf("declare %s in scope %d: want DeclareError, got %v", r.name, r.scope, err)
		}
	}
	if err := tbl.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLocalShadowsAlgorithm(t *testing.T) {
	tbl := NewTable(Hints{}, nil, nil)
	prog := tbl.NewProgramScope(source.Span{})
	fnType := tbl.Types.RegisterFn(nil, tbl.Types.Builtins().Void)
	fID, _ := tbl.Declare(prog, tbl.Strings.Intern("f"), fnType, source.Span{}, 0)
	gID, _ := tbl.Declare(prog, tbl.Strings.Intern("g"), fnType, source.Span{}, 0)
	body := tbl.NewBlockScope(tbl.NewFunctionScope(prog, gID, source.Span{}), source.Span{})

	local := declare(t, tbl, body, "f", 0)
	if local.Storage != StorageLocal {
		t.Fatalf("storage = %s", local.Storage)
	}
	id, _ := tbl.Resolve(body, tbl.Strings.Intern("f"))
	if id == fID {
		t.Fatalf("f must resolve to the local inside g")
	}
	if id, _ := tbl.Resolve(prog, tbl.Strings.Intern("f")); id != fID {
		t.Fatalf("f must stay an algorithm in the program scope")
	}
}

func TestBuiltinRedeclaration(t *testing.T) {
	tbl := NewTable(Hints{}, nil, nil)
	prog := tbl.NewProgramScope(source.Span{})
	fnType := tbl.Types.RegisterFn(nil, tbl.Types.Builtins().Void)
	if _, err := tbl.Declare(prog, tbl.Strings.Intern("вывести"), fnType, source.Span{}, SymbolFlagBuiltin); err != nil {
		t.Fatal(err)
	}
	_, err := tbl.Declare(prog, tbl.Strings.Intern("вывести"), fnType, source.Span{}, 0)
	var de *DeclareError
	if !errors.As(err, &de) || !de.Builtin {
		t.Fatalf("want built-in DeclareError, got %v", err)
	}
}

func TestValidateDetectsSlotClash(t *testing.T) {
	tbl := NewTable(Hints{}, nil, nil)
	prog := tbl.NewProgramScope(source.Span{})
	a := declare(t, tbl, prog, "a", 0)
	b := declare(t, tbl, prog, "b", 0)
	b.Index = a.Index
	if err := tbl.Validate(); err == nil {
		t.Fatalf("expected slot clash to be reported")
	}
}
