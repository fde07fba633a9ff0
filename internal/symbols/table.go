package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"salc/internal/source"
	"salc/internal/types"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates the scope and symbol arenas of one compilation.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner
	Types   *types.Interner
}

// NewTable builds a fresh table. Nil interners are allocated.
func NewTable(h Hints, strings *source.Interner, typesIn *types.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	if typesIn == nil {
		typesIn = types.NewInterner()
	}
	return &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		Strings: strings,
		Types:   typesIn,
	}
}

// NewProgramScope creates a root scope owning the global counters.
func (t *Table) NewProgramScope(span source.Span) ScopeID {
	id := t.Scopes.New(ScopeProgram, NoScopeID, span)
	t.Scopes.Get(id).CounterOwner = id
	return id
}

// NewFunctionScope opens the scope holding fn's parameters and result.
func (t *Table) NewFunctionScope(parent ScopeID, fn SymbolID, span source.Span) ScopeID {
	id := t.Scopes.New(ScopeFunction, parent, span)
	sc := t.Scopes.Get(id)
	sc.Func = fn
	sc.CounterOwner = id
	return id
}

// NewBlockScope opens a nested block; it shares the parent's counters.
func (t *Table) NewBlockScope(parent ScopeID, span source.Span) ScopeID {
	id := t.Scopes.New(ScopeBlock, parent, span)
	if p := t.Scopes.Get(parent); p != nil {
		t.Scopes.Get(id).CounterOwner = p.CounterOwner
	}
	return id
}

// Resolve ищет имя от внутренней области к внешней, сквозь границы функций.
func (t *Table) Resolve(scope ScopeID, name source.StringID) (SymbolID, bool) {
	for sc := t.Scopes.Get(scope); sc != nil; sc = t.Scopes.Get(sc.Parent) {
		if id, ok := sc.NameIndex[name]; ok {
			return id, true
		}
	}
	return NoSymbolID, false
}

// EnclosingFunction returns the function whose body contains scope.
func (t *Table) EnclosingFunction(scope ScopeID) (SymbolID, bool) {
	for sc := t.Scopes.Get(scope); sc != nil; sc = t.Scopes.Get(sc.Parent) {
		if sc.Func.IsValid() {
			return sc.Func, true
		}
	}
	return NoSymbolID, false
}

// DeclareError reports a declaration rejected by the shadowing rule.
type DeclareError struct {
	Name     string
	Existing SymbolID
	Builtin  bool
}

func (e *DeclareError) Error() string {
	if e.Builtin {
		return fmt.Sprintf("%q is a built-in name and cannot be redeclared", e.Name)
	}
	return fmt.Sprintf("%q is already declared", e.Name)
}

// storageFor выбирает класс памяти по вложенности области.
func (t *Table) storageFor(scope ScopeID, typ types.TypeID, flags SymbolFlags) Storage {
	switch {
	case t.Types.IsFunction(typ):
		return StorageNone
	case flags&SymbolFlagParam != 0:
		return StorageParam
	}
	if _, inFunc := t.EnclosingFunction(scope); inFunc {
		return StorageLocal
	}
	if t.Scopes.Get(scope).Kind == ScopeProgram {
		return StorageGlobal
	}
	return StorageGlobalLocal
}

// shadowingAllowed: параметр может скрыть не-параметр, локальная скрывает
// глобальную. Алгоритмы объявляются только в программе и для этого правила
// считаются глобальными. Всё остальное считается повторным объявлением.
func shadowingAllowed(next Storage, existing *Symbol) bool {
	switch next {
	case StorageParam:
		return existing.Storage != StorageParam
	case StorageLocal:
		return existing.Storage.IsGlobal() || existing.Storage == StorageNone
	}
	return false
}

// Declare adds name to scope, choosing its storage class and slot.
// The returned error is a *DeclareError.
func (t *Table) Declare(scope ScopeID, name source.StringID, typ types.TypeID, span source.Span, flags SymbolFlags) (SymbolID, error) {
	sc := t.Scopes.Get(scope)
	if sc == nil {
		return NoSymbolID, fmt.Errorf("declare: invalid scope %d", scope)
	}
	storage := t.storageFor(scope, typ, flags)
	if prev, ok := t.Resolve(scope, name); ok {
		existing := t.Symbols.Get(prev)
		if !shadowingAllowed(storage, existing) {
			return NoSymbolID, &DeclareError{
				Name:     t.Strings.MustLookup(name),
				Existing: prev,
				Builtin:  existing.IsBuiltin(),
			}
		}
	}

	sym := Symbol{
		Name:    name,
		Type:    typ,
		Storage: storage,
		Flags:   flags,
		Scope:   scope,
		Span:    span,
	}
	owner := t.Scopes.Get(sc.CounterOwner)
	switch storage {
	case StorageParam:
		sym.Index = owner.ParamCount
		owner.ParamCount++
	case StorageLocal, StorageGlobal, StorageGlobalLocal:
		sym.Index = owner.VarCount
		owner.VarCount++
	}
	id := t.Symbols.New(&sym)
	sc.NameIndex[name] = id
	sc.Symbols = append(sc.Symbols, id)
	return id, nil
}

// Name returns the spelling of a symbol's name.
func (t *Table) Name(id SymbolID) string {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return ""
	}
	name, _ := t.Strings.Lookup(sym.Name)
	return name
}
