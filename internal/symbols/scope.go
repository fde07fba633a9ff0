package symbols

import (
	"salc/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeProgram            // глобальная область программы
	ScopeFunction           // параметры и результат алгоритма
	ScopeBlock              // тело, ветки, циклы
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeProgram:
		return "program"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope. Slot counters are only meaningful on the
// counter owner: the nearest function scope, or the program scope.
type Scope struct {
	Kind         ScopeKind
	Parent       ScopeID
	Func         SymbolID // set on function scopes
	CounterOwner ScopeID
	Span         source.Span
	NameIndex    map[source.StringID]SymbolID
	Symbols      []SymbolID
	Children     []ScopeID

	VarCount   uint32
	ParamCount uint32
}
