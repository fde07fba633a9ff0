package symbols

import (
	"salc/internal/source"
	"salc/internal/types"
)

// Storage is the storage class of a variable.
type Storage uint8

const (
	StorageNone        Storage = iota // функции: слота нет
	StorageGlobal                     // переменная программы
	StorageGlobalLocal                // блок вне функций, делит счётчик с глобальными
	StorageParam
	StorageLocal
)

func (s Storage) String() string {
	switch s {
	case StorageGlobal:
		return "global"
	case StorageGlobalLocal:
		return "global-local"
	case StorageParam:
		return "param"
	case StorageLocal:
		return "local"
	default:
		return "none"
	}
}

// IsGlobal reports whether the slot lives in the program's static fields.
func (s Storage) IsGlobal() bool {
	return s == StorageGlobal || s == StorageGlobalLocal
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint8

const (
	SymbolFlagParam SymbolFlags = 1 << iota
	SymbolFlagBuiltin
)

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 2)
	if f&SymbolFlagParam != 0 {
		labels = append(labels, "param")
	}
	if f&SymbolFlagBuiltin != 0 {
		labels = append(labels, "builtin")
	}
	return labels
}

// Symbol describes a declared name.
type Symbol struct {
	Name    source.StringID
	Type    types.TypeID
	Storage Storage
	Index   uint32 // слот внутри пула Storage; для StorageNone не используется
	Flags   SymbolFlags
	Scope   ScopeID
	Span    source.Span
}

func (s *Symbol) IsBuiltin() bool { return s.Flags&SymbolFlagBuiltin != 0 }

func (s *Symbol) HasSlot() bool { return s.Storage != StorageNone }
