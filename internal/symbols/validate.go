package symbols

import (
	"errors"
	"fmt"
)

type slotKey struct {
	owner   ScopeID
	storage Storage
	index   uint32
}

// Validate walks internal arenas checking structural invariants. Returns nil if
// everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate() error {
	var errs []error

	for idx := 1; idx < len(t.Scopes.data); idx++ {
		id := ScopeID(idx) // #nosec G115 -- bounded by arena size
		scope := &t.Scopes.data[idx]
		if scope.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", id))
		}
		if scope.Parent.IsValid() {
			parent := t.Scopes.Get(scope.Parent)
			if parent == nil || scope.Parent == id {
				errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", id, scope.Parent))
			} else if !containsScope(parent.Children, id) {
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", id, scope.Parent))
			}
		} else if scope.Kind != ScopeProgram {
			errs = append(errs, fmt.Errorf("scope %d (%s) has no parent", id, scope.Kind))
		}
		owner := t.Scopes.Get(scope.CounterOwner)
		if owner == nil || (owner.Kind != ScopeProgram && owner.Kind != ScopeFunction) {
			errs = append(errs, fmt.Errorf("scope %d has invalid counter owner %d", id, scope.CounterOwner))
		}
		for name, symID := range scope.NameIndex {
			sym := t.Symbols.Get(symID)
			if sym == nil {
				errs = append(errs, fmt.Errorf("scope %d indexes missing symbol %d", id, symID))
				continue
			}
			if sym.Name != name || sym.Scope != id {
				errs = append(errs, fmt.Errorf("scope %d index entry for symbol %d is inconsistent", id, symID))
			}
		}
	}

	// слоты уникальны внутри пула и меньше счётчика владельца
	seen := make(map[slotKey]SymbolID)
	for idx := 1; idx < len(t.Symbols.data); idx++ {
		id := SymbolID(idx) // #nosec G115 -- bounded by arena size
		sym := &t.Symbols.data[idx]
		if !sym.HasSlot() {
			continue
		}
		sc := t.Scopes.Get(sym.Scope)
		if sc == nil {
			errs = append(errs, fmt.Errorf("symbol %d has invalid scope %d", id, sym.Scope))
			continue
		}
		owner := t.Scopes.Get(sc.CounterOwner)
		if owner == nil {
			continue
		}
		limit := owner.VarCount
		pool := sym.Storage
		if pool == StorageParam {
			limit = owner.ParamCount
		}
		if pool == StorageGlobalLocal {
			pool = StorageGlobal // один общий счётчик
		}
		if sym.Index >= limit {
			errs = append(errs, fmt.Errorf("symbol %d slot %d exceeds counter %d", id, sym.Index, limit))
		}
		key := slotKey{owner: sc.CounterOwner, storage: pool, index: sym.Index}
		if other, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("symbols %d and %d share %s slot %d", other, id, sym.Storage, sym.Index))
			continue
		}
		seen[key] = id
	}

	return errors.Join(errs...)
}

func containsScope(list []ScopeID, id ScopeID) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
