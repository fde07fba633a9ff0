package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitive types.
type Builtins struct {
	Void   TypeID
	Int    TypeID
	Float  TypeID
	Bool   TypeID
	String TypeID
	Char   TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Simple types are seeded in a fixed order, so their IDs are identical in
// every interner.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	fns      []FnInfo
	builtins Builtins
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[Type]TypeID, 16),
	}
	in.types = append(in.types, Type{Kind: KindInvalid}) // 0: NoTypeID
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Int = in.Intern(Type{Kind: KindInt})
	in.builtins.Float = in.Intern(Type{Kind: KindFloat})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Char = in.Intern(Type{Kind: KindChar})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Simple returns the TypeID of a simple kind.
func (in *Interner) Simple(k Kind) TypeID {
	if !k.IsSimple() {
		return NoTypeID
	}
	return in.Intern(Type{Kind: k})
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// KindOf returns KindInvalid for unknown IDs.
func (in *Interner) KindOf(id TypeID) Kind {
	tt, _ := in.Lookup(id)
	return tt.Kind
}

func (in *Interner) IsSimple(id TypeID) bool {
	return in.KindOf(id).IsSimple()
}

func (in *Interner) IsFunction(id TypeID) bool {
	return in.KindOf(id) == KindFn
}

// Equal сравнивает структурно: простые типы по тегу, функции по
// результату и попарно по параметрам.
func (in *Interner) Equal(a, b TypeID) bool {
	if a == b {
		return true
	}
	ta, okA := in.Lookup(a)
	tb, okB := in.Lookup(b)
	if !okA || !okB || ta.Kind != tb.Kind {
		return false
	}
	if ta.Kind != KindFn {
		return true
	}
	fa, _ := in.FnInfo(a)
	fb, _ := in.FnInfo(b)
	if !in.Equal(fa.Result, fb.Result) || len(fa.Params) != len(fb.Params) {
		return false
	}
	for i := range fa.Params {
		if !in.Equal(fa.Params[i], fb.Params[i]) {
			return false
		}
	}
	return true
}
