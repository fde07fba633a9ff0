package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindInt
	KindFloat
	KindBool
	KindString
	KindChar
	KindFn
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindChar:
		return "char"
	case KindFn:
		return "fn"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsSimple reports whether the kind is a primitive (void included).
func (k Kind) IsSimple() bool {
	return k >= KindVoid && k <= KindChar
}

// Type is a compact descriptor. Payload indexes FnInfo for KindFn.
type Type struct {
	Kind    Kind
	Payload uint32
}

// sourceNames: имена простых типов в исходном тексте.
var sourceNames = map[string]Kind{
	"цел": KindInt,
	"вещ": KindFloat,
	"лог": KindBool,
	"лит": KindString,
	"сим": KindChar,
}

// KindByName maps a type name written in source to its kind.
// void has no spelling: a procedure without "рез" returns void.
func KindByName(name string) (Kind, bool) {
	k, ok := sourceNames[name]
	return k, ok
}
