package types

import "strings"

var displayNames = [...]string{
	KindInvalid: "<invalid>",
	KindVoid:    "void",
	KindInt:     "цел",
	KindFloat:   "вещ",
	KindBool:    "лог",
	KindString:  "лит",
	KindChar:    "сим",
}

var msilNames = [...]string{
	KindVoid:   "void",
	KindInt:    "int32",
	KindFloat:  "float64",
	KindBool:   "bool",
	KindString: "string",
	KindChar:   "char",
}

// Name renders a type for diagnostics: цел, вещ, ..., алг(цел, вещ): лог.
func (in *Interner) Name(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return displayNames[KindInvalid]
	}
	if tt.Kind != KindFn {
		return displayNames[tt.Kind]
	}
	info, _ := in.FnInfo(id)
	var sb strings.Builder
	sb.WriteString("алг(")
	for i, p := range info.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(in.Name(p))
	}
	sb.WriteString(")")
	if in.KindOf(info.Result) != KindVoid {
		sb.WriteString(": ")
		sb.WriteString(in.Name(info.Result))
	}
	return sb.String()
}

// MSILName returns the IL spelling of a simple type; "" for anything else.
func (in *Interner) MSILName(id TypeID) string {
	k := in.KindOf(id)
	if !k.IsSimple() {
		return ""
	}
	return msilNames[k]
}
