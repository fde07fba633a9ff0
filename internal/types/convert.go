package types

// widenings: допустимые неявные преобразования в порядке перебора.
var widenings = map[Kind][]Kind{
	KindInt:   {KindFloat, KindBool, KindString},
	KindFloat: {KindString},
	KindBool:  {KindString},
}

// WidenCandidates returns the types t may be implicitly converted to,
// in the order the checker tries them. Function types convert to nothing.
func (in *Interner) WidenCandidates(t TypeID) []TypeID {
	kinds := widenings[in.KindOf(t)]
	if len(kinds) == 0 {
		return nil
	}
	out := make([]TypeID, len(kinds))
	for i, k := range kinds {
		out[i] = in.Simple(k)
	}
	return out
}

// CanConvert reports whether a value of type from may be converted to to.
// Identity is not a conversion.
func (in *Interner) CanConvert(from, to TypeID) bool {
	target := in.KindOf(to)
	for _, k := range widenings[in.KindOf(from)] {
		if k == target {
			return true
		}
	}
	return false
}
