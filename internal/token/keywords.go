package token

var keywords = map[string]Kind{
	"алг":    KwAlg,
	"арг":    KwArg,
	"рез":    KwRes,
	"нач":    KwBegin,
	"кон":    KwEnd,
	"если":   KwIf,
	"то":     KwThen,
	"иначе":  KwElse,
	"все":    KwFi,
	"нц":     KwLoop,
	"пока":   KwWhile,
	"кц":     KwEndLoop,
	"кц_при": KwUntil,
	"для":    KwFor,
	"от":     KwFrom,
	"до":     KwTo,
	"ввод":   KwInput,
	"вывод":  KwOutput,
	"да":     KwTrue,
	"нет":    KwFalse,
	"и":      KwAnd,
	"или":    KwOr,
	"не":     KwNot,
}

// LookupKeyword возвращает тип ключевого слова.
// Регистр важен: "Если" остаётся идентификатором.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Spelling returns the source spelling of a keyword kind.
func Spelling(k Kind) string {
	for word, kind := range keywords {
		if kind == k {
			return word
		}
	}
	return ""
}
