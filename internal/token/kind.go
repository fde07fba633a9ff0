package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token (type names included).
	Ident
	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a numeric literal with a decimal point.
	FloatLit
	// StringLit represents a double-quoted string literal.
	StringLit
	// CharLit represents a single-quoted character literal.
	CharLit

	KwAlg     // алг
	KwArg     // арг
	KwRes     // рез
	KwBegin   // нач
	KwEnd     // кон
	KwIf      // если
	KwThen    // то
	KwElse    // иначе
	KwFi      // все
	KwLoop    // нц
	KwWhile   // пока
	KwEndLoop // кц
	KwUntil   // кц_при
	KwFor     // для
	KwFrom    // от
	KwTo      // до
	KwInput   // ввод
	KwOutput  // вывод
	KwTrue    // да
	KwFalse   // нет
	KwAnd     // и
	KwOr      // или
	KwNot     // не

	Plus        // +
	Minus       // -
	Star        // *
	Slash       // /
	Eq          // =
	Lt          // <
	LtEq        // <=
	Gt          // >
	GtEq        // >=
	ColonAssign // :=
	Comma       // ,
	Semicolon   // ;
	LParen      // (
	RParen      // )
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	IntLit:      "IntLit",
	FloatLit:    "FloatLit",
	StringLit:   "StringLit",
	CharLit:     "CharLit",
	KwAlg:       "KwAlg",
	KwArg:       "KwArg",
	KwRes:       "KwRes",
	KwBegin:     "KwBegin",
	KwEnd:       "KwEnd",
	KwIf:        "KwIf",
	KwThen:      "KwThen",
	KwElse:      "KwElse",
	KwFi:        "KwFi",
	KwLoop:      "KwLoop",
	KwWhile:     "KwWhile",
	KwEndLoop:   "KwEndLoop",
	KwUntil:     "KwUntil",
	KwFor:       "KwFor",
	KwFrom:      "KwFrom",
	KwTo:        "KwTo",
	KwInput:     "KwInput",
	KwOutput:    "KwOutput",
	KwTrue:      "KwTrue",
	KwFalse:     "KwFalse",
	KwAnd:       "KwAnd",
	KwOr:        "KwOr",
	KwNot:       "KwNot",
	Plus:        "Plus",
	Minus:       "Minus",
	Star:        "Star",
	Slash:       "Slash",
	Eq:          "Eq",
	Lt:          "Lt",
	LtEq:        "LtEq",
	Gt:          "Gt",
	GtEq:        "GtEq",
	ColonAssign: "ColonAssign",
	Comma:       "Comma",
	Semicolon:   "Semicolon",
	LParen:      "LParen",
	RParen:      "RParen",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is one of the reserved words.
func (k Kind) IsKeyword() bool {
	return k >= KwAlg && k <= KwNot
}
