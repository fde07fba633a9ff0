package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005
	LexBadChar                  Code = 1006

	// Парсерные
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectIdentifier Code = 2002
	SynExpectExpression Code = 2003
	SynExpectType       Code = 2004
	SynUnclosedParen    Code = 2005
	SynUnclosedBlock    Code = 2006
	SynBadAssignTarget  Code = 2007
	SynExpectParamMode  Code = 2008

	// Семантические: разрешение имён
	SemaInfo              Code = 3000
	SemaUnresolvedSymbol  Code = 3001
	SemaDuplicateSymbol   Code = 3002
	SemaBuiltinRedeclared Code = 3003
	SemaNotAFunction      Code = 3004
	SemaFunctionAsValue   Code = 3005

	// Семантические: типы
	SemaOperatorMismatch Code = 3010
	SemaNotConvertible   Code = 3011
	SemaUnknownType      Code = 3012
	SemaArgumentTypes    Code = 3013
	SemaVoidValue        Code = 3014

	// Семантические: арность и структура программы
	SemaArgumentCount      Code = 3020
	SemaNestedFunction     Code = 3030
	SemaFunctionRedeclared Code = 3031

	IOLoadFileError Code = 4001

	ProjInfo            Code = 5000
	ProjManifestInvalid Code = 5001
	ProjNoSources       Code = 5002

	ObsInfo    Code = 6000
	ObsTimings Code = 6001

	// Кодогенерация: нарушения, которые должен был отсечь checker
	GenInfo                 Code = 7000
	GenUnsupportedConstruct Code = 7001
	GenInternal             Code = 7002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Invalid number literal",
		LexUnterminatedChar:         "Unterminated character literal",
		LexBadChar:                  "Character literal must hold exactly one character",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectExpression:         "Expected expression",
		SynExpectType:               "Expected type name",
		SynUnclosedParen:            "Unclosed parenthesis",
		SynUnclosedBlock:            "Unclosed block",
		SynBadAssignTarget:          "Invalid assignment target",
		SynExpectParamMode:          "Expected parameter mode",
		SemaInfo:                    "Semantic information",
		SemaUnresolvedSymbol:        "Identifier not found",
		SemaDuplicateSymbol:         "Identifier already declared",
		SemaBuiltinRedeclared:       "Built-in identifier redeclared",
		SemaNotAFunction:            "Callee is not a function",
		SemaFunctionAsValue:         "Function used as a value",
		SemaOperatorMismatch:        "Operator not applicable to operand types",
		SemaNotConvertible:          "Value is not convertible to target type",
		SemaUnknownType:             "Unknown type",
		SemaArgumentTypes:           "Argument types do not match parameters",
		SemaVoidValue:               "Void value used",
		SemaArgumentCount:           "Wrong number of arguments",
		SemaNestedFunction:          "Functions are top-level only",
		SemaFunctionRedeclared:      "Function redeclared",
		IOLoadFileError:             "I/O load file error",
		ProjInfo:                    "Project information",
		ProjManifestInvalid:         "Invalid project manifest",
		ProjNoSources:               "No source files",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
		GenInfo:                     "Code generation information",
		GenUnsupportedConstruct:     "Unsupported construct",
		GenInternal:                 "Internal code generator error",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("GEN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Category groups codes by the kind of failure the compiler reports.
type Category uint8

const (
	CatUnknown Category = iota
	CatLexicalOrSyntax
	CatNameResolution
	CatType
	CatArity
	CatStructural
	CatInternal
	CatIO
	CatProject
	CatObservability
)

func (c Code) Category() Category {
	switch {
	case c >= LexInfo && c < SemaInfo:
		return CatLexicalOrSyntax
	case c >= SemaInfo && c < SemaOperatorMismatch:
		return CatNameResolution
	case c >= SemaOperatorMismatch && c < SemaArgumentCount:
		return CatType
	case c >= SemaArgumentCount && c < SemaNestedFunction:
		return CatArity
	case c >= SemaNestedFunction && c < IOLoadFileError:
		return CatStructural
	case c >= IOLoadFileError && c < ProjInfo:
		return CatIO
	case c >= ProjInfo && c < ObsInfo:
		return CatProject
	case c >= ObsInfo && c < GenInfo:
		return CatObservability
	case c >= GenInfo && c < 8000:
		return CatInternal
	}
	return CatUnknown
}

func (c Category) String() string {
	switch c {
	case CatLexicalOrSyntax:
		return "syntax"
	case CatNameResolution:
		return "name resolution"
	case CatType:
		return "type"
	case CatArity:
		return "arity"
	case CatStructural:
		return "structure"
	case CatInternal:
		return "internal"
	case CatIO:
		return "io"
	case CatProject:
		return "project"
	case CatObservability:
		return "observability"
	}
	return "unknown"
}
