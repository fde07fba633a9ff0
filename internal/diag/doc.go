// Package diag defines the diagnostic model shared by all compiler phases.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string form (LEX1001, SEM3002, GEN7001...), a Message, the Primary span and
// optional Notes pointing at related declarations.
//
// Lexer and parser accumulate diagnostics through a Reporter (usually a
// BagReporter writing into a Bag) and keep going. The semantic checker and
// the code generator are fail-fast: they return the first problem as an
// *Error, which wraps the Diagnostic together with its resolved line/column
// and is also forwarded to the Reporter when one is configured.
//
// Codes are grouped into Category values mirroring the compiler's error
// taxonomy (syntax, name resolution, type, arity, structure, internal).
//
// Package diag does no rendering; see internal/diagfmt.
package diag
