// Package token defines lexical token kinds of the algorithmic language.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Keywords are Cyrillic and case-sensitive; "кц_при" is one token.
//   - Type names (цел, вещ, лог, лит, сим) are identifiers.
//     They are recognized by the semantic layer, not the lexer.
//   - Comments never reach the token stream.
package token
