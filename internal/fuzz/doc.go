// Package fuzztests houses Go fuzz harnesses that exercise the compiler
// pipeline (source -> lexer -> parser -> checker -> MSIL) on arbitrary input.
// The goal is to guard against panics and hangs in error recovery.
//
// Семена берутся из markdown-кейсов internal/testkit/testdata.
package fuzztests
