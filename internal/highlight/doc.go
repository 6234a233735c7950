// Package highlight provides cosmetic syntax highlighting
// for tutorial code samples.
//
// Highlighting happens in two passes.
// A [Lexer] splits the original source text into classified tokens,
// and a [Highlighter] renders those tokens into HTML nodes
// using a [Classes] table.
// Lexers only ever look at the plain source text,
// so no pattern can match markup produced by another.
package highlight
