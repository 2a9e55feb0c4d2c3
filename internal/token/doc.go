// Package token defines lexical token kinds for Zephyr source.
// Invariants:
//   - Token.Text is the source text of the token (identifiers NFC-normalized).
//   - Token.Span covers the token bytes exactly.
//   - Builtin type names (int, double, string, ...) are identifiers; the binder
//     recognizes them, not the lexer.
//   - Comments are skipped by the lexer and never reach the token stream.
package token
