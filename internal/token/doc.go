// Package token defines lexical token kinds and trivia for ss sources.
// Invariants:
//   - Token.Text is a slice of the original source, except identifiers,
//     which carry their NFC-normalised spelling.
//   - Token.Span covers the source bytes of the token exactly.
//   - Comments and whitespace are leading Trivia and never appear in the
//     main token stream.
//   - Type names (i64, ...) are identifiers; the language has no keywords.
package token
