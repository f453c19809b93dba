// Package token defines lexical token kinds and trivia for the quill tokenizer.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Literal payloads (Str, Int, Dec, Bool) are decoded by the lexer;
//     Str holds string content without the surrounding quotes.
//   - Whitespace and line comments never appear in the main token stream;
//     they are Trivia attached as Leading to the next significant token
//     (trailing trivia is attached to EOF).
//   - Concatenating every Leading[i].Text followed by Text, for all tokens up to
//     and including EOF, reproduces the source exactly.
package token
