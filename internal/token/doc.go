// Package token defines the lexical token model for Python source.
// Invariants:
//   - Token.Text is the source slice covered by Token.Span, except non-ASCII
//     names, whose Text is NFKC-normalized for comparison.
//   - Tokens are produced in source order and never mutated after creation.
//   - Positions use 1-based lines and 0-based columns, the convention of
//     Python's tokenize module.
//   - Indent/Dedent/NL/Newline tokens carry structure, not text worth
//     matching; the analyzer treats them as insignificant.
package token
