package lexer

import (
	"mnalint/internal/token"
)

// scanString scans a string literal. prefix is the already-consumed prefix
// text ("" for a bare literal); it is ASCII, so its length in bytes equals
// the bytes consumed.
//
// Unterminated literals are a hard tokenization failure: a single-quoted
// literal reaching the line end, or a triple-quoted literal reaching EOF.
func (lx *Lexer) scanString(prefix string) token.Token {
	start := Mark(lx.cursor.Off - uint32(len(prefix))) //nolint:gosec // prefix <= 2 bytes

	quote := lx.cursor.Bump() // opening quote, ' or "
	triple := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == quote && b1 == quote {
		lx.cursor.Bump()
		lx.cursor.Bump()
		triple = true
	} else if lx.cursor.Peek() == quote {
		// Empty string: the pair of quotes is the whole literal.
		lx.cursor.Bump()
		return lx.mk(token.String, lx.cursor.SpanFrom(start))
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		if b == '\\' {
			// Escape: the next byte (including a newline) is part of the
			// literal even in raw strings, where \" still does not close it.
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			continue
		}

		if b == quote {
			if !triple {
				lx.cursor.Bump()
				return lx.mk(token.String, lx.cursor.SpanFrom(start))
			}
			if b0, b1, b2, ok := lx.cursor.Peek3(); ok && b0 == quote && b1 == quote && b2 == quote {
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.cursor.Bump()
				return lx.mk(token.String, lx.cursor.SpanFrom(start))
			}
			// Lone quote inside a triple-quoted literal.
			lx.cursor.Bump()
			continue
		}

		if b == '\n' && !triple {
			break
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	if triple {
		lx.report(CodeUnterminatedString, sp, "EOF in multi-line string")
	} else {
		lx.report(CodeUnterminatedString, sp, "EOL while scanning string literal")
	}
	lx.fail("unterminated string literal")
	return lx.mk(token.Invalid, sp)
}
