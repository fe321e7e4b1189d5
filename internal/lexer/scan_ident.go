package lexer

import (
	"golang.org/x/text/unicode/norm"

	"mnalint/internal/token"
)

// scanNameOrString scans a NAME token, or a prefixed STRING when the
// identifier turns out to be a string prefix directly followed by a quote
// (r"", b'', f"""...""", rb'...', and friends).
func (lx *Lexer) scanNameOrString() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		return lx.mk(token.Invalid, lx.cursor.SpanFrom(start))
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
		lx.cursor.Bump()
	} else {
		if !isIdentStartRune(r) {
			return lx.scanUnknown()
		}
		lx.bumpRune()
	}

	ascii := r < utf8RuneSelf
	for {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) {
			lx.cursor.Bump()
			continue
		}
		if b >= utf8RuneSelf {
			r2, sz2 := lx.peekRune()
			if sz2 > 0 && isIdentContinueRune(r2) {
				ascii = false
				lx.bumpRune()
				continue
			}
		}
		break
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	// A valid string prefix directly followed by a quote starts a string
	// literal; the prefix belongs to the STRING token.
	if b := lx.cursor.Peek(); (b == '"' || b == '\'') && isStringPrefix(text) {
		return lx.scanString(text)
	}

	tok := lx.mk(token.Name, sp)
	if !ascii {
		// Python identifiers compare after NFKC normalization.
		tok.Text = norm.NFKC.String(text)
	}
	return tok
}

// isStringPrefix reports whether text is one of Python's string literal
// prefixes (any case): r, b, u, f and the rb/br/rf/fr pairs.
func isStringPrefix(text string) bool {
	switch len(text) {
	case 1:
		switch text[0] | 0x20 {
		case 'r', 'b', 'u', 'f':
			return true
		}
	case 2:
		a, b := text[0]|0x20, text[1]|0x20
		switch {
		case a == 'r' && (b == 'b' || b == 'f'):
			return true
		case (a == 'b' || a == 'f') && b == 'r':
			return true
		}
	}
	return false
}
