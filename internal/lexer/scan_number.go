package lexer

import (
	"mnalint/internal/token"
)

// scanNumber scans any Python numeric literal: radix-prefixed integers,
// decimals with underscores, floats, exponents, and the imaginary suffix.
// The checker never interprets the value, so the scan is permissive about
// digit grouping as long as token boundaries are right.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' {
		switch b1 | 0x20 {
		case 'x':
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.consumeDigits(isHex)
			return lx.mk(token.Number, lx.cursor.SpanFrom(start))
		case 'o':
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.consumeDigits(isOct)
			return lx.mk(token.Number, lx.cursor.SpanFrom(start))
		case 'b':
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.consumeDigits(isBin)
			return lx.mk(token.Number, lx.cursor.SpanFrom(start))
		}
	}

	lx.consumeDigits(isDec)

	// Fraction: '.' followed by optional digits, or a leading '.' handled by
	// the caller's isNumberAfterDot dispatch.
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.consumeDigits(isDec)
	}

	// Exponent: e/E with optional sign, only when digits follow.
	if b := lx.cursor.Peek(); b|0x20 == 'e' {
		b1 := lx.cursor.PeekAt(1)
		b2 := lx.cursor.PeekAt(2)
		if isDec(b1) || ((b1 == '+' || b1 == '-') && isDec(b2)) {
			lx.cursor.Bump()
			if !isDec(lx.cursor.Peek()) {
				lx.cursor.Bump() // the sign
			}
			lx.consumeDigits(isDec)
		}
	}

	// Imaginary suffix.
	if b := lx.cursor.Peek(); b|0x20 == 'j' {
		lx.cursor.Bump()
	}

	return lx.mk(token.Number, lx.cursor.SpanFrom(start))
}

// consumeDigits eats digits of the given class plus '_' group separators.
func (lx *Lexer) consumeDigits(class func(byte) bool) {
	for {
		b := lx.cursor.Peek()
		if class(b) || (b == '_' && class(lx.cursor.PeekAt(1))) {
			lx.cursor.Bump()
			continue
		}
		break
	}
}
