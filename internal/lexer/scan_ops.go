package lexer

import (
	"mnalint/internal/token"
)

// scanOperatorOrPunct scans operators and punctuation with greedy matching:
// 3-byte forms first, then 2-byte, then single bytes. Brackets update the
// open-bracket stack; a closer that does not match its opener is a hard
// tokenization failure.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func() token.Token {
		return lx.mk(token.Op, lx.cursor.SpanFrom(start))
	}

	switch {
	case lx.try3('*', '*', '='), lx.try3('/', '/', '='),
		lx.try3('>', '>', '='), lx.try3('<', '<', '='),
		lx.try3('.', '.', '.'):
		return emit()
	case lx.try2('*', '*'), lx.try2('/', '/'),
		lx.try2('>', '>'), lx.try2('<', '<'),
		lx.try2('<', '='), lx.try2('>', '='),
		lx.try2('=', '='), lx.try2('!', '='),
		lx.try2('-', '>'), lx.try2(':', '='),
		lx.try2('+', '='), lx.try2('-', '='),
		lx.try2('*', '='), lx.try2('/', '='),
		lx.try2('%', '='), lx.try2('@', '='),
		lx.try2('&', '='), lx.try2('|', '='),
		lx.try2('^', '='):
		return emit()
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '(', '[', '{':
		lx.brackets = append(lx.brackets, ch)
		return emit()
	case ')', ']', '}':
		lx.closeBracket(ch)
		return emit()
	case '+', '-', '*', '/', '%', '@', '&', '|', '^', '~',
		'<', '>', '=', ',', ':', '.', ';':
		return emit()
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.report(CodeUnknownChar, sp, "unexpected character "+lx.text(sp))
		return lx.mk(token.Invalid, sp)
	}
}

var bracketPairs = map[byte]byte{')': '(', ']': '[', '}': '{'}

func (lx *Lexer) closeBracket(ch byte) {
	want := bracketPairs[ch]
	if n := len(lx.brackets); n > 0 && lx.brackets[n-1] == want {
		lx.brackets = lx.brackets[:n-1]
		return
	}
	sp := lx.cursor.SpanFrom(Mark(lx.cursor.Off - 1))
	lx.report(CodeUnbalancedBracket, sp, "unmatched "+string(ch))
	lx.fail("mismatched brackets")
}
