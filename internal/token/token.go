package token

import (
	"mnalint/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind  Kind
	Text  string
	Span  source.Span
	Start source.Pos
	End   source.Pos
}

// IsInsignificant reports whether the token carries no spacing-relevant
// content: physical/logical line ends, indentation markers, and comments.
func (t Token) IsInsignificant() bool {
	switch t.Kind {
	case NL, Newline, Indent, Dedent, Comment:
		return true
	default:
		return false
	}
}

// IsLineEnd reports whether the token terminates a physical or logical line.
func (t Token) IsLineEnd() bool {
	return t.Kind == NL || t.Kind == Newline
}

// IsOp reports whether the token is an operator or punctuation with the
// given text.
func (t Token) IsOp(text string) bool {
	return t.Kind == Op && t.Text == text
}
