package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind. The MNA range is the public rule-code
// contract; the LEX range covers tokenization problems surfaced only in
// verbose output.
type Code uint16

const (
	UnknownCode Code = 0

	// Tokenization (reported, never fatal to the run).
	LexUnterminatedString Code = 1001
	LexUnbalancedBracket  Code = 1002
	LexBadIndent          Code = 1003
	LexUnknownChar        Code = 1004

	// Style rules.
	// MultilineMissingSpaces is MNA001: missing spaces around '=' in a
	// multiline function call.
	MultilineMissingSpaces Code = 2001
	// SingleLineExtraSpaces is MNA002: unexpected spaces around '=' in a
	// single-line function call.
	SingleLineExtraSpaces Code = 2002
)

// ID returns the stable textual form of the code, e.g. "MNA001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%03d", ic-1000)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("MNA%03d", ic-2000)
	}
	return "E000"
}

var codeDescription = map[Code]string{
	UnknownCode:            "unknown diagnostic",
	LexUnterminatedString:  "unterminated string literal",
	LexUnbalancedBracket:   "unbalanced brackets",
	LexBadIndent:           "inconsistent indentation",
	LexUnknownChar:         "unexpected character",
	MultilineMissingSpaces: "missing spaces around '=' in multiline function call",
	SingleLineExtraSpaces:  "unexpected spaces around '=' in single-line function call",
}

// Title returns the human-readable description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseCode resolves a textual ID like "MNA001" back to its Code. Used by
// config-driven ignore lists; unknown IDs yield UnknownCode.
func ParseCode(id string) Code {
	for c := range codeDescription {
		if c != UnknownCode && c.ID() == id {
			return c
		}
	}
	return UnknownCode
}
