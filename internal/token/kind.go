package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Name represents an identifier or keyword token.
	Name
	// Number represents any numeric literal token.
	Number
	// String represents a string literal token, including prefixed and
	// triple-quoted forms.
	String
	// Op represents an operator or punctuation token.
	Op
	// Comment represents a '#' comment token.
	Comment

	// Newline terminates a logical line.
	Newline
	// NL terminates a physical line that does not end a logical line
	// (blank lines and line ends inside brackets).
	NL
	// Indent marks an increase of the indentation level.
	Indent
	// Dedent marks a decrease of the indentation level.
	Dedent
)

var kindNames = [...]string{
	Invalid: "INVALID",
	EOF:     "EOF",
	Name:    "NAME",
	Number:  "NUMBER",
	String:  "STRING",
	Op:      "OP",
	Comment: "COMMENT",
	Newline: "NEWLINE",
	NL:      "NL",
	Indent:  "INDENT",
	Dedent:  "DEDENT",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}
