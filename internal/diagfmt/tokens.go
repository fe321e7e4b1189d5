package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"mnalint/internal/source"
	"mnalint/internal/token"
)

// TokenOutput is the JSON form of one token.
type TokenOutput struct {
	Kind  string      `json:"kind"`
	Text  string      `json:"text,omitempty"`
	Span  source.Span `json:"span"`
	Start source.Pos  `json:"start"`
	End   source.Pos  `json:"end"`
}

// FormatTokensPretty dumps tokens in a human-readable form, one per line.
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		fmt.Fprintf(w, "%3d: %-8s", i+1, tok.Kind.String())

		if tok.Text != "" && !tok.IsLineEnd() {
			fmt.Fprintf(w, " %q", tok.Text)
		}

		fmt.Fprintf(w, " at %d:%d-%d:%d\n",
			tok.Start.Line, tok.Start.Col,
			tok.End.Line, tok.End.Col)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON dumps tokens as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Span:  tok.Span,
			Start: tok.Start,
			End:   tok.End,
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
