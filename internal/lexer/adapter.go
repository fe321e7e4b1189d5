package lexer

import (
	"mnalint/internal/source"
	"mnalint/internal/token"
)

// ScanAll tokenizes the whole file and returns the ordered token sequence.
// The error is the first hard tokenization failure (unterminated string,
// mismatched or unclosed brackets, inconsistent dedent); the tokens scanned
// up to that point are still returned for callers that want them.
func ScanAll(file *source.File, opts Options) ([]token.Token, error) {
	lx := New(file, opts)
	tokens := make([]token.Token, 0, len(file.Content)/4+8)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, lx.Err()
}

// ScanLenient is the degrading form of ScanAll: on any failure, including an
// unexpected panic, it returns nil so the caller treats the file as "nothing
// to check". Syntax errors in the file are some other tool's job to report;
// this one must never take the whole run down with it.
func ScanLenient(file *source.File, opts Options) (tokens []token.Token) {
	defer func() {
		if r := recover(); r != nil {
			tokens = nil
		}
	}()

	tokens, err := ScanAll(file, opts)
	if err != nil {
		return nil
	}
	return tokens
}
