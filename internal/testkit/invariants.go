// Package testkit holds structural invariant checks shared by tests and fuzz
// harnesses. Production code never imports it.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"mnalint/internal/ast"
	"mnalint/internal/source"
	"mnalint/internal/token"
)

// CheckTokenInvariants runs a minimal set of token-stream invariants over a
// scanned file:
//  1. the stream is non-empty and ends with exactly one EOF
//  2. every token's start does not come after its end
//  3. token starts never go backwards
//  4. every span lies within the file's content bounds
func CheckTokenInvariants(toks []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(toks) == 0 {
		return fmt.Errorf("empty token stream")
	}
	if toks[len(toks)-1].Kind != token.EOF {
		return fmt.Errorf("stream does not end with EOF: %s", toks[len(toks)-1].Kind)
	}

	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prev source.Pos
	for i, tok := range toks {
		if tok.Kind == token.EOF && i != len(toks)-1 {
			return fmt.Errorf("EOF at index %d before end of stream", i)
		}
		if tok.End.Before(tok.Start) {
			return fmt.Errorf("token %d (%s) ends before it starts: %+v..%+v", i, tok.Kind, tok.Start, tok.End)
		}
		if tok.Start.Before(prev) {
			return fmt.Errorf("token %d (%s) starts before its predecessor: %+v < %+v", i, tok.Kind, tok.Start, prev)
		}
		prev = tok.Start
		if tok.Span.Start > tok.Span.End {
			return fmt.Errorf("token %d (%s) has inverted span: %v", i, tok.Kind, tok.Span)
		}
		if tok.Span.End > lenContent {
			return fmt.Errorf("token %d (%s) span end beyond content: %d > %d", i, tok.Kind, tok.Span.End, lenContent)
		}
	}
	return nil
}

// CheckTreeInvariants verifies that every call in the tree carries a sane
// line range and that its keyword arguments fall inside it. Zero value-line
// fields are allowed: malformed input can leave a keyword without a value.
func CheckTreeInvariants(tree *ast.Tree) error {
	if tree == nil {
		return fmt.Errorf("nil tree")
	}
	var check func(c *ast.Call) error
	check = func(c *ast.Call) error {
		if c.StartLine < 1 || c.EndLine < c.StartLine {
			return fmt.Errorf("call line range %d..%d is invalid", c.StartLine, c.EndLine)
		}
		for _, kw := range c.Keywords {
			if !kw.IsExpansion() {
				if kw.NameLine < c.StartLine || kw.NameLine > c.EndLine {
					return fmt.Errorf("keyword %q name line %d outside call %d..%d",
						kw.Name, kw.NameLine, c.StartLine, c.EndLine)
				}
			}
			if kw.ValueStartLine != 0 {
				if kw.ValueStartLine < c.StartLine || kw.ValueStartLine > c.EndLine {
					return fmt.Errorf("keyword %q value line %d outside call %d..%d",
						kw.Name, kw.ValueStartLine, c.StartLine, c.EndLine)
				}
			}
		}
		for _, nested := range c.Nested {
			if err := check(nested); err != nil {
				return err
			}
		}
		return nil
	}
	for _, c := range tree.Calls {
		if err := check(c); err != nil {
			return err
		}
	}
	return nil
}
