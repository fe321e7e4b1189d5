// Package checker implements the spacing rule for named arguments in
// function calls: `name=value` when the call fits on one line, `name = value`
// when it spans several. The hard part is locating the `=` token that
// belongs to a named argument: the syntax tree has no pointer into the token
// stream, so the match is positional, and when it cannot be made safely the
// argument is skipped rather than guessed at. False positives are the worse
// failure mode.
package checker

import (
	"mnalint/internal/ast"
	"mnalint/internal/diag"
	"mnalint/internal/source"
	"mnalint/internal/token"
)

// Name identifies this checker in findings handed to the host layer.
const Name = "mnalint"

// Correlation bounds. They encode the give-up-rather-than-guess policy:
// a name token may sit one line away from where its value starts (a
// multiline value often begins on the next line), and the `=` must appear
// within a few tokens of the name or the name is not a keyword argument.
const (
	lineSearchTolerance = 1
	maxTokenLookahead   = 3
)

// Finding is one reported rule violation.
type Finding struct {
	Pos     source.Pos
	Code    diag.Code
	Message string
}

// equalsToken captures the located `=` of one keyword argument together
// with its spacing. Computed on demand per argument, never cached.
type equalsToken struct {
	pos            source.Pos
	hasSpaceBefore bool
	hasSpaceAfter  bool
}

// Analyze walks every call in the tree and reports spacing violations for
// its named arguments. It is a pure function of (tree, tokens): analyzing
// the same input again yields the identical ordered findings. An empty
// token sequence (a file the tokenizer gave up on) yields no findings.
func Analyze(tree *ast.Tree, toks []token.Token) []Finding {
	if tree == nil || len(toks) == 0 {
		return nil
	}

	var findings []Finding
	tree.Walk(func(call *ast.Call) bool {
		findings = append(findings, checkCall(call, toks)...)
		return true
	})
	return findings
}

func checkCall(call *ast.Call, toks []token.Token) []Finding {
	if len(call.Keywords) == 0 {
		return nil
	}

	multiline := call.Multiline()

	var findings []Finding
	for _, kw := range call.Keywords {
		if kw.IsExpansion() {
			continue
		}

		eq, ok := findEqualsForKeyword(kw, toks)
		if !ok {
			// Could not correlate; skip with no finding.
			continue
		}

		if multiline {
			if !eq.hasSpaceBefore || !eq.hasSpaceAfter {
				findings = append(findings, Finding{
					Pos:     eq.pos,
					Code:    diag.MultilineMissingSpaces,
					Message: diag.MultilineMissingSpaces.ID() + " " + diag.MultilineMissingSpaces.Title(),
				})
			}
		} else {
			if eq.hasSpaceBefore || eq.hasSpaceAfter {
				findings = append(findings, Finding{
					Pos:     eq.pos,
					Code:    diag.SingleLineExtraSpaces,
					Message: diag.SingleLineExtraSpaces.ID() + " " + diag.SingleLineExtraSpaces.Title(),
				})
			}
		}
	}
	return findings
}

// findEqualsForKeyword locates the `=` token of a keyword argument by
// positional correlation: find a NAME token matching the argument's name
// within lineSearchTolerance of the line its value starts on, then look a
// bounded number of tokens ahead for the assignment. First match wins; two
// same-named arguments near the same line can in principle bind to the
// wrong occurrence, and that behavior is kept as is.
func findEqualsForKeyword(kw ast.Keyword, toks []token.Token) (equalsToken, bool) {
	targetLine := kw.ValueStartLine

	for i, tok := range toks {
		if tok.Kind != token.Name || tok.Text != kw.Name {
			continue
		}
		if absDiff(tok.Start.Line, targetLine) > lineSearchTolerance {
			continue
		}

		if eq, ok := scanAheadForEquals(toks, i); ok {
			return eq, true
		}
		// The next significant token was not `=` (or it was a comparison):
		// this NAME is not the keyword argument. Give up rather than guess.
		return equalsToken{}, false
	}
	return equalsToken{}, false
}

// scanAheadForEquals looks for the `=` within maxTokenLookahead tokens after
// the name at index i, skipping line breaks, indentation markers, and
// comments.
func scanAheadForEquals(toks []token.Token, i int) (equalsToken, bool) {
	name := toks[i]

	for j := i + 1; j < min(i+maxTokenLookahead, len(toks)); j++ {
		next := toks[j]
		if next.IsInsignificant() {
			continue
		}

		if !next.IsOp("=") {
			// Any other significant token means this name is a positional
			// value or an unrelated identifier.
			return equalsToken{}, false
		}

		// Reject `=` that continues into a comparison operator. The greedy
		// tokenizer never splits `==`, but the guard mirrors the defensive
		// policy for name-tolerance false positives: an identifier used in
		// a comparison can share the target line.
		if j+1 < len(toks) {
			if after := toks[j+1]; after.Kind == token.Op {
				switch after.Text {
				case "=", "!", "<", ">":
					return equalsToken{}, false
				}
			}
		}

		eq := equalsToken{
			pos: next.Start,
			// Any gap between the name's end and the `=` counts as a space,
			// be it a blank, a tab, or a line break.
			hasSpaceBefore: name.End != next.Start,
		}

		// Space after: compare against the next significant token. A line
		// end right after `=` leaves it false; multiline formatting never
		// puts the value flush against `=` across a line break in the
		// layouts this rule is for.
		for k := j + 1; k < len(toks); k++ {
			after := toks[k]
			if after.IsLineEnd() || after.Kind == token.EOF {
				break
			}
			if after.Kind == token.Comment || after.Kind == token.Indent || after.Kind == token.Dedent {
				continue
			}
			eq.hasSpaceAfter = next.End != after.Start
			break
		}

		return eq, true
	}
	return equalsToken{}, false
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
