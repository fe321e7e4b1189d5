// Package ast defines the syntax tree the call-site checker walks: call
// expressions with their named arguments. The tree deliberately carries no
// token indices; matching a named argument to its '=' token is the checker's
// job and stays positional.
package ast

import (
	"mnalint/internal/source"
)

// Keyword is one named argument of a call. Name is empty for an expansion
// argument (**mapping), which forwards a whole mapping and carries no
// individual name to check.
type Keyword struct {
	Name string
	// NameLine is the line the argument name starts on, when present.
	NameLine int
	// ValueStartLine and ValueEndLine delimit the value expression.
	ValueStartLine int
	ValueEndLine   int
}

// IsExpansion reports whether the keyword forwards a mapping (**kwargs).
func (k Keyword) IsExpansion() bool {
	return k.Name == ""
}

// Call is one call expression. StartLine is the line its callee starts on
// and EndLine the line of its closing parenthesis; the two differing is what
// makes a call multiline.
type Call struct {
	Span      source.Span
	StartLine int
	EndLine   int
	Keywords  []Keyword
	// Nested holds the calls that appear inside this call's arguments, in
	// source order.
	Nested []*Call
}

// Multiline reports whether the call spans more than one physical line.
// The classification is per call: every named argument in the call is judged
// by the same mode, whatever its own value's shape.
func (c *Call) Multiline() bool {
	return c.StartLine != c.EndLine
}

// Tree is the parsed view of one file: its top-level calls in source order.
type Tree struct {
	Calls []*Call
}

// Walk visits every call in pre-order: each call before the calls nested in
// its arguments, siblings left to right. Returning false stops the walk.
func (t *Tree) Walk(visit func(*Call) bool) {
	if t == nil {
		return
	}
	var rec func(calls []*Call) bool
	rec = func(calls []*Call) bool {
		for _, c := range calls {
			if !visit(c) {
				return false
			}
			if !rec(c.Nested) {
				return false
			}
		}
		return true
	}
	rec(t.Calls)
}
