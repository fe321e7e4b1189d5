// Package parser extracts call expressions with their named arguments from
// a Python token stream. It is not a full Python parser: it matches bracket
// structure and recognizes the `name=value` / `**mapping` argument shapes,
// which is all the spacing checker needs. Malformed input never errors here;
// the tokenizer owns the failure policy, and this layer extracts what it can.
package parser

import (
	"mnalint/internal/ast"
	"mnalint/internal/token"
)

type argState uint8

const (
	argStart argState = iota // at the start of an argument
	expectEq                 // saw `name`, the next significant token is `=`
	inValue                  // consuming an argument value
)

// frame is one open bracket group. call is non-nil when the group is the
// argument list of a call expression.
type frame struct {
	bracket byte
	call    *ast.Call
	state   argState
	kw      *ast.Keyword // current keyword argument, nil in positional args
	wantVal bool         // the next significant token starts kw's value
	lambdas int          // open lambda headers; commas inside them do not split args
}

type parser struct {
	toks []token.Token
	tree *ast.Tree
}

// Parse builds the call tree for one file's token sequence. An empty or nil
// sequence yields an empty tree.
func Parse(toks []token.Token) *ast.Tree {
	p := &parser{toks: toks, tree: &ast.Tree{}}
	p.run()
	return p.tree
}

func (p *parser) run() {
	var stack []*frame
	prevSig := -1 // index of the previous significant token

	top := func() *frame {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}
	// enclosingCall finds the innermost frame that is a call.
	enclosingCall := func() *ast.Call {
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i].call != nil {
				return stack[i].call
			}
		}
		return nil
	}

	for i := 0; i < len(p.toks); i++ {
		tok := p.toks[i]
		if tok.Kind == token.EOF {
			break
		}
		if tok.IsInsignificant() || tok.Kind == token.Invalid {
			continue
		}

		switch {
		case tok.IsOp("(") || tok.IsOp("[") || tok.IsOp("{"):
			// A bracket can open (or continue) the current argument's value.
			if f := top(); f != nil && f.call != nil {
				p.valueToken(f, tok)
			}
			var call *ast.Call
			if tok.IsOp("(") && p.isCallee(prevSig) {
				call = &ast.Call{
					Span:      tok.Span,
					StartLine: p.calleeStartLine(prevSig),
					EndLine:   tok.Start.Line,
				}
			}
			stack = append(stack, &frame{bracket: tok.Text[0], call: call})

		case tok.IsOp(")") || tok.IsOp("]") || tok.IsOp("}"):
			if f := top(); f != nil {
				stack = stack[:len(stack)-1]
				if f.call != nil {
					f.call.Span = f.call.Span.Cover(tok.Span)
					f.call.EndLine = tok.Start.Line
					if f.kw != nil && f.kw.ValueEndLine < tok.Start.Line {
						f.kw.ValueEndLine = tok.Start.Line - 1
					}
					if parent := enclosingCall(); parent != nil {
						parent.Nested = append(parent.Nested, f.call)
					} else {
						p.tree.Calls = append(p.tree.Calls, f.call)
					}
				}
				// A closer inside an argument value extends the value.
				if f2 := top(); f2 != nil && f2.call != nil && f2.kw != nil && !f2.wantVal {
					f2.kw.ValueEndLine = tok.Start.Line
				}
			}

		default:
			if f := top(); f != nil && f.call != nil {
				p.argToken(f, i, tok)
			}
		}

		prevSig = i
	}
}

// argToken advances one call frame's argument state machine by one
// significant token at the call's own bracket depth.
func (p *parser) argToken(f *frame, i int, tok token.Token) {
	if tok.Kind == token.Name && tok.Text == "lambda" {
		f.lambdas++
	}
	if tok.IsOp(":") && f.lambdas > 0 {
		f.lambdas--
	}

	// A comma at the call's own depth ends the argument, whatever state the
	// value scan is in. Commas inside lambda headers do not count.
	if tok.IsOp(",") && f.lambdas == 0 && !f.wantVal {
		f.kw = nil
		f.state = argStart
		return
	}

	if f.wantVal {
		f.kw.ValueStartLine = tok.Start.Line
		f.kw.ValueEndLine = tok.Start.Line
		f.wantVal = false
		f.state = inValue
		return
	}

	switch f.state {
	case argStart:
		if f.lambdas > 0 {
			f.state = inValue
			return
		}
		switch {
		case tok.Kind == token.Name && p.nextSigIsAssign(i):
			f.call.Keywords = append(f.call.Keywords, ast.Keyword{
				Name:     tok.Text,
				NameLine: tok.Start.Line,
			})
			f.kw = &f.call.Keywords[len(f.call.Keywords)-1]
			f.state = expectEq
		case tok.IsOp("**"):
			f.call.Keywords = append(f.call.Keywords, ast.Keyword{})
			f.kw = &f.call.Keywords[len(f.call.Keywords)-1]
			f.wantVal = true
		default:
			f.state = inValue
		}

	case expectEq:
		// tok is the `=` itself; the value starts at the next token.
		f.wantVal = true

	case inValue:
		if f.kw != nil {
			f.kw.ValueEndLine = tok.Start.Line
		}
	}
}

// valueToken lets an opening bracket participate in argument value tracking
// before its own frame is pushed.
func (p *parser) valueToken(f *frame, tok token.Token) {
	if f.wantVal {
		f.kw.ValueStartLine = tok.Start.Line
		f.kw.ValueEndLine = tok.Start.Line
		f.wantVal = false
		f.state = inValue
		return
	}
	if f.state == argStart {
		f.state = inValue
		return
	}
	if f.state == inValue && f.kw != nil {
		f.kw.ValueEndLine = tok.Start.Line
	}
}

// isCallee reports whether the significant token at index i can end a callee
// expression: a non-keyword name, or the closer of a call/subscript result.
func (p *parser) isCallee(i int) bool {
	if i < 0 {
		return false
	}
	tok := p.toks[i]
	switch {
	case tok.Kind == token.Name && !token.IsKeyword(tok.Text):
		// `def f(...)` and `class C(...)` headers are not calls.
		if j := p.prevSig(i); j >= 0 {
			if pt := p.toks[j]; pt.Kind == token.Name && (pt.Text == "def" || pt.Text == "class") {
				return false
			}
		}
		return true
	case tok.IsOp(")") || tok.IsOp("]"):
		return true
	default:
		return false
	}
}

// calleeStartLine walks a dotted callee chain backwards (`a.b.c(` starts at
// `a`) so that mode classification sees the line the callee expression
// starts on. Chains running through bracket groups stop at the group's
// closer, a deliberate simplification.
func (p *parser) calleeStartLine(i int) int {
	line := p.toks[i].Start.Line
	for p.toks[i].Kind == token.Name {
		j := p.prevSig(i)
		if j < 0 || !p.toks[j].IsOp(".") {
			break
		}
		k := p.prevSig(j)
		if k < 0 || p.toks[k].Kind != token.Name {
			break
		}
		i = k
		line = p.toks[i].Start.Line
	}
	return line
}

// nextSigIsAssign reports whether the next significant token after index i
// is a lone `=`. The tokenizer's greedy operator matching guarantees `==`
// and friends never split, so Op "=" is genuinely an assignment.
func (p *parser) nextSigIsAssign(i int) bool {
	for j := i + 1; j < len(p.toks); j++ {
		if p.toks[j].IsInsignificant() {
			continue
		}
		return p.toks[j].IsOp("=")
	}
	return false
}

func (p *parser) prevSig(i int) int {
	for j := i - 1; j >= 0; j-- {
		if p.toks[j].IsInsignificant() || p.toks[j].Kind == token.Invalid {
			continue
		}
		return j
	}
	return -1
}
