package lexer

import (
	"errors"
	"fmt"

	"mnalint/internal/source"
	"mnalint/internal/token"
)

// tabSize is the tab stop used when measuring indentation, matching CPython's
// tokenizer default.
const tabSize = 8

// Lexer scans Python source into a stream of tokens. It tracks the logical
// line state the token stream depends on: bracket depth (NEWLINE vs NL),
// backslash continuation, and the indentation stack (INDENT/DEDENT).
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	pending     []token.Token // queued tokens (dedent runs, line-start output)
	indents     []int         // indentation stack, always starts at 0
	brackets    []byte        // open bracket characters
	atLineStart bool
	eofEmitted  bool
	lastKind    token.Kind
	err         error
}

// New creates a lexer over the given file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		indents:     []int{0},
		atLineStart: true,
		lastKind:    token.Newline, // so an empty file needs no synthetic NEWLINE
	}
}

// Err returns the first hard tokenization error, if any.
func (lx *Lexer) Err() error {
	return lx.err
}

// Next returns the next token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	for {
		if len(lx.pending) > 0 {
			tok := lx.pending[0]
			lx.pending = lx.pending[1:]
			lx.lastKind = tok.Kind
			return tok
		}

		if lx.eofEmitted {
			return lx.mk(token.EOF, lx.emptySpan())
		}

		if lx.atLineStart && len(lx.brackets) == 0 && !lx.cursor.EOF() {
			lx.scanLineStart()
			continue
		}

		lx.skipSpaces()

		if lx.cursor.EOF() {
			lx.queueEOF()
			continue
		}

		ch := lx.cursor.Peek()
		var tok token.Token

		switch {
		case ch == '\n':
			tok = lx.scanLineEnd()

		case ch == '\\':
			if _, b1, ok := lx.cursor.Peek2(); ok && b1 == '\n' {
				// Explicit line continuation: no token, same logical line.
				lx.cursor.Bump()
				lx.cursor.Bump()
				continue
			}
			tok = lx.scanUnknown()

		case ch == '#':
			tok = lx.scanComment()

		case isIdentStartByte(ch) || ch >= utf8RuneSelf:
			tok = lx.scanNameOrString()

		case isDec(ch) || lx.isNumberAfterDot():
			tok = lx.scanNumber()

		case ch == '"' || ch == '\'':
			tok = lx.scanString("")

		default:
			tok = lx.scanOperatorOrPunct()
		}

		lx.lastKind = tok.Kind
		return tok
	}
}

// scanLineStart measures indentation at the start of a logical line and
// queues the resulting NL/COMMENT/INDENT/DEDENT tokens. Blank lines and
// comment-only lines do not affect the indentation stack.
func (lx *Lexer) scanLineStart() {
	start := lx.cursor.Mark()
	col := 0
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ':
			col++
		case '\t':
			col = (col/tabSize + 1) * tabSize
		case '\x0c':
			col = 0
		default:
			goto measured
		}
		lx.cursor.Bump()
	}
measured:
	if lx.cursor.EOF() {
		// Only trailing whitespace; the main loop emits the EOF sequence.
		return
	}

	switch lx.cursor.Peek() {
	case '\n':
		nlStart := lx.cursor.Mark()
		lx.cursor.Bump()
		lx.pending = append(lx.pending, lx.mk(token.NL, lx.cursor.SpanFrom(nlStart)))
		return
	case '#':
		lx.pending = append(lx.pending, lx.scanComment())
		if lx.cursor.Peek() == '\n' {
			nlStart := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.pending = append(lx.pending, lx.mk(token.NL, lx.cursor.SpanFrom(nlStart)))
		}
		return
	}

	lx.atLineStart = false
	top := lx.indents[len(lx.indents)-1]
	switch {
	case col > top:
		lx.indents = append(lx.indents, col)
		lx.pending = append(lx.pending, lx.mk(token.Indent, lx.cursor.SpanFrom(start)))
	case col < top:
		for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > col {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.pending = append(lx.pending, lx.mk(token.Dedent, lx.emptySpan()))
		}
		if lx.indents[len(lx.indents)-1] != col {
			sp := lx.cursor.SpanFrom(start)
			lx.report(CodeBadIndent, sp, "unindent does not match any outer indentation level")
			lx.fail("inconsistent dedent")
		}
	}
}

// scanLineEnd consumes '\n' and classifies it: inside brackets it is a
// non-logical NL, otherwise it terminates the logical line. Only a logical
// NEWLINE arms line-start handling: an in-bracket NL must not, or a bracket
// group closing mid-line would make the rest of that physical line look like
// the start of one and its tokens get measured as indentation.
func (lx *Lexer) scanLineEnd() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	kind := token.Newline
	if len(lx.brackets) > 0 {
		kind = token.NL
	} else {
		lx.atLineStart = true
	}
	return lx.mk(kind, lx.cursor.SpanFrom(start))
}

func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	return lx.mk(token.Comment, lx.cursor.SpanFrom(start))
}

func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.report(CodeUnknownChar, sp, fmt.Sprintf("unexpected character %q", lx.text(sp)))
	return lx.mk(token.Invalid, sp)
}

// queueEOF closes the stream: an implicit NEWLINE when the file does not end
// with one, the dedents still open, then EOF. Open brackets at this point are
// a hard tokenization failure.
func (lx *Lexer) queueEOF() {
	if len(lx.brackets) > 0 {
		lx.report(CodeUnbalancedBracket, lx.emptySpan(),
			fmt.Sprintf("unexpected end of file, %d unclosed bracket(s)", len(lx.brackets)))
		lx.fail("unclosed brackets at end of file")
	}
	if lx.lastKind != token.Newline && lx.lastKind != token.NL {
		lx.pending = append(lx.pending, lx.mk(token.Newline, lx.emptySpan()))
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.pending = append(lx.pending, lx.mk(token.Dedent, lx.emptySpan()))
	}
	lx.pending = append(lx.pending, lx.mk(token.EOF, lx.emptySpan()))
	lx.eofEmitted = true
}

func (lx *Lexer) fail(msg string) {
	if lx.err == nil {
		lx.err = errors.New(msg)
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

// mk builds a token for a span, resolving its start and end positions.
func (lx *Lexer) mk(kind token.Kind, sp source.Span) token.Token {
	return token.Token{
		Kind:  kind,
		Text:  lx.text(sp),
		Span:  sp,
		Start: lx.file.PosOf(sp.Start),
		End:   lx.file.PosOf(sp.End),
	}
}

func (lx *Lexer) skipSpaces() {
	for !lx.cursor.EOF() && isHorizontalSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}
