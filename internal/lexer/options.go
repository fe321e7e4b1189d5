package lexer

import (
	"mnalint/internal/source"
)

// Reporter is a thin interface so the lexer does not depend on diag.
// The lexer only calls it with raw parameters; the outer layer turns them
// into diagnostics.
type Reporter interface {
	Report(code string, span source.Span, msg string)
}

// Error codes passed to the Reporter.
const (
	CodeUnterminatedString = "LEX001"
	CodeUnbalancedBracket  = "LEX002"
	CodeBadIndent          = "LEX003"
	CodeUnknownChar        = "LEX004"
)

type Options struct {
	Reporter Reporter // may be nil; errors are still tracked, just not forwarded
}

func (lx *Lexer) report(code string, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, sp, msg)
	}
}
