package lexer

import (
	"mnalint/internal/diag"
	"mnalint/internal/source"
)

// ReporterAdapter lifts the lexer's thin string-code reports into
// diagnostics and hands them to a diag.Reporter sink. The lexer itself
// stays free of the diag dependency.
type ReporterAdapter struct {
	Sink diag.Reporter
}

var lexCodes = map[string]diag.Code{
	CodeUnterminatedString: diag.LexUnterminatedString,
	CodeUnbalancedBracket:  diag.LexUnbalancedBracket,
	CodeBadIndent:          diag.LexBadIndent,
	CodeUnknownChar:        diag.LexUnknownChar,
}

func (r *ReporterAdapter) Report(code string, span source.Span, msg string) {
	if r.Sink == nil {
		return
	}
	dc, ok := lexCodes[code]
	if !ok {
		dc = diag.UnknownCode
	}
	r.Sink.Report(dc, diag.SevError, span, msg)
}
