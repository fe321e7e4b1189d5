package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"mnalint/internal/diag"
	"mnalint/internal/source"
)

var (
	pathColor    = color.New(color.Bold)
	codeColor    = color.New(color.FgRed, color.Bold)
	lexCodeColor = color.New(color.FgYellow, color.Bold)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

// Pretty renders diagnostics one per line, flake8-style:
//
//	<path>:<line>:<col>: <CODE> <message>
//
// optionally followed by the source line with a caret under the column.
// Expects the bag to be sorted already. Columns are printed 1-based for
// editors; the underlying positions stay 0-based.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		file := fs.Get(d.Primary.File)
		if file == nil {
			continue
		}
		start, _ := fs.Resolve(d.Primary)

		path := displayPath(file, fs, opts.PathMode)
		cc := codeColor
		if d.Severity >= diag.SevError {
			cc = lexCodeColor
		}

		if opts.Color {
			fmt.Fprintf(w, "%s:%d:%d: %s %s\n",
				pathColor.Sprint(path), start.Line, start.Col+1,
				cc.Sprint(d.Code.ID()), d.Message)
		} else {
			fmt.Fprintf(w, "%s:%d:%d: %s %s\n",
				path, start.Line, start.Col+1, d.Code.ID(), d.Message)
		}

		if opts.Preview {
			writePreview(w, file, start, opts.Color)
		}
	}
}

// writePreview prints the offending line and a caret aligned under the
// column, accounting for tabs and wide runes.
func writePreview(w io.Writer, file *source.File, pos source.Pos, colored bool) {
	line := file.GetLine(pos.Line)
	if line == "" {
		return
	}

	col := pos.Col
	if col > len(line) {
		col = len(line)
	}
	pad := runewidth.StringWidth(strings.ReplaceAll(line[:col], "\t", "        "))

	fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(line, "\t", "        "))
	caret := "^"
	if colored {
		caret = caretColor.Sprint(caret)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), caret)
}

func displayPath(file *source.File, fs *source.FileSet, mode string) string {
	if mode == "absolute" {
		return file.Path
	}
	if rel, err := source.RelativePath(file.Path, fs.BaseDir()); err == nil && !strings.HasPrefix(rel, "../") {
		return rel
	}
	return file.Path
}

// Summary prints the closing line of a check run.
func Summary(w io.Writer, files, findings int, opts PrettyOpts) {
	if findings == 0 {
		msg := fmt.Sprintf("%d file(s) checked, no problems found", files)
		if opts.Color {
			msg = color.New(color.FgGreen).Sprint(msg)
		}
		fmt.Fprintln(w, msg)
		return
	}
	msg := fmt.Sprintf("%d file(s) checked, %d problem(s) found", files, findings)
	if opts.Color {
		msg = color.New(color.FgRed, color.Bold).Sprint(msg)
	}
	fmt.Fprintln(w, msg)
}
