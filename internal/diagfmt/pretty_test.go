package diagfmt_test

import (
	"encoding/json"
	"strings"
	"testing"

	"mnalint/internal/diag"
	"mnalint/internal/diagfmt"
	"mnalint/internal/source"
)

// makeBag builds a one-finding bag over an in-memory file.
func makeBag(t *testing.T, content string, off uint32) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("pkg/app.py", []byte(content))

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.SingleLineExtraSpaces,
		Message:  "MNA002 unexpected spaces around '=' in single-line function call",
		Primary:  source.Span{File: id, Start: off, End: off + 1},
	})
	return bag, fs
}

func TestPrettyLineFormat(t *testing.T) {
	// `=` of `foo(a = 1)` sits at offset 6, column 6 (printed 1-based as 7).
	bag, fs := makeBag(t, "foo(a = 1)\n", 6)

	var buf strings.Builder
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{PathMode: "absolute"})

	want := "pkg/app.py:1:7: MNA002 unexpected spaces around '=' in single-line function call\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPrettyPreviewCaret(t *testing.T) {
	bag, fs := makeBag(t, "foo(a = 1)\n", 6)

	var buf strings.Builder
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{Preview: true, PathMode: "absolute"})

	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected preview lines, got %q", buf.String())
	}
	if lines[1] != "    foo(a = 1)" {
		t.Errorf("preview line = %q", lines[1])
	}
	if lines[2] != "          ^" {
		t.Errorf("caret line = %q (caret must sit under the '=')", lines[2])
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs := makeBag(t, "foo(a = 1)\n", 6)

	var buf strings.Builder
	if err := diagfmt.JSON(&buf, bag, fs, "mnalint"); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var out []diagfmt.FindingOutput
	if err := json.Unmarshal([]byte(buf.String()), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("entries = %d, want 1", len(out))
	}
	got := out[0]
	if got.Path != "pkg/app.py" || got.Line != 1 || got.Col != 6 ||
		got.Code != "MNA002" || got.Checker != "mnalint" {
		t.Errorf("entry = %+v", got)
	}
}

func TestJSONEmptyBagIsArray(t *testing.T) {
	fs := source.NewFileSet()
	var buf strings.Builder
	if err := diagfmt.JSON(&buf, diag.NewBag(1), fs, "mnalint"); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("empty output = %q, want []", buf.String())
	}
}

func TestSummary(t *testing.T) {
	var buf strings.Builder
	diagfmt.Summary(&buf, 3, 0, diagfmt.PrettyOpts{})
	if !strings.Contains(buf.String(), "no problems found") {
		t.Errorf("clean summary = %q", buf.String())
	}

	buf.Reset()
	diagfmt.Summary(&buf, 3, 2, diagfmt.PrettyOpts{})
	if !strings.Contains(buf.String(), "2 problem(s) found") {
		t.Errorf("summary = %q", buf.String())
	}
}
