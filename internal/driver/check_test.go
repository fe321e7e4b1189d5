package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"mnalint/internal/config"
	"mnalint/internal/diag"
	"mnalint/internal/driver"
	"mnalint/internal/source"
)

func writePy(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckDirectory(t *testing.T) {
	dir := t.TempDir()
	writePy(t, dir, "bad.py", "foo(a = 1)\n")
	writePy(t, dir, "good.py", "foo(a=1)\n")
	writePy(t, dir, "sub/also_bad.py", "foo(\n    a=1,\n)\n")
	writePy(t, dir, "notes.txt", "foo(a = 1)\n") // not a Python file

	run, err := driver.Check(context.Background(), []string{dir}, driver.Options{NoCache: true})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if run.FilesChecked != 3 {
		t.Errorf("FilesChecked = %d, want 3", run.FilesChecked)
	}
	if run.Bag.Len() != 2 {
		t.Fatalf("findings = %d, want 2\n%+v", run.Bag.Len(), run.Bag.Items())
	}

	// Paths are sorted, so bad.py is checked before sub/also_bad.py.
	items := run.Bag.Items()
	if items[0].Code != diag.SingleLineExtraSpaces {
		t.Errorf("first finding = %s, want MNA002", items[0].Code.ID())
	}
	if items[1].Code != diag.MultilineMissingSpaces {
		t.Errorf("second finding = %s, want MNA001", items[1].Code.ID())
	}
}

func TestCheckExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := writePy(t, dir, "one.py", "foo(a= 1)\n")

	run, err := driver.Check(context.Background(), []string{path}, driver.Options{NoCache: true})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if run.FilesChecked != 1 || run.Bag.Len() != 1 {
		t.Errorf("FilesChecked/findings = %d/%d, want 1/1", run.FilesChecked, run.Bag.Len())
	}
}

func TestCheckMissingPath(t *testing.T) {
	if _, err := driver.Check(context.Background(), []string{"/no/such/path"}, driver.Options{NoCache: true}); err == nil {
		t.Error("expected error for a missing path")
	}
}

func TestCheckIgnoreCodes(t *testing.T) {
	dir := t.TempDir()
	writePy(t, dir, "bad.py", "foo(a = 1)\nbar(\n    b=2,\n)\n")

	run, err := driver.Check(context.Background(), []string{dir}, driver.Options{
		NoCache: true,
		Config:  config.Config{Ignore: []string{"MNA002"}},
	})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if run.Bag.Len() != 1 {
		t.Fatalf("findings = %d, want 1 (MNA002 ignored)", run.Bag.Len())
	}
	if run.Bag.Items()[0].Code != diag.MultilineMissingSpaces {
		t.Errorf("remaining finding = %s, want MNA001", run.Bag.Items()[0].Code.ID())
	}
}

func TestCheckExcludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writePy(t, dir, "app.py", "foo(a = 1)\n")
	writePy(t, dir, "generated_pb.py", "foo(a = 1)\n")

	run, err := driver.Check(context.Background(), []string{dir}, driver.Options{
		NoCache: true,
		Config:  config.Config{Exclude: []string{"generated_*.py"}},
	})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if run.FilesChecked != 1 {
		t.Errorf("FilesChecked = %d, want 1 (generated file excluded)", run.FilesChecked)
	}
	if run.Bag.Len() != 1 {
		t.Errorf("findings = %d, want 1", run.Bag.Len())
	}
}

func TestCheckMaxFindingsCap(t *testing.T) {
	dir := t.TempDir()
	writePy(t, dir, "bad.py", "foo(a = 1)\nbar(b = 2)\nbaz(c = 3)\n")

	run, err := driver.Check(context.Background(), []string{dir}, driver.Options{
		NoCache:     true,
		MaxFindings: 2,
	})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if run.Bag.Len() != 2 {
		t.Errorf("findings = %d, want 2 (capped)", run.Bag.Len())
	}
}

func TestCheckBrokenFileDegrades(t *testing.T) {
	dir := t.TempDir()
	writePy(t, dir, "broken.py", "foo(a = 1\n") // unclosed bracket
	writePy(t, dir, "fine.py", "foo(a = 1)\n")

	run, err := driver.Check(context.Background(), []string{dir}, driver.Options{NoCache: true})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if run.FilesChecked != 2 {
		t.Errorf("FilesChecked = %d, want 2", run.FilesChecked)
	}
	if run.Bag.Len() != 1 {
		t.Errorf("findings = %d, want 1 (broken file yields none)", run.Bag.Len())
	}
}

func TestCheckDeterministicAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 8; i++ {
		writePy(t, dir, string(rune('a'+i))+".py", "foo(x = 1)\n")
	}

	first, err := driver.Check(context.Background(), []string{dir}, driver.Options{NoCache: true, Jobs: 4})
	if err != nil {
		t.Fatal(err)
	}
	second, err := driver.Check(context.Background(), []string{dir}, driver.Options{NoCache: true, Jobs: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.Bag.Items(), second.Bag.Items()) {
		t.Error("finding order depends on worker count")
	}
}

func TestAnalyzeFile(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.py", []byte("foo(a = 1)\n")))

	findings := driver.AnalyzeFile(file)
	if len(findings) != 1 {
		t.Fatalf("findings = %d, want 1", len(findings))
	}
	if findings[0].Code != diag.SingleLineExtraSpaces {
		t.Errorf("code = %s, want MNA002", findings[0].Code.ID())
	}
	if findings[0].Pos != (source.Pos{Line: 1, Col: 6}) {
		t.Errorf("pos = %+v, want 1:6", findings[0].Pos)
	}
}

func TestTokenizeCollectsLexerErrors(t *testing.T) {
	dir := t.TempDir()
	path := writePy(t, dir, "broken.py", "x = 'open\n")

	res, err := driver.Tokenize(path, 10)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if !res.Bag.HasErrors() {
		t.Fatal("lexer error did not reach the bag")
	}
	if got := res.Bag.Items()[0].Code; got != diag.LexUnterminatedString {
		t.Errorf("code = %s, want LEX001", got.ID())
	}
	if len(res.Tokens) == 0 {
		t.Error("tokens scanned before the failure should be returned")
	}
}

func TestCheckUsesCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir := t.TempDir()
	writePy(t, dir, "bad.py", "foo(a = 1)\n")

	first, err := driver.Check(context.Background(), []string{dir}, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := driver.Check(context.Background(), []string{dir}, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.Bag.Items(), second.Bag.Items()) {
		t.Error("cached run differs from the fresh run")
	}
}
