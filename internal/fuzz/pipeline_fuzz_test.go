package fuzztests

import (
	"reflect"
	"testing"

	"mnalint/internal/checker"
	"mnalint/internal/lexer"
	"mnalint/internal/parser"
	"mnalint/internal/source"
	"mnalint/internal/testkit"
)

func FuzzCheckPipeline(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.py", input))

		toks := lexer.ScanLenient(file, lexer.Options{})
		tree := parser.Parse(toks)
		if err := testkit.CheckTreeInvariants(tree); err != nil {
			t.Fatalf("tree invariants violated: %v\ninput: %q", err, input)
		}

		first := checker.Analyze(tree, toks)
		for _, finding := range first {
			if finding.Pos.Line < 1 || finding.Pos.Col < 0 {
				t.Fatalf("finding at impossible position %+v\ninput: %q", finding.Pos, input)
			}
		}

		// Analysis is a pure function of its inputs.
		second := checker.Analyze(tree, toks)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("analysis is not deterministic\ninput: %q", input)
		}
	})
}
