package fuzztests

import (
	"testing"

	"mnalint/internal/lexer"
	"mnalint/internal/source"
	"mnalint/internal/testkit"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.py", input)
		file := fs.Get(fileID)

		// Lenient scanning must never panic and either gives up entirely
		// or produces a structurally sound stream.
		toks := lexer.ScanLenient(file, lexer.Options{})
		if toks == nil {
			return
		}
		if err := testkit.CheckTokenInvariants(toks, file); err != nil {
			t.Fatalf("token invariants violated: %v\ninput: %q", err, input)
		}
	})
}
