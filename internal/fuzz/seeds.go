package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB cap for the seed corpus

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addBuiltinSeeds(f)
}

// addTestdataSeeds walks the repository testdata tree and feeds every Python
// file to the corpus. Missing testdata is fine; the builtin seeds remain.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".py" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

// addBuiltinSeeds covers the shapes the checker cares about: both rule
// violations, both compliant forms, expansions, nesting, and the tokenizer's
// failure modes.
func addBuiltinSeeds(f *testing.F) {
	seeds := []string{
		"",
		"foo(a=1, b=2)\n",
		"foo(a = 1)\n",
		"foo(\n    a=1,\n    b = 2,\n)\n",
		"foo(**kwargs)\n",
		"outer(a=inner(b = 1),\n      c=2)\n",
		"sorted(items, key=lambda a, b: a)\n",
		"def f(a=1, b = 2):\n    return g(c=3)\n",
		"x = \"\"\"multi\nline\"\"\"\n",
		"x = f\"{a!r:>{width}}\"\n",
		"foo(a = 1\n",       // unclosed bracket
		"x = 'unterminated\n",
		"foo(a]\n",          // mismatched bracket
		"if x:\n\t a = 1\n", // tab/space indentation
		"\xff\xfe\x00",      // not UTF-8 at all
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
