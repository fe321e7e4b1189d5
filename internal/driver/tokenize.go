package driver

import (
	"os"

	"mnalint/internal/diag"
	"mnalint/internal/lexer"
	"mnalint/internal/source"
	"mnalint/internal/token"
)

// TokenizeResult carries everything the tokenize command prints.
type TokenizeResult struct {
	FileSet *source.FileSet
	FileID  source.FileID
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize scans a single file strictly, collecting tokenization errors
// into the bag instead of degrading. This is the debugging entry point; the
// check pipeline uses the lenient adapter.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(maxDiagnostics)
	tokens, _ := lexer.ScanAll(fileSet.Get(fileID), lexer.Options{
		Reporter: &lexer.ReporterAdapter{Sink: diag.BagReporter{Bag: bag}},
	})

	return &TokenizeResult{
		FileSet: fileSet,
		FileID:  fileID,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

// osStat reports whether path is a directory.
func osStat(path string) (bool, error) {
	st, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return st.IsDir(), nil
}
