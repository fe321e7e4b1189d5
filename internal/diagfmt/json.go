package diagfmt

import (
	"encoding/json"
	"io"

	"mnalint/internal/diag"
	"mnalint/internal/source"
)

// FindingOutput is the machine-readable form of one diagnostic. Line is
// 1-based and Col 0-based, the positions the core works in.
type FindingOutput struct {
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Checker string `json:"checker"`
}

// JSON renders diagnostics as a JSON array for editor integrations.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, checkerName string) error {
	out := make([]FindingOutput, 0, bag.Len())
	for _, d := range bag.Items() {
		file := fs.Get(d.Primary.File)
		if file == nil {
			continue
		}
		start, _ := fs.Resolve(d.Primary)
		out = append(out, FindingOutput{
			Path:    file.Path,
			Line:    start.Line,
			Col:     start.Col,
			Code:    d.Code.ID(),
			Message: d.Message,
			Checker: checkerName,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
