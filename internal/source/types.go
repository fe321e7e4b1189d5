package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// Pos is a human-readable position in a source file. Line is 1-based and
// Col is a 0-based byte offset within the line, matching the convention of
// Python's tokenize module so findings can be reported against the original
// source unambiguously.
type Pos struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// Before reports whether p occurs strictly before other in source order.
func (p Pos) Before(other Pos) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}
