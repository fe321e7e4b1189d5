// Package diagfmt renders findings and token dumps for the command line.
// The checker core knows nothing about presentation; everything here is
// host-side formatting.
package diagfmt

// PrettyOpts controls human-readable output.
type PrettyOpts struct {
	// Color enables ANSI colors. Callers decide based on the --color flag
	// and whether the destination is a terminal.
	Color bool
	// Preview prints the offending source line under each finding with a
	// caret at the column.
	Preview bool
	// PathMode selects how file paths are shown: "relative" (default) or
	// "absolute".
	PathMode string
}
