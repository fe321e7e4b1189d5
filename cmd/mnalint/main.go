package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mnalint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "mnalint",
	Short: "Spacing checker for named arguments in Python calls",
	Long: `mnalint enforces spacing around '=' in keyword arguments:
no spaces when the call fits on one line (MNA002), mandatory spaces
when the call spans multiple lines (MNA001).`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-findings", 0, "maximum number of findings to report (0 = default cap)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the destination.
func useColor(cmd *cobra.Command, out *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(out))
}
