package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mnalint/internal/checker"
	"mnalint/internal/config"
	"mnalint/internal/diagfmt"
	"mnalint/internal/driver"
	"mnalint/internal/observ"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] path...",
	Short: "Check Python files for keyword-argument spacing",
	Long: `Check tokenizes and analyzes the given files (or all *.py files
under the given directories) and reports MNA001/MNA002 findings.
Exits with status 1 when findings are reported.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Bool("preview", false, "show the offending source line under each finding")
	checkCmd.Flags().Int("jobs", 0, "number of files to check in parallel (0 = one per CPU)")
	checkCmd.Flags().Bool("no-cache", false, "do not read or write the findings cache")
	checkCmd.Flags().String("config", "", "explicit pyproject.toml (default: discovered upward from the first path)")
	checkCmd.Flags().Bool("timings", false, "print phase timings to stderr")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	preview, _ := cmd.Flags().GetBool("preview")
	timings, _ := cmd.Flags().GetBool("timings")
	maxFindings, _ := cmd.Root().PersistentFlags().GetInt("max-findings")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	var timer *observ.Timer
	if timings {
		timer = observ.NewTimer()
	}

	run, err := driver.Check(cmd.Context(), args, driver.Options{
		Config:      cfg,
		Jobs:        jobs,
		MaxFindings: maxFindings,
		NoCache:     noCache,
		Timer:       timer,
	})
	if err != nil {
		return err
	}
	if timer != nil {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	opts := diagfmt.PrettyOpts{
		Color:   useColor(cmd, os.Stdout),
		Preview: preview,
	}

	switch format {
	case "json":
		if err := diagfmt.JSON(os.Stdout, run.Bag, run.FileSet, checker.Name); err != nil {
			return err
		}
	default:
		diagfmt.Pretty(os.Stdout, run.Bag, run.FileSet, opts)
		if !quiet {
			diagfmt.Summary(os.Stdout, run.FilesChecked, run.Bag.Len(), opts)
		}
	}

	if run.Bag.Len() > 0 {
		// Findings are the tool's whole point; signal them through the exit
		// code without cobra printing a usage or error banner.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return errFindings
	}
	return nil
}

var errFindings = fmt.Errorf("findings reported")

func loadConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	explicit, _ := cmd.Flags().GetString("config")
	if explicit != "" {
		return config.Load(explicit)
	}

	start := args[0]
	if isDir, err := dirStat(start); err == nil && !isDir {
		start = parentDir(start)
	}
	cfg, err := config.Discover(start)
	if err != nil {
		return config.Default(), fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
