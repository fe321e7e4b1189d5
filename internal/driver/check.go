// Package driver orchestrates a check run: file discovery, per-file
// tokenize/parse/analyze in parallel, config-driven filtering, and the
// findings cache. One malformed file degrades to zero findings for that
// file and never takes the run down.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"mnalint/internal/checker"
	"mnalint/internal/config"
	"mnalint/internal/diag"
	"mnalint/internal/lexer"
	"mnalint/internal/observ"
	"mnalint/internal/parser"
	"mnalint/internal/source"
)

// Options configures a check run.
type Options struct {
	Config      config.Config
	Jobs        int  // 0 means one worker per CPU
	MaxFindings int  // cap per run, 0 means DefaultMaxFindings
	NoCache     bool // bypass the findings cache
	// Timer, when non-nil, records the run's phase durations.
	Timer *observ.Timer
}

// DefaultMaxFindings bounds a run's output when the caller does not.
const DefaultMaxFindings = 1000

// CheckResult is the outcome for one file.
type CheckResult struct {
	Path     string
	FileID   source.FileID
	Findings []checker.Finding
}

// RunResult is the outcome of a whole run.
type RunResult struct {
	FileSet *source.FileSet
	Results []CheckResult
	// Bag holds the run's findings as diagnostics, sorted, ready to render.
	Bag *diag.Bag
	// FilesChecked counts files actually analyzed (after excludes).
	FilesChecked int
}

// Check runs the checker over the given paths. Directories are walked for
// *.py files; explicit file arguments are checked as-is. The result order
// is deterministic regardless of worker scheduling.
func Check(ctx context.Context, paths []string, opts Options) (*RunResult, error) {
	discover := opts.Timer.Begin("discover")
	files, err := listPythonFiles(paths)
	if err != nil {
		return nil, err
	}

	baseDir := "."
	if len(paths) == 1 {
		if st, statErr := osStat(paths[0]); statErr == nil && st {
			baseDir = paths[0]
		}
	}
	fileSet := source.NewFileSetWithBase(baseDir)

	files = applyExcludes(files, baseDir, opts.Config)
	opts.Timer.End(discover, fmt.Sprintf("%d file(s)", len(files)))

	maxFindings := opts.MaxFindings
	if maxFindings <= 0 {
		maxFindings = DefaultMaxFindings
	}

	run := &RunResult{
		FileSet: fileSet,
		Results: make([]CheckResult, len(files)),
		Bag:     diag.NewBag(maxFindings),
	}
	if len(files) == 0 {
		return run, nil
	}

	// Load everything up front; the FileSet is not safe for concurrent
	// mutation and workers only read from it.
	load := opts.Timer.Begin("load")
	fileIDs := make([]source.FileID, len(files))
	loadErr := make([]error, len(files))
	for i, path := range files {
		fileIDs[i], loadErr[i] = fileSet.Load(path)
	}
	opts.Timer.End(load, "")

	var cache *DiskCache
	if !opts.NoCache {
		// A broken cache is not worth failing a lint run over.
		cache, _ = OpenDiskCache("mnalint")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = opts.Config.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	analyze := opts.Timer.Begin("analyze")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr[i] != nil {
				// Unreadable file: nothing to check. The path stays in the
				// results so callers can count it.
				run.Results[i] = CheckResult{Path: files[i]}
				return nil
			}

			file := fileSet.Get(fileIDs[i])
			findings := cachedAnalyze(cache, file)

			// Each worker writes only its own index; no locking needed.
			run.Results[i] = CheckResult{
				Path:     files[i],
				FileID:   fileIDs[i],
				Findings: findings,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	opts.Timer.End(analyze, fmt.Sprintf("%d worker(s)", min(jobs, len(files))))

	report := opts.Timer.Begin("collect")
	run.FilesChecked = len(files)
	for _, res := range run.Results {
		file := fileSet.Get(res.FileID)
		if file == nil {
			continue
		}
		for _, f := range res.Findings {
			if opts.Config.Ignored(f.Code) {
				continue
			}
			off := file.OffsetOf(f.Pos)
			run.Bag.Add(diag.Diagnostic{
				Severity: diag.SevWarning,
				Code:     f.Code,
				Message:  f.Message,
				Primary:  source.Span{File: file.ID, Start: off, End: off + 1},
			})
		}
	}
	run.Bag.Sort()
	opts.Timer.End(report, "")
	return run, nil
}

// AnalyzeFile is the single-file pipeline: lenient tokenize, call
// extraction, analysis. A file the tokenizer gives up on yields nil.
func AnalyzeFile(file *source.File) []checker.Finding {
	tokens := lexer.ScanLenient(file, lexer.Options{})
	if len(tokens) == 0 {
		return nil
	}
	tree := parser.Parse(tokens)
	return checker.Analyze(tree, tokens)
}

// cachedAnalyze consults the findings cache before analyzing. Raw findings
// are cached (before config filtering) so a config change never serves
// stale results.
func cachedAnalyze(cache *DiskCache, file *source.File) []checker.Finding {
	if cache != nil {
		if findings, ok := cache.Get(file.Hash); ok {
			return findings
		}
	}
	findings := AnalyzeFile(file)
	if cache != nil {
		_ = cache.Put(file.Hash, findings)
	}
	return findings
}

// listPythonFiles expands the argument paths into a sorted, de-duplicated
// list of Python files.
func listPythonFiles(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, path := range paths {
		isDir, err := osStat(path)
		if err != nil {
			return nil, err
		}
		if !isDir {
			add(path)
			continue
		}
		walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if strings.HasSuffix(p, ".py") {
				add(p)
			}
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}

	sort.Strings(files)
	return files, nil
}

func applyExcludes(files []string, baseDir string, cfg config.Config) []string {
	if len(cfg.Exclude) == 0 {
		return files
	}
	kept := files[:0]
	for _, f := range files {
		rel := f
		if r, err := source.RelativePath(f, baseDir); err == nil {
			rel = r
		}
		if !cfg.Excluded(rel) {
			kept = append(kept, f)
		}
	}
	return kept
}
