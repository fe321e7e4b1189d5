// Package config loads the tool's settings from the [tool.mnalint] table of
// a pyproject.toml, the conventional home for Python tooling configuration.
// Only host-side concerns live here (which codes to report, which paths to
// skip, parallelism); the checker core itself has no configuration surface.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"mnalint/internal/diag"
)

// FileName is the manifest the configuration is read from.
const FileName = "pyproject.toml"

// Config is the effective tool configuration.
type Config struct {
	// Ignore lists rule IDs (e.g. "MNA002") whose findings are dropped.
	Ignore []string `toml:"ignore"`
	// Exclude lists path globs (matched against slash-separated relative
	// paths) that are skipped entirely.
	Exclude []string `toml:"exclude"`
	// Jobs caps the number of files checked concurrently; 0 means one per
	// CPU.
	Jobs int `toml:"jobs"`
}

type pyproject struct {
	Tool struct {
		Mnalint Config `toml:"mnalint"`
	} `toml:"tool"`
}

// Default returns the zero configuration: every rule on, nothing excluded.
func Default() Config {
	return Config{}
}

// Load reads the [tool.mnalint] table from the given pyproject.toml. A file
// without that table yields the default configuration.
func Load(path string) (Config, error) {
	var cfg pyproject
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("tool", "mnalint") {
		return Default(), nil
	}
	return cfg.Tool.Mnalint, nil
}

// Discover walks upward from dir looking for a pyproject.toml and loads it.
// Finding none is not an error; the default configuration is returned.
func Discover(dir string) (Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Default(), err
	}
	for {
		path := filepath.Join(abs, FileName)
		if _, statErr := os.Stat(path); statErr == nil {
			return Load(path)
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return Default(), statErr
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return Default(), nil
		}
		abs = parent
	}
}

// Ignored reports whether findings with the given code are suppressed.
func (c Config) Ignored(code diag.Code) bool {
	for _, id := range c.Ignore {
		if diag.ParseCode(id) == code {
			return true
		}
	}
	return false
}

// Excluded reports whether the relative slash-separated path matches one of
// the exclude globs, either directly or through one of its parent segments.
func (c Config) Excluded(relPath string) bool {
	for _, pattern := range c.Exclude {
		if ok, err := filepath.Match(pattern, relPath); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(pattern, filepath.Base(relPath)); err == nil && ok {
			return true
		}
	}
	return false
}
