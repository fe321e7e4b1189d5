package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"mnalint/internal/config"
	"mnalint/internal/diag"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFullTable(t *testing.T) {
	path := writeFile(t, t.TempDir(), config.FileName, `
[tool.mnalint]
ignore = ["MNA002"]
exclude = ["generated_*.py", "vendor/*"]
jobs = 4
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "MNA002" {
		t.Errorf("Ignore = %v", cfg.Ignore)
	}
	if len(cfg.Exclude) != 2 {
		t.Errorf("Exclude = %v", cfg.Exclude)
	}
	if cfg.Jobs != 4 {
		t.Errorf("Jobs = %d, want 4", cfg.Jobs)
	}
}

func TestLoadWithoutToolTable(t *testing.T) {
	// A pyproject.toml that belongs to some other tool yields defaults.
	path := writeFile(t, t.TempDir(), config.FileName, `
[tool.black]
line-length = 100
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Ignore) != 0 || len(cfg.Exclude) != 0 || cfg.Jobs != 0 {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadMalformedTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), config.FileName, "[tool.mnalint\nbroken")
	if _, err := config.Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestDiscoverWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, config.FileName, "[tool.mnalint]\nignore = [\"MNA001\"]\n")

	nested := filepath.Join(root, "src", "pkg")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Discover(nested)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "MNA001" {
		t.Errorf("Ignore = %v, want [MNA001]", cfg.Ignore)
	}
}

func TestDiscoverNoManifest(t *testing.T) {
	cfg, err := config.Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(cfg.Ignore) != 0 {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestIgnored(t *testing.T) {
	cfg := config.Config{Ignore: []string{"MNA002", "nonsense"}}
	if !cfg.Ignored(diag.SingleLineExtraSpaces) {
		t.Error("MNA002 should be ignored")
	}
	if cfg.Ignored(diag.MultilineMissingSpaces) {
		t.Error("MNA001 should not be ignored")
	}
}

func TestExcluded(t *testing.T) {
	cfg := config.Config{Exclude: []string{"generated_*.py", "tests/*"}}
	tests := []struct {
		path string
		want bool
	}{
		{"generated_models.py", true},
		{"pkg/generated_models.py", true}, // matched via the base name
		{"tests/helper.py", true},
		{"src/app.py", false},
	}
	for _, tc := range tests {
		if got := cfg.Excluded(tc.path); got != tc.want {
			t.Errorf("Excluded(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
