package driver

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"mnalint/internal/checker"
	"mnalint/internal/diag"
	"mnalint/internal/source"
)

// Current schema version - increment when the payload format changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores per-file findings keyed by the file's content hash, so
// repeated runs skip files that have not changed. Thread-safe.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type cachedFinding struct {
	Line    int
	Col     int
	Code    uint16
	Message string
}

type diskPayload struct {
	Schema   uint16
	Findings []cachedFinding
}

// OpenDiskCache initializes a disk cache at the standard location
// ($XDG_CACHE_HOME or ~/.cache, under app).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "files", hexKey+".mp")
}

// Put serializes the findings for a content hash. Failures are the
// caller's to ignore; the cache is an optimization, not a store of record.
func (c *DiskCache) Put(key [32]byte, findings []checker.Finding) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := diskPayload{Schema: diskCacheSchemaVersion}
	for _, f := range findings {
		payload.Findings = append(payload.Findings, cachedFinding{
			Line:    f.Pos.Line,
			Col:     f.Pos.Col,
			Code:    uint16(f.Code),
			Message: f.Message,
		})
	}

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replace.
	return os.Rename(f.Name(), p)
}

// Get loads the findings for a content hash. A miss, a schema mismatch, or
// a corrupt entry all read as "not cached".
func (c *DiskCache) Get(key [32]byte) ([]checker.Finding, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	defer func() {
		_ = f.Close()
	}()

	var payload diskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false
	}

	findings := make([]checker.Finding, 0, len(payload.Findings))
	for _, cf := range payload.Findings {
		findings = append(findings, checker.Finding{
			Pos:     source.Pos{Line: cf.Line, Col: cf.Col},
			Code:    diag.Code(cf.Code),
			Message: cf.Message,
		})
	}
	return findings, true
}

// DropAll removes every cached entry, useful after upgrades.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "files"))
}
