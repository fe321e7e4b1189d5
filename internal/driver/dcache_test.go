package driver_test

import (
	"crypto/sha256"
	"reflect"
	"testing"

	"mnalint/internal/checker"
	"mnalint/internal/diag"
	"mnalint/internal/driver"
	"mnalint/internal/source"
)

func openTestCache(t *testing.T) *driver.DiskCache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := driver.OpenDiskCache("mnalint-test")
	if err != nil {
		t.Fatalf("OpenDiskCache failed: %v", err)
	}
	return cache
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache := openTestCache(t)
	key := sha256.Sum256([]byte("foo(a = 1)\n"))

	findings := []checker.Finding{
		{
			Pos:     source.Pos{Line: 1, Col: 6},
			Code:    diag.SingleLineExtraSpaces,
			Message: "MNA002 unexpected spaces around '=' in single-line function call",
		},
	}
	if err := cache.Put(key, findings); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok := cache.Get(key)
	if !ok {
		t.Fatal("Get missed a just-written entry")
	}
	if !reflect.DeepEqual(got, findings) {
		t.Errorf("Get = %+v, want %+v", got, findings)
	}
}

func TestDiskCacheEmptyFindings(t *testing.T) {
	// A clean file caches as an empty entry; the hit still skips re-analysis.
	cache := openTestCache(t)
	key := sha256.Sum256([]byte("foo(a=1)\n"))

	if err := cache.Put(key, nil); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, ok := cache.Get(key)
	if !ok {
		t.Fatal("Get missed an empty entry")
	}
	if len(got) != 0 {
		t.Errorf("Get = %+v, want no findings", got)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache := openTestCache(t)
	key := sha256.Sum256([]byte("never stored"))
	if _, ok := cache.Get(key); ok {
		t.Error("Get hit for a key that was never stored")
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache := openTestCache(t)
	key := sha256.Sum256([]byte("content"))
	if err := cache.Put(key, nil); err != nil {
		t.Fatal(err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll failed: %v", err)
	}
	if _, ok := cache.Get(key); ok {
		t.Error("Get hit after DropAll")
	}
}

func TestDiskCacheNilReceiver(t *testing.T) {
	var cache *driver.DiskCache
	key := sha256.Sum256([]byte("x"))
	if err := cache.Put(key, nil); err != nil {
		t.Errorf("nil Put = %v, want nil", err)
	}
	if _, ok := cache.Get(key); ok {
		t.Error("nil Get should miss")
	}
	if err := cache.DropAll(); err != nil {
		t.Errorf("nil DropAll = %v, want nil", err)
	}
}
