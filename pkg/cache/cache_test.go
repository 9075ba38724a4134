package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set() error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %q, %v, %v, want nil, false, nil", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}

	if _, hit, _ := c.Get(ctx, "svg"); hit {
		t.Error("Get() on empty cache hit")
	}
	if err := c.Set(ctx, "svg", []byte("<svg/>"), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, hit, err := c.Get(ctx, "svg")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Errorf("Get() = %q, %v, %v, want <svg/>, true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "svg"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "svg"); hit {
		t.Error("Get() after Delete() hit")
	}
	if err := c.Delete(ctx, "svg"); err != nil {
		t.Errorf("Delete() of missing key error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get() of expired entry hit")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get() = %v, %v, want miss without error", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%q) error: %v", k, err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get() after Clear() hit")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash() is not deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Hash() collides for different inputs")
	}
	if len(h1) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := ArtifactKeyOpts{Format: "svg", Width: 500, Height: 500}

	tests := []struct {
		name string
		opts ArtifactKeyOpts
	}{
		{"format", ArtifactKeyOpts{Format: "png", Width: 500, Height: 500}},
		{"width", ArtifactKeyOpts{Format: "svg", Width: 600, Height: 500}},
		{"heatmap", ArtifactKeyOpts{Format: "svg", Width: 500, Height: 500, HeatMap: true}},
		{"remove", ArtifactKeyOpts{Format: "svg", Width: 500, Height: 500, RemoveDonors: "count == 0"}},
		{"select", ArtifactKeyOpts{Format: "svg", Width: 500, Height: 500, Select: []float64{0, 0, 10, 10}}},
		{"config", ArtifactKeyOpts{Format: "svg", Width: 500, Height: 500, ConfigHash: "abc"}},
	}
	want := k.ArtifactKey("ds", base)
	if !strings.HasPrefix(want, "artifact:svg:") {
		t.Errorf("ArtifactKey() = %q, want prefix artifact:svg:", want)
	}
	if k.ArtifactKey("ds", base) != want {
		t.Error("ArtifactKey() is not deterministic")
	}
	if k.ArtifactKey("other", base) == want {
		t.Error("ArtifactKey() ignores the dataset hash")
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if k.ArtifactKey("ds", tt.opts) == want {
				t.Errorf("ArtifactKey() did not change with %s", tt.name)
			}
		})
	}
}

func TestScopedKeyer(t *testing.T) {
	opts := ArtifactKeyOpts{Format: "json"}
	scoped := NewScopedKeyer(nil, "v1:")
	got := scoped.ArtifactKey("ds", opts)
	want := "v1:" + NewDefaultKeyer().ArtifactKey("ds", opts)
	if got != want {
		t.Errorf("ArtifactKey() = %q, want %q", got, want)
	}
}
