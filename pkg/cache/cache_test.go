package cache

import (
	"bytes"
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
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Errorf("Get = %v, %v, want miss", data, hit)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h2 := Hash([]byte("hello")); h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h3 := Hash([]byte("world")); h1 == h3 {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("len(Hash) = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	in := Hash([]byte("input"))

	base := k.ResultKey(in, ResultKeyOpts{Ops: []string{"mirror", "rotate"}})
	if !strings.HasPrefix(base, "result:") {
		t.Errorf("ResultKey = %q, want result: prefix", base)
	}
	if again := k.ResultKey(in, ResultKeyOpts{Ops: []string{"mirror", "rotate"}}); again != base {
		t.Error("ResultKey should be deterministic")
	}

	tests := []struct {
		name string
		hash string
		opts ResultKeyOpts
	}{
		{"order", in, ResultKeyOpts{Ops: []string{"rotate", "mirror"}}},
		{"compat", in, ResultKeyOpts{Ops: []string{"mirror", "rotate"}, Compat: true}},
		{"input", Hash([]byte("other")), ResultKeyOpts{Ops: []string{"mirror", "rotate"}}},
		{"fewer ops", in, ResultKeyOpts{Ops: []string{"mirror"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := k.ResultKey(tt.hash, tt.opts); got == base {
				t.Errorf("ResultKey collided with base key %q", got)
			}
		})
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	k := NewScopedKeyer(inner, "api:")
	opts := ResultKeyOpts{Ops: []string{"grayscale"}}

	got := k.ResultKey("abc", opts)
	want := "api:" + inner.ResultKey("abc", opts)
	if got != want {
		t.Errorf("ResultKey = %q, want %q", got, want)
	}

	if got := NewScopedKeyer(nil, "x:").ResultKey("abc", opts); got != "x:"+inner.ResultKey("abc", opts) {
		t.Errorf("nil inner keyer: ResultKey = %q", got)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// compressible payload, like BMP padding and flat regions
	payload := bytes.Repeat([]byte{0x42, 0, 0, 0xff}, 4096)

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Fatal("Get on empty cache should miss")
	}
	if err := c.Set(ctx, "k", payload, time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get = %v, %v, want hit", hit, err)
	}
	if !bytes.Equal(data, payload) {
		t.Error("Get returned different bytes than Set stored")
	}

	raw, err := os.ReadFile(c.path("k"))
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}
	if len(raw) >= len(payload) {
		t.Errorf("entry size = %d, want compressed below %d", len(raw), len(payload))
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheEmptyValue(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "empty", nil, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "empty")
	if err != nil || !hit || len(data) != 0 {
		t.Errorf("Get = %v, %v, %v, want empty hit", data, hit, err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "short", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("short")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `{not json`},
		{"negative size", `{"data":"","size":-1}`},
		{"not zstd", `{"data":"AAAA","size":3}`},
		{"size mismatch", ""},
	}

	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := c.path(tt.name)
			if tt.content == "" {
				if err := c.Set(ctx, tt.name, []byte("payload"), 0); err != nil {
					t.Fatal(err)
				}
				raw, err := os.ReadFile(p)
				if err != nil {
					t.Fatal(err)
				}
				tt.content = strings.Replace(string(raw), `"size":7`, `"size":9`, 1)
			}
			if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(p, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, hit, err := c.Get(ctx, tt.name)
			if err != nil || hit {
				t.Errorf("Get = %v, %v, want silent miss", hit, err)
			}
			if _, err := os.Stat(p); !os.IsNotExist(err) {
				t.Errorf("corrupt entry still on disk: %v", err)
			}
		})
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%q): %v", k, err)
		}
	}
	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Clear should miss")
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache dir should survive Clear: %v", err)
	}
}
