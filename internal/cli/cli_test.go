package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/bmpedit/pkg/bitmap"
	"github.com/matzehuels/bmpedit/pkg/bitmap/transform"
	"github.com/matzehuels/bmpedit/pkg/bmp"
	"github.com/matzehuels/bmpedit/pkg/errors"
	"github.com/matzehuels/bmpedit/pkg/observability"
	"github.com/matzehuels/bmpedit/pkg/pixel"
)

// testEnv writes a config pointing the cache into a temp dir and a sample
// bitmap next to it.
func testEnv(t *testing.T) (dir, cfgPath, input string, g *bitmap.Grid) {
	t.Helper()
	dir = t.TempDir()
	cfgPath = filepath.Join(dir, "config.toml")
	cfg := "[cache]\ndir = \"" + filepath.ToSlash(filepath.Join(dir, "cache")) + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	g = bitmap.New(4, 2)
	for i := range g.Pixels {
		g.Pixels[i] = pixel.Pack(i*32, i*16, 255-i*8)
	}
	data, err := bmp.Encode(g)
	if err != nil {
		t.Fatal(err)
	}
	input = filepath.Join(dir, "in.bmp")
	if err := os.WriteFile(input, data, 0644); err != nil {
		t.Fatal(err)
	}
	return dir, cfgPath, input, g
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(observability.Reset)
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"apply", "cache", "completion", "edit", "info", "serve"}
	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	for _, name := range want {
		found := false
		for _, g := range got {
			if g == name {
				found = true
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered (have %v)", name, got)
		}
	}
}

func TestApplyCommand(t *testing.T) {
	dir, cfg, input, g := testEnv(t)
	out := filepath.Join(dir, "out.bmp")

	if _, err := execute(t, "--config", cfg, "apply", input, "-t", "m, grayscale", "-o", out); err != nil {
		t.Fatalf("apply: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	got, err := bmp.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if want := transform.Grayscale(transform.Mirror(g)); !got.Equal(want) {
		t.Errorf("output = %v, want %v", got, want)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "cache"))
	if err != nil || len(entries) == 0 {
		t.Errorf("apply should populate the configured cache dir (err %v)", err)
	}
}

func TestApplyCommandErrors(t *testing.T) {
	dir, cfg, input, _ := testEnv(t)

	_, err := execute(t, "--config", cfg, "apply", input, "-t", "blur", "-o", filepath.Join(dir, "x.bmp"))
	if !errors.Is(err, errors.ErrCodeUnknownTransform) {
		t.Errorf("unknown transform: err = %v, want UNKNOWN_TRANSFORM", err)
	}

	if _, err := execute(t, "--config", cfg, "apply", input, "-t", "mirror"); err == nil {
		t.Error("missing --output should fail")
	}
}

func TestInfoCommandRejectsNonBitmap(t *testing.T) {
	dir, cfg, _, _ := testEnv(t)
	bad := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(bad, []byte("hello, definitely not a bitmap file at all......................"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := execute(t, "--config", cfg, "info", bad)
	if !errors.Is(err, errors.ErrCodeInvalidMagic) {
		t.Errorf("info: err = %v, want INVALID_MAGIC", err)
	}
}

func TestCachePathCommand(t *testing.T) {
	dir, cfg, _, _ := testEnv(t)
	out, err := execute(t, "--config", cfg, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got, want := strings.TrimSpace(out), filepath.ToSlash(filepath.Join(dir, "cache")); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir, cfg, input, _ := testEnv(t)
	if _, err := execute(t, "--config", cfg, "apply", input, "-t", "rotate", "-o", filepath.Join(dir, "r.bmp")); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := execute(t, "--config", cfg, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "cache"))
	if len(entries) != 0 {
		t.Errorf("cache dir still has %d entries after clear", len(entries))
	}
}

func TestBadConfigFails(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfg, []byte("[cache]\nbackend = \"s3\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := execute(t, "--config", cfg, "cache", "path")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestParseOps(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"mirror", []string{"mirror"}},
		{"mirror,rotate", []string{"mirror", "rotate"}},
		{" m , ,o ", []string{"m", "o"}},
	}
	for _, tt := range tests {
		if got := parseOps(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseOps(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
