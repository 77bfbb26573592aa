package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
)

const generated = "// Code generated by fanout. DO NOT EDIT.\n\npackage p\n"

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		errMsg string
	}{
		{name: "simple", path: "fanout_gen.go"},
		{name: "nested", path: "github.com/x/y/fanout_gen.go"},
		{name: "dots in names", path: "a..b/c.go"},
		{name: "empty", path: "", errMsg: "empty"},
		{name: "absolute", path: "/etc/passwd", errMsg: "absolute paths not allowed"},
		{name: "drive letter", path: "C:/Windows/x.go", errMsg: "absolute paths not allowed"},
		{name: "backslash", path: `a\b.go`, errMsg: "separator"},
		{name: "traversal", path: "a/../b.go", errMsg: "path traversal not allowed"},
		{name: "leading traversal", path: "../b.go", errMsg: "path traversal not allowed"},
		{name: "dot segment", path: "./a.go", errMsg: "not clean"},
		{name: "double slash", path: "a//b.go", errMsg: "not clean"},
		{name: "trailing slash", path: "a/", errMsg: "not clean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("ValidatePath(%q) error = %v", tt.path, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ValidatePath(%q) error = %v, want containing %q", tt.path, err, tt.errMsg)
			}
		})
	}
}

func TestIsGenerated(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"header", generated, true},
		{"other generator", "// Code generated by stringer; DO NOT EDIT.\n\npackage p\n", true},
		{"hand written", "// Package p does things.\npackage p\n", false},
		{"header after package clause", "package p\n\n// Code generated by fanout. DO NOT EDIT.\n", false},
		{"not go", "hello world", false},
		{"stub", "package p\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsGenerated([]byte(tt.src)); got != tt.want {
				t.Errorf("IsGenerated() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMemorySink(t *testing.T) {
	ctx := context.Background()
	sink := NewMemorySink()

	content := []byte(generated)
	if err := sink.WriteFile(ctx, "b/fanout_gen.go", content); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := sink.WriteFile(ctx, "a/fanout_gen.go", []byte("a")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	// The sink keeps its own copy.
	content[0] = 'X'
	if got := string(sink.Get("b/fanout_gen.go")); got != generated {
		t.Errorf("Get() = %q, want %q", got, generated)
	}
	sink.Get("b/fanout_gen.go")[0] = 'Y'
	if got := sink.Files()["b/fanout_gen.go"]; string(got) != generated {
		t.Errorf("Files() returned modified content %q", got)
	}

	if got := sink.Paths(); !slices.Equal(got, []string{"a/fanout_gen.go", "b/fanout_gen.go"}) {
		t.Errorf("Paths() = %v", got)
	}
	if got := sink.Get("missing.go"); got != nil {
		t.Errorf("Get(missing) = %q, want nil", got)
	}

	if err := sink.WriteFile(ctx, "../escape.go", nil); err == nil {
		t.Error("WriteFile() should reject traversal")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := sink.WriteFile(cancelled, "c.go", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("WriteFile() with cancelled context error = %v", err)
	}
}

func TestMemorySink_Concurrent(t *testing.T) {
	ctx := context.Background()
	sink := NewMemorySink()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			path := fmt.Sprintf("pkg%d/fanout_gen.go", i%10)
			if err := sink.WriteFile(ctx, path, []byte(generated)); err != nil {
				t.Errorf("WriteFile() error = %v", err)
			}
			_ = sink.Files()
		})
	}
	wg.Wait()

	if got := len(sink.Paths()); got != 10 {
		t.Errorf("len(Paths()) = %d, want 10", got)
	}
}

func TestFilesystemSink(t *testing.T) {
	ctx := context.Background()

	t.Run("creates file and parents", func(t *testing.T) {
		dir := t.TempDir()
		sink := NewFilesystemSink(dir)

		if err := sink.WriteFile(ctx, "a/b/fanout_gen.go", []byte(generated)); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		got, err := os.ReadFile(filepath.Join(dir, "a", "b", "fanout_gen.go"))
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != generated {
			t.Errorf("content = %q", got)
		}
		info, err := os.Stat(filepath.Join(dir, "a", "b", "fanout_gen.go"))
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0644 {
			t.Errorf("mode = %o, want 644", info.Mode().Perm())
		}
	})

	t.Run("respects mode", func(t *testing.T) {
		dir := t.TempDir()
		sink := NewFilesystemSink(dir)
		sink.Mode = 0600

		if err := sink.WriteFile(ctx, "x.go", []byte(generated)); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		info, err := os.Stat(filepath.Join(dir, "x.go"))
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("mode = %o, want 600", info.Mode().Perm())
		}
	})

	t.Run("replaces generated file", func(t *testing.T) {
		dir := t.TempDir()
		sink := NewFilesystemSink(dir)
		path := filepath.Join(dir, "fanout_gen.go")
		if err := os.WriteFile(path, []byte(generated+"// old\n"), 0644); err != nil {
			t.Fatal(err)
		}

		if err := sink.WriteFile(ctx, "fanout_gen.go", []byte(generated)); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		got, _ := os.ReadFile(path)
		if string(got) != generated {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("protects hand-written file", func(t *testing.T) {
		dir := t.TempDir()
		sink := NewFilesystemSink(dir)
		path := filepath.Join(dir, "handwritten.go")
		original := "package p\n\nfunc Keep() {}\n"
		if err := os.WriteFile(path, []byte(original), 0644); err != nil {
			t.Fatal(err)
		}

		err := sink.WriteFile(ctx, "handwritten.go", []byte(generated))
		if !errors.Is(err, ErrNotGenerated) {
			t.Fatalf("WriteFile() error = %v, want ErrNotGenerated", err)
		}
		got, _ := os.ReadFile(path)
		if string(got) != original {
			t.Errorf("hand-written file was modified: %q", got)
		}

		sink.Protect = false
		if err := sink.WriteFile(ctx, "handwritten.go", []byte(generated)); err != nil {
			t.Errorf("WriteFile() without Protect error = %v", err)
		}
	})

	t.Run("no overwrite", func(t *testing.T) {
		dir := t.TempDir()
		sink := NewFilesystemSink(dir)
		sink.Overwrite = false

		if err := sink.WriteFile(ctx, "x.go", []byte(generated)); err != nil {
			t.Fatalf("first WriteFile() error = %v", err)
		}
		err := sink.WriteFile(ctx, "x.go", []byte(generated))
		if err == nil || !strings.Contains(err.Error(), "already exists") {
			t.Errorf("second WriteFile() error = %v, want already exists", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		dir := t.TempDir()
		sink := NewFilesystemSink(dir)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		if err := sink.WriteFile(cancelled, "x.go", []byte(generated)); !errors.Is(err, context.Canceled) {
			t.Errorf("WriteFile() error = %v, want context.Canceled", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "x.go")); !os.IsNotExist(err) {
			t.Error("file should not exist after cancelled write")
		}
	})

	t.Run("rejects unsafe paths", func(t *testing.T) {
		sink := NewFilesystemSink(t.TempDir())
		for _, path := range []string{"a/../../escape.go", "/etc/passwd", "C:/x.go", "."} {
			if err := sink.WriteFile(ctx, path, []byte(generated)); err == nil {
				t.Errorf("WriteFile(%q) should fail", path)
			}
		}
	})
}

func TestFilesystemSink_Concurrent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	sink := NewFilesystemSink(dir)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			path := fmt.Sprintf("dir/file%d.go", i%10)
			if err := sink.WriteFile(ctx, path, []byte(generated)); err != nil {
				t.Errorf("WriteFile() error = %v", err)
			}
		})
	}
	wg.Wait()

	entries, err := os.ReadDir(filepath.Join(dir, "dir"))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 10 {
		t.Errorf("got %d files, want 10", len(entries))
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".fanout-") {
			t.Errorf("temp file left behind: %s", entry.Name())
		}
	}
}
