package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.cal")
	writeFile(t, path, "start()\r\n    writeLine(\"hi\")\n")

	src, err := NewLoader(nil, nil).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if src.Path != path {
		t.Errorf("Path = %q, want %q", src.Path, path)
	}
	want := []string{"start()", `    writeLine("hi")`}
	if !reflect.DeepEqual(src.Lines, want) {
		t.Errorf("Lines = %q, want %q", src.Lines, want)
	}
	if src.Size() != len("start()\r\n    writeLine(\"hi\")\n") {
		t.Errorf("Size() = %d", src.Size())
	}
}

func TestLoader_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.txt"), "start()\n")
	writeFile(t, filepath.Join(dir, "big.cal"), strings.Repeat("x", 64))
	if err := os.Mkdir(filepath.Join(dir, "sub.cal"), 0755); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(&Config{Extension: ".cal", MaxFileSize: 32}, nil)

	tests := []struct {
		name    string
		file    string
		wantErr error
	}{
		{"wrong extension", "notes.txt", ErrExtension},
		{"too large", "big.cal", ErrTooLarge},
		{"missing", "missing.cal", os.ErrNotExist},
		{"directory", "sub.cal", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Load(context.Background(), filepath.Join(dir, tt.file))
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoader_LoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewLoader(nil, nil).Load(ctx, "any.cal"); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestLoader_Discover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.cal"), "")
	writeFile(t, filepath.Join(dir, "b.txt"), "")
	writeFile(t, filepath.Join(dir, "nested", "c.cal"), "")
	writeFile(t, filepath.Join(dir, ".hidden", "d.cal"), "")
	writeFile(t, filepath.Join(dir, ".e.cal"), "")
	single := filepath.Join(dir, "b.txt")

	files, err := NewLoader(nil, nil).Discover([]string{dir, single, filepath.Join(dir, "a.cal")})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.cal"),
		single,
		filepath.Join(dir, "nested", "c.cal"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Discover() = %q, want %q", files, want)
	}
}

func TestLoader_DiscoverMissing(t *testing.T) {
	if _, err := NewLoader(nil, nil).Discover([]string{"/does/not/exist"}); err == nil {
		t.Error("Discover() should fail for a missing path")
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a\nb", []string{"a", "b"}},
		{"a\r\nb\r\n", []string{"a", "b"}},
		{"a\n\nb\n", []string{"a", "", "b"}},
		{"", []string{""}},
	}

	for _, tt := range tests {
		if got := SplitLines(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitLines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
