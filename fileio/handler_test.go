package fileio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func collectLines(t *testing.T, h Handler) ([]string, error) {
	t.Helper()
	var lines []string
	for line, err := range h.ReadLines() {
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func TestNewHandler_MissingFile(t *testing.T) {
	if _, err := NewHandler(filepath.Join(t.TempDir(), "nope.log")); err == nil {
		t.Error("expected FileError for a non-existent path")
	}
}

func TestNewHandler_DispatchByExtension(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "app.log")
	if err := os.WriteFile(plain, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	h, err := NewHandler(plain)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := h.(*PlainHandler); !ok {
		t.Errorf("expected *PlainHandler for .log, got %T", h)
	}

	gz := filepath.Join(dir, "app.log.gz")
	writeGzip(t, gz, "one\ntwo\n")
	h, err = NewHandler(gz)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := h.(*GzipHandler); !ok {
		t.Errorf("expected *GzipHandler for .gz, got %T", h)
	}
}

func writeGzip(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	gw := gzip.NewWriter(f)
	if _, err := gw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestPlainHandler_ReadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	if err := os.WriteFile(path, []byte("alpha\nbeta\ngamma"), 0o644); err != nil {
		t.Fatal(err)
	}
	h, err := NewHandler(path)
	if err != nil {
		t.Fatal(err)
	}
	lines, err := collectLines(t, h)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"alpha", "beta", "gamma"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestPlainHandler_StripsCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	if err := os.WriteFile(path, []byte("one\r\ntwo\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	h, _ := NewHandler(path)
	lines, err := collectLines(t, h)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 || lines[0] != "one" || lines[1] != "two" {
		t.Errorf("unexpected lines: %v", lines)
	}
}

func TestGzipHandler_ReadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log.gz")
	writeGzip(t, path, "first\nsecond\n")
	h, err := NewHandler(path)
	if err != nil {
		t.Fatal(err)
	}
	lines, err := collectLines(t, h)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 || lines[0] != "first" || lines[1] != "second" {
		t.Errorf("unexpected lines: %v", lines)
	}
}

func TestGzipHandler_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.log.gz")
	if err := os.WriteFile(path, []byte("not a gzip file"), 0o644); err != nil {
		t.Fatal(err)
	}
	h, err := NewHandler(path)
	if err != nil {
		t.Fatal(err)
	}
	_, err = collectLines(t, h)
	if err == nil {
		t.Fatal("expected an error reading a corrupt gzip file")
	}
	var fe *FileError
	if !asFileError(err, &fe) {
		t.Fatalf("expected *FileError, got %T (%v)", err, err)
	}
}

func asFileError(err error, target **FileError) bool {
	fe, ok := err.(*FileError)
	if !ok {
		return false
	}
	*target = fe
	return true
}

func TestPlainHandler_LazyPartialConsumption(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	h, _ := NewHandler(path)

	var seen []string
	for line, err := range h.ReadLines() {
		if err != nil {
			t.Fatal(err)
		}
		seen = append(seen, line)
		if len(seen) == 1 {
			break
		}
	}
	if len(seen) != 1 || seen[0] != "one" {
		t.Errorf("expected early break to stop after first line, got %v", seen)
	}
}
