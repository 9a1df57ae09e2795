// Package scanner discovers candidate log files under a root
// directory and attaches skip-reason metadata to each, per
// SPEC_FULL.md §4.4.1. Grounded on
// original_source/infrastructure/file_scanner.py.
package scanner

import (
	"errors"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExtensions matches the original scanner's DEFAULT_EXTENSIONS.
var DefaultExtensions = map[string]bool{".log": true, ".gz": true}

var compressedExtensions = map[string]bool{".gz": true, ".bz2": true, ".xz": true, ".zip": true}

// FileMetadata describes one discovered candidate file and, if it is
// to be excluded from processing, why.
type FileMetadata struct {
	Path         string
	SizeBytes    int64
	Extension    string
	IsCompressed bool
	IsReadable   bool
	SkipReason   string // empty means eligible
}

func (m FileMetadata) SizeMB() float64 { return float64(m.SizeBytes) / (1024 * 1024) }

func (m FileMetadata) ShouldSkip() bool { return m.SkipReason != "" || !m.IsReadable }

// Options configures a Scan call.
type Options struct {
	RootPath          string
	FileMasks         []string // case-insensitive substrings of the filename
	IncludePatterns   []string // glob patterns (doublestar syntax) matched against the filename
	ExcludePatterns   []string
	AllowedExtensions map[string]bool // nil means DefaultExtensions
	MaxFileSizeMB     int             // 0 means unlimited
	Recursive         bool
}

// Scan walks opts.RootPath lazily, yielding FileMetadata for every
// regular file discovered, annotated with a skip reason (empty if
// eligible). Only a missing or non-directory root path is surfaced
// through the iterator's error value; unreadable subdirectories are
// skipped silently and the walk continues. Metadata-level problems
// (unreadable individual files, stat failures) are recorded as skip
// reasons instead, matching the original's per-file error handling.
func Scan(opts Options) iter.Seq2[FileMetadata, error] {
	return func(yield func(FileMetadata, error) bool) {
		info, err := os.Stat(opts.RootPath)
		if err != nil {
			yield(FileMetadata{}, &scanError{"Root path does not exist", opts.RootPath, err})
			return
		}
		if !info.IsDir() {
			yield(FileMetadata{}, &scanError{"Root path is not a directory", opts.RootPath, nil})
			return
		}

		allowed := opts.AllowedExtensions
		if allowed == nil {
			allowed = DefaultExtensions
		}

		walkFn := func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // skip unreadable subtrees, keep scanning siblings
			}
			if d.IsDir() {
				if !opts.Recursive && path != opts.RootPath {
					return filepath.SkipDir
				}
				return nil
			}
			meta := buildMetadata(path, opts, allowed)
			if !yield(meta, nil) {
				return fs.SkipAll
			}
			return nil
		}

		_ = filepath.WalkDir(opts.RootPath, walkFn)
	}
}

func buildMetadata(path string, opts Options, allowed map[string]bool) FileMetadata {
	ext := strings.ToLower(filepath.Ext(path))
	isCompressed := compressedExtensions[ext]
	name := filepath.Base(path)

	if !allowed[ext] {
		return FileMetadata{Path: path, Extension: ext, IsCompressed: isCompressed, IsReadable: true, SkipReason: "extension-not-allowed"}
	}

	info, err := os.Stat(path)
	if err != nil {
		return FileMetadata{Path: path, Extension: ext, IsCompressed: isCompressed, IsReadable: true, SkipReason: "stat-error: " + err.Error()}
	}
	size := info.Size()

	if !matchesFileMask(name, opts.FileMasks) {
		return FileMetadata{Path: path, SizeBytes: size, Extension: ext, IsCompressed: isCompressed, IsReadable: true, SkipReason: "name-filter"}
	}
	if len(opts.IncludePatterns) > 0 && !matchesAny(name, opts.IncludePatterns) {
		return FileMetadata{Path: path, SizeBytes: size, Extension: ext, IsCompressed: isCompressed, IsReadable: true, SkipReason: "include-pattern"}
	}
	if len(opts.ExcludePatterns) > 0 && matchesAny(name, opts.ExcludePatterns) {
		return FileMetadata{Path: path, SizeBytes: size, Extension: ext, IsCompressed: isCompressed, IsReadable: true, SkipReason: "exclude-pattern"}
	}
	if opts.MaxFileSizeMB > 0 {
		sizeMB := float64(size) / (1024 * 1024)
		if sizeMB > float64(opts.MaxFileSizeMB) {
			return FileMetadata{Path: path, SizeBytes: size, Extension: ext, IsCompressed: isCompressed, IsReadable: true, SkipReason: "size-limit"}
		}
	}
	if !isReadable(path) {
		return FileMetadata{Path: path, SizeBytes: size, Extension: ext, IsCompressed: isCompressed, IsReadable: false, SkipReason: "access-denied"}
	}

	return FileMetadata{Path: path, SizeBytes: size, Extension: ext, IsCompressed: isCompressed, IsReadable: true}
}

func matchesFileMask(name string, masks []string) bool {
	if len(masks) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, mask := range masks {
		if strings.Contains(lower, strings.ToLower(mask)) {
			return true
		}
	}
	return false
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

func isReadable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	buf := make([]byte, 1)
	_, err = f.Read(buf)
	return err == nil || errors.Is(err, io.EOF)
}

type scanError struct {
	message string
	path    string
	cause   error
}

func (e *scanError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.path + " (" + e.cause.Error() + ")"
	}
	return e.message + ": " + e.path
}

func (e *scanError) Unwrap() error { return e.cause }
