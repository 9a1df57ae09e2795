// Package writer provides a thread-safe, buffered writer for matched
// log records, grounded on
// original_source/infrastructure/file_writer.py's BufferedLogWriter.
package writer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ChristianF88/logfilter/record"
)

// DefaultBufferSize is the number of buffered items accumulated
// before an automatic flush; 1 disables buffering (immediate write).
const DefaultBufferSize = 50

// FileError reports a problem opening, creating, or writing the
// output file.
type FileError struct {
	Message string
	Path    string
	Cause   error
}

func (e *FileError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Path)
	}
	return e.Message
}

func (e *FileError) Unwrap() error { return e.Cause }

// BufferedLogWriter accumulates matched records in memory and
// flushes them to disk in batches, either when the buffer fills or on
// an explicit Flush/Close. Safe for concurrent use across worker
// goroutines writing from multiple files.
type BufferedLogWriter struct {
	outputPath  string
	bufferSize  int
	includePath bool

	mu           sync.Mutex
	buf          []string
	file         *os.File
	w            *bufio.Writer
	totalWritten int
}

// New creates a BufferedLogWriter for outputPath, creating parent
// directories as needed. bufferSize <= 0 falls back to
// DefaultBufferSize; 1 means write-through (no buffering).
func New(outputPath string, bufferSize int, includePath bool) (*BufferedLogWriter, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &FileError{Message: "cannot create output directory", Path: dir, Cause: err}
	}
	return &BufferedLogWriter{
		outputPath:  outputPath,
		bufferSize:  bufferSize,
		includePath: includePath,
	}, nil
}

// Open opens the output file for writing, truncating any existing
// content.
func (w *BufferedLogWriter) Open() error {
	f, err := os.Create(w.outputPath)
	if err != nil {
		return &FileError{Message: "cannot open output file", Path: w.outputPath, Cause: err}
	}
	w.mu.Lock()
	w.file = f
	w.w = bufio.NewWriterSize(f, 64*1024)
	w.mu.Unlock()
	return nil
}

// Close flushes any buffered content and closes the output file.
func (w *BufferedLogWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	flushErr := w.flushLocked()
	if w.file != nil {
		_ = w.file.Close() // best effort, mirroring the original's swallowed close error
		w.file = nil
		w.w = nil
	}
	return flushErr
}

// WriteRecord buffers a matched LogRecord's content, prefixed with
// "sourcePath: " when includePath is set and sourcePath is non-empty
// (spec §6: "the line `<source_path>: ` precedes the record
// content"), matching the original's
// f"{file_meta.path}: {record.content}" line form rather than a
// separate header block.
func (w *BufferedLogWriter) WriteRecord(rec record.LogRecord, sourcePath string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, w.prefixed(rec.Content, sourcePath), "\n")

	if len(w.buf) >= w.bufferSize {
		return w.flushLocked()
	}
	return nil
}

// WriteResult buffers a SearchResult, using its highlighted content
// when useHighlight is true and highlighting was computed, otherwise
// the record's raw content.
func (w *BufferedLogWriter) WriteResult(res record.SearchResult, sourcePath string, useHighlight bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	content := res.Record.Content
	if useHighlight && res.HasHighlight {
		content = res.HighlightedContent
	}
	w.buf = append(w.buf, w.prefixed(content, sourcePath), "\n")

	if len(w.buf) >= w.bufferSize {
		return w.flushLocked()
	}
	return nil
}

// prefixed prepends "sourcePath: " to content when includePath is set
// and sourcePath is non-empty, otherwise returns content unchanged.
func (w *BufferedLogWriter) prefixed(content, sourcePath string) string {
	if w.includePath && sourcePath != "" {
		return fmt.Sprintf("%s: %s", sourcePath, content)
	}
	return content
}

// WriteText buffers arbitrary text, such as a summary header or
// footer line.
func (w *BufferedLogWriter) WriteText(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, text)
	if len(w.buf) >= w.bufferSize {
		return w.flushLocked()
	}
	return nil
}

// Flush writes any buffered content to disk immediately.
func (w *BufferedLogWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushLocked()
}

func (w *BufferedLogWriter) flushLocked() error {
	if len(w.buf) == 0 {
		return nil
	}
	if w.w == nil {
		return &FileError{Message: "cannot flush: output file not open", Path: w.outputPath}
	}
	for _, chunk := range w.buf {
		if _, err := w.w.WriteString(chunk); err != nil {
			return &FileError{Message: "error writing to output file", Path: w.outputPath, Cause: err}
		}
	}
	if err := w.w.Flush(); err != nil {
		return &FileError{Message: "error writing to output file", Path: w.outputPath, Cause: err}
	}
	w.totalWritten += len(w.buf)
	w.buf = w.buf[:0]
	return nil
}

// TotalWritten returns the number of buffer items written to disk so
// far.
func (w *BufferedLogWriter) TotalWritten() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.totalWritten
}
