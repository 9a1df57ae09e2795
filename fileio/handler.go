package fileio

import (
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// Handler reads lines from a single log source file. ReadLines is a
// pull iterator of (line, error) pairs with trailing "\n"/"\r\n"
// stripped and bytes decoded to valid UTF-8 via the fallback-encoding
// chain; iteration stops at the first non-nil error, mirroring the
// original handlers raising on the first unrecoverable read failure.
type Handler interface {
	ReadLines() iter.Seq2[string, error]
}

// NewHandler picks a Handler for path based on its extension: ".gz"
// gets a GzipHandler, everything else (including no extension) gets a
// PlainHandler, matching the original factory's extension dispatch.
func NewHandler(path string) (Handler, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &FileError{Message: "File not found", Path: path, Cause: err}
	}
	if strings.ToLower(filepath.Ext(path)) == ".gz" {
		return &GzipHandler{path: path}, nil
	}
	return &PlainHandler{path: path}, nil
}

func trimNewline(b []byte) []byte {
	n := len(b)
	for n > 0 && (b[n-1] == '\n' || b[n-1] == '\r') {
		n--
	}
	return b[:n]
}
