package fileio

import (
	"bufio"
	"io"
	"iter"
	"os"

	"github.com/klauspost/compress/gzip"
)

// GzipHandler reads a gzip-compressed .log.gz file, decompressing on
// the fly. Uses klauspost/compress's gzip reader, the same decoder the
// teacher's pipeline already depends on for archived log ingestion.
type GzipHandler struct {
	path string
}

func (h *GzipHandler) ReadLines() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f, err := os.Open(h.path)
		if err != nil {
			if os.IsPermission(err) {
				yield("", &FileError{Message: "Permission denied", Path: h.path, Cause: err})
				return
			}
			yield("", &FileError{Message: "File not found during read", Path: h.path, Cause: err})
			return
		}
		defer f.Close()

		gz, err := gzip.NewReader(f)
		if err != nil {
			yield("", &FileError{Message: "Invalid or corrupted gzip file", Path: h.path, Cause: err})
			return
		}
		defer gz.Close()

		reader := bufio.NewReaderSize(gz, 64*1024)
		for {
			raw, readErr := reader.ReadBytes('\n')
			if len(raw) > 0 {
				line := decodeLine(trimNewline(raw))
				if !yield(line, nil) {
					return
				}
			}
			if readErr != nil {
				if readErr == io.EOF {
					return
				}
				if readErr == gzip.ErrChecksum || readErr == gzip.ErrHeader {
					yield("", &FileError{Message: "Invalid or corrupted gzip file", Path: h.path, Cause: readErr})
					return
				}
				yield("", &FileError{Message: "OS error reading gzip file", Path: h.path, Cause: readErr})
				return
			}
		}
	}
}
