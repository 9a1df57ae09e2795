package fileio

import (
	"bufio"
	"io"
	"iter"
	"os"
)

// PlainHandler reads an uncompressed .log (or extensionless) file.
type PlainHandler struct {
	path string
}

func (h *PlainHandler) ReadLines() iter.Seq2[string, error] {
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

		reader := bufio.NewReaderSize(f, 64*1024)
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
				yield("", &FileError{Message: "OS error reading file", Path: h.path, Cause: readErr})
				return
			}
		}
	}
}
