package record

import "fmt"

// SizeExceededError reports a record whose buffered size grew past
// the configured byte cap. Non-fatal to the run: the worker that
// catches it stops processing the current file but keeps whatever
// matches it already produced (SPEC_FULL.md §4.4.4).
type SizeExceededError struct {
	SizeKB    float64
	MaxSizeKB int
}

func (e *SizeExceededError) Error() string {
	return fmt.Sprintf("Record size %.2fKB exceeds limit of %dKB", e.SizeKB, e.MaxSizeKB)
}
