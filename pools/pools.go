// Package pools provides sync.Pool-backed object reuse for the
// per-file processing hot path: line buffers handed to the record
// assembler and string builders used to join multi-line records.
// Adapted from the teacher's CIDR/trie-specific pools — same
// capped-growth Get/Return shape, different payload types.
package pools

import (
	"strings"
	"sync"
)

// GlobalPools centralizes the pools reused across worker goroutines.
type GlobalPools struct {
	LineSlices sync.Pool
	Builders   sync.Pool
}

// Pools is the global instance of memory pools.
var Pools = &GlobalPools{
	LineSlices: sync.Pool{
		New: func() interface{} {
			slice := make([]string, 0, 64)
			return &slice
		},
	},
	Builders: sync.Pool{
		New: func() interface{} {
			builder := &strings.Builder{}
			builder.Grow(4096) // pre-allocate for a typical multi-line record
			return builder
		},
	},
}

// GetLineSlice gets a line buffer from the pool and resets it.
func (gp *GlobalPools) GetLineSlice() []string {
	slicePtr := gp.LineSlices.Get().(*[]string)
	*slicePtr = (*slicePtr)[:0] // reset length while keeping capacity
	return *slicePtr
}

// ReturnLineSlice returns a line buffer to the pool.
func (gp *GlobalPools) ReturnLineSlice(slice []string) {
	if cap(slice) < 4096 { // prevent memory bloat from one outsized record
		emptySlice := slice[:0]
		gp.LineSlices.Put(&emptySlice)
	}
}

// GetBuilder gets a string builder from the pool for joining a
// record's buffered lines.
func (gp *GlobalPools) GetBuilder() *strings.Builder {
	builder := gp.Builders.Get().(*strings.Builder)
	builder.Reset()
	return builder
}

// ReturnBuilder returns a string builder to the pool.
func (gp *GlobalPools) ReturnBuilder(builder *strings.Builder) {
	gp.Builders.Put(builder)
}

// Reset clears all pools (useful for testing).
func (gp *GlobalPools) Reset() {
	gp.LineSlices = sync.Pool{New: gp.LineSlices.New}
	gp.Builders = sync.Pool{New: gp.Builders.New}
}
