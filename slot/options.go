package slot

import (
	"github.com/kbukum/slotkit/registry"
)

// RenderSeqFunc renders the resolved record sequence in full manual control.
// Its result is returned from resolution verbatim.
type RenderSeqFunc func(recs []registry.Record) (any, error)

// Options configures one resolution of a slot.
type Options struct {
	// MaxCount truncates the ordered sequence to its first MaxCount records
	// before reversal. Zero or negative means no truncation.
	MaxCount int
	// Reversed reverses the (truncated) sequence.
	Reversed bool
	// Params is passed to every record's renderer during auto-render.
	// Mutually exclusive with RenderFn.
	Params any
	// RenderFn takes over rendering entirely; the slot performs no further
	// processing. Mutually exclusive with Params.
	RenderFn RenderSeqFunc
}

// Rendered is one auto-rendered item. Key is the record id, a stable
// reconciliation key for the host tree.
type Rendered struct {
	Key   string
	Value any
}
