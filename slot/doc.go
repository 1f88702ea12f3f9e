// Package slot implements the consumer side of the registry: resolution
// reads a slot's current bucket, applies truncation and reversal, and either
// hands the sequence to a custom render function or invokes each record's
// renderer in order.
//
// Resolver adds memoization on top of plain resolution: the derived output
// is recomputed only when the store version or one of the resolution options
// changes, so an unrelated re-render of the host tree costs one atomic load
// and a handful of comparisons.
package slot
