// Package registry implements the extension-point registry core: an
// immutable mapping from slot names to ordered buckets of producer records,
// owned by a Store that publishes every mutation as a whole new state value.
//
// Writers never mutate a published state. Each Upsert/Remove copies the
// touched bucket and the slot map, then atomically swaps the new state in,
// so a reader holding an older snapshot keeps observing a consistent view.
// Reads across multiple slots taken from one state value agree on
// happened-before order relative to any write.
package registry
