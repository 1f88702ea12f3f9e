package registry

import (
	"sort"

	"github.com/kbukum/slotkit/util"
)

// State is one immutable registry value: the mapping from slot name to
// bucket at a single version. A State is never mutated after publication;
// the Store derives a new State from the current one on every write.
type State struct {
	buckets map[string]Bucket
	version uint64
}

func emptyState() *State {
	return &State{buckets: map[string]Bucket{}}
}

// Bucket returns the ordered records for a slot name. Unknown slot names
// resolve to an empty bucket, not an error. The returned slice must be
// treated as immutable.
func (s *State) Bucket(slot string) Bucket {
	return s.buckets[slot]
}

// Version returns the monotonically increasing write counter of this state.
func (s *State) Version() uint64 {
	return s.version
}

// Slots returns the sorted slot names that have ever been registered in
// this state.
func (s *State) Slots() []string {
	names := util.Keys(s.buckets)
	sort.Strings(names)
	return names
}

// Len returns the number of records registered under a slot name.
func (s *State) Len(slot string) int {
	return len(s.buckets[slot])
}

// next derives a new State with the given bucket replacing the slot's
// current one.
func (s *State) next(slot string, b Bucket) *State {
	buckets := make(map[string]Bucket, len(s.buckets)+1)
	for k, v := range s.buckets {
		buckets[k] = v
	}
	buckets[slot] = b
	return &State{buckets: buckets, version: s.version + 1}
}
