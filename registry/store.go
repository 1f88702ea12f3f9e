package registry

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/kbukum/slotkit/logger"
	"github.com/kbukum/slotkit/observability"
)

// Store owns the current registry state for one provider scope. All
// mutations go through the writer mutex and publish a new immutable State;
// readers load the current state atomically and never block writers.
type Store struct {
	mu    sync.Mutex
	state atomic.Pointer[State]
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{}
	s.state.Store(emptyState())
	return s
}

// Upsert inserts or replaces the record with the given id in the slot's
// bucket, then restores the ordering invariant. Replacing an existing id
// keeps its bucket position when the order is unchanged; a new id is
// appended and stably sorted in.
func (s *Store) Upsert(slot, id string, rec Record) {
	rec.ID = id
	rec.Slot = slot

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.state.Load()
	old := cur.Bucket(slot)

	next := make(Bucket, 0, len(old)+1)
	replaced := false
	for _, r := range old {
		if r.ID == id {
			next = append(next, rec)
			replaced = true
			continue
		}
		next = append(next, r)
	}
	if !replaced {
		next = append(next, rec)
	}
	sort.SliceStable(next, func(i, j int) bool { return next[i].Order < next[j].Order })

	s.state.Store(cur.next(slot, next))
	observability.RecordUpsert(slot)

	msg := "plug registered"
	if replaced {
		msg = "plug replaced"
	}
	logger.WithComponent("registry").Debug(msg, logger.Fields(
		logger.FieldSlot, slot,
		logger.FieldPlugID, id,
		logger.FieldOrder, rec.Order,
		logger.FieldCount, len(next),
	))
}

// Remove deletes the record with the given id from the slot's bucket.
// Removing an absent id is a no-op, not an error, and publishes nothing.
func (s *Store) Remove(slot, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.state.Load()
	old := cur.Bucket(slot)

	idx := -1
	for i, r := range old {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	next := make(Bucket, 0, len(old)-1)
	next = append(next, old[:idx]...)
	next = append(next, old[idx+1:]...)

	s.state.Store(cur.next(slot, next))
	observability.RecordRemove(slot)

	logger.WithComponent("registry").Debug("plug removed", logger.Fields(
		logger.FieldSlot, slot,
		logger.FieldPlugID, id,
		logger.FieldCount, len(next),
	))
}

// Snapshot returns the current ordered records for a slot name, or an empty
// bucket if the slot has never been registered. The result must be treated
// as immutable; it is shared with the published state.
func (s *Store) Snapshot(slot string) Bucket {
	return s.state.Load().Bucket(slot)
}

// SnapshotAll returns the whole current state so reads across several slot
// names agree on their order relative to any single write.
func (s *Store) SnapshotAll() *State {
	return s.state.Load()
}

// Version returns the current state's write counter. Resolvers use it to
// decide whether a memoized result is still current.
func (s *Store) Version() uint64 {
	return s.state.Load().Version()
}

// Slots returns the sorted slot names present in the current state.
func (s *Store) Slots() []string {
	return s.state.Load().Slots()
}

// Len returns the number of records currently registered under a slot name.
func (s *Store) Len(slot string) int {
	return s.state.Load().Len(slot)
}

// Reset discards every record, publishing a fresh empty state. The scope
// calls this on teardown.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.state.Load()
	s.state.Store(&State{buckets: map[string]Bucket{}, version: cur.version + 1})

	logger.WithComponent("registry").Debug("store reset", logger.Fields(
		logger.FieldVersion, cur.version+1,
	))
}
