package registry

import (
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"
)

func rec(id string, order int) Record {
	return Record{ID: id, Order: order, Render: func(params any) (any, error) {
		return id, nil
	}}
}

func assertIDs(t *testing.T, got Bucket, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, got.IDs())
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("expected ids %v, got %v", want, got.IDs())
		}
	}
}

func TestUpsert_OrdersByOrderKey(t *testing.T) {
	s := NewStore()
	s.Upsert("header", "a", rec("a", 5))
	s.Upsert("header", "b", rec("b", 1))

	assertIDs(t, s.Snapshot("header"), "b", "a")
}

func TestUpsert_ReplacesSameID(t *testing.T) {
	s := NewStore()
	s.Upsert("header", "a", rec("a", 0))
	s.Upsert("header", "b", rec("b", 0))
	s.Upsert("header", "a", rec("a", 0))

	got := s.Snapshot("header")
	if len(got) != 2 {
		t.Fatalf("expected bucket length 2, got %d", len(got))
	}
	// Re-upsert with unchanged order keeps the original position.
	assertIDs(t, got, "a", "b")
}

func TestUpsert_AtMostOneRecordPerID(t *testing.T) {
	s := NewStore()
	for i := 0; i < 10; i++ {
		s.Upsert("header", "a", rec("a", i%3))
		s.Upsert("header", "b", rec("b", i%2))
	}

	got := s.Snapshot("header")
	seen := map[string]int{}
	for _, r := range got {
		seen[r.ID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("expected exactly one record for id %q, got %d", id, n)
		}
	}
}

func TestUpsert_StableForEqualOrders(t *testing.T) {
	s := NewStore()
	s.Upsert("header", "a", rec("a", 1))
	s.Upsert("header", "b", rec("b", 1))
	s.Upsert("header", "c", rec("c", 1))

	assertIDs(t, s.Snapshot("header"), "a", "b", "c")

	// Replacing the middle record with an unchanged order must not
	// reshuffle its siblings.
	s.Upsert("header", "b", rec("b", 1))
	assertIDs(t, s.Snapshot("header"), "a", "b", "c")
}

func TestUpsert_OrderChangeMovesRecord(t *testing.T) {
	s := NewStore()
	s.Upsert("header", "a", rec("a", 1))
	s.Upsert("header", "b", rec("b", 2))
	s.Upsert("header", "a", rec("a", 3))

	assertIDs(t, s.Snapshot("header"), "b", "a")
}

func TestUpsert_SortCorrectness(t *testing.T) {
	s := NewStore()
	orders := []int{7, 3, 9, 0, 3, -2, 5}
	for i, o := range orders {
		s.Upsert("toolbar", fmt.Sprintf("p%d", i), rec(fmt.Sprintf("p%d", i), o))
	}

	got := s.Snapshot("toolbar")
	for i := 1; i < len(got); i++ {
		if got[i-1].Order > got[i].Order {
			t.Fatalf("bucket not sorted by order: %v", got.IDs())
		}
	}
}

func TestUpsert_NormalizesIdentity(t *testing.T) {
	s := NewStore()
	// The record's own ID/Slot fields are overwritten by the call keys.
	s.Upsert("header", "a", Record{ID: "stale", Slot: "elsewhere", Order: 1})

	got, ok := s.Snapshot("header").Find("a")
	if !ok {
		t.Fatal("expected record under the upsert key")
	}
	if got.Slot != "header" {
		t.Errorf("expected slot 'header', got %q", got.Slot)
	}
}

func TestRemove_DeletesRecord(t *testing.T) {
	s := NewStore()
	s.Upsert("header", "a", rec("a", 0))
	s.Upsert("header", "b", rec("b", 1))

	s.Remove("header", "a")
	assertIDs(t, s.Snapshot("header"), "b")
	if _, ok := s.Snapshot("header").Find("a"); ok {
		t.Error("expected 'a' to be gone after Remove")
	}
}

func TestRemove_AbsentIDIsNoOp(t *testing.T) {
	s := NewStore()
	s.Upsert("header", "a", rec("a", 0))
	before := s.Version()

	s.Remove("header", "missing")
	s.Remove("unknown-slot", "a")

	if s.Version() != before {
		t.Error("no-op removes must not publish a new state")
	}
	assertIDs(t, s.Snapshot("header"), "a")
}

func TestSnapshot_UnknownSlotIsEmpty(t *testing.T) {
	s := NewStore()
	if got := s.Snapshot("unknown-slot"); len(got) != 0 {
		t.Errorf("expected empty bucket, got %v", got.IDs())
	}
}

func TestSnapshot_CopyOnWrite(t *testing.T) {
	s := NewStore()
	s.Upsert("header", "a", rec("a", 0))

	before := s.Snapshot("header")
	s.Upsert("header", "b", rec("b", 1))
	s.Remove("header", "a")

	// The earlier snapshot is a value: later writes never reach it.
	assertIDs(t, before, "a")
	assertIDs(t, s.Snapshot("header"), "b")
}

func TestSnapshotAll_ConsistentAcrossSlots(t *testing.T) {
	s := NewStore()
	s.Upsert("header", "a", rec("a", 0))
	s.Upsert("footer", "x", rec("x", 0))

	state := s.SnapshotAll()
	s.Upsert("header", "b", rec("b", 1))
	s.Remove("footer", "x")

	assertIDs(t, state.Bucket("header"), "a")
	assertIDs(t, state.Bucket("footer"), "x")
	if state.Version() == s.Version() {
		t.Error("expected the live store to have advanced past the snapshot")
	}
}

func TestVersion_AdvancesPerWrite(t *testing.T) {
	s := NewStore()
	v0 := s.Version()
	s.Upsert("header", "a", rec("a", 0))
	v1 := s.Version()
	s.Remove("header", "a")
	v2 := s.Version()

	if !(v0 < v1 && v1 < v2) {
		t.Errorf("expected strictly increasing versions, got %d %d %d", v0, v1, v2)
	}
}

func TestSlotsAndLen(t *testing.T) {
	s := NewStore()
	s.Upsert("sidebar", "a", rec("a", 0))
	s.Upsert("header", "b", rec("b", 0))
	s.Upsert("header", "c", rec("c", 0))

	slots := s.Slots()
	if len(slots) != 2 || slots[0] != "header" || slots[1] != "sidebar" {
		t.Errorf("expected sorted slots [header sidebar], got %v", slots)
	}
	if s.Len("header") != 2 {
		t.Errorf("expected 2 records in header, got %d", s.Len("header"))
	}
	if s.Len("unknown") != 0 {
		t.Errorf("expected 0 records in unknown slot, got %d", s.Len("unknown"))
	}
}

func TestReset_DiscardsEverything(t *testing.T) {
	s := NewStore()
	s.Upsert("header", "a", rec("a", 0))
	s.Upsert("sidebar", "b", rec("b", 0))
	before := s.Version()

	s.Reset()

	if len(s.Slots()) != 0 {
		t.Errorf("expected no slots after reset, got %v", s.Slots())
	}
	if s.Version() <= before {
		t.Error("reset must publish a new state version")
	}
}

func TestStore_ConcurrentWritersAndReaders(t *testing.T) {
	s := NewStore()
	var g errgroup.Group

	for w := 0; w < 8; w++ {
		id := fmt.Sprintf("plug-%d", w)
		g.Go(func() error {
			for i := 0; i < 200; i++ {
				s.Upsert("status", id, rec(id, i%5))
				if i%3 == 0 {
					s.Remove("status", id)
				}
			}
			return nil
		})
	}
	for r := 0; r < 4; r++ {
		g.Go(func() error {
			for i := 0; i < 500; i++ {
				b := s.Snapshot("status")
				for j := 1; j < len(b); j++ {
					if b[j-1].Order > b[j].Order {
						return fmt.Errorf("observed unsorted snapshot: %v", b.IDs())
					}
				}
				seen := map[string]bool{}
				for _, rr := range b {
					if seen[rr.ID] {
						return fmt.Errorf("observed duplicate id %q", rr.ID)
					}
					seen[rr.ID] = true
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
