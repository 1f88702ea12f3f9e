package registry

// RenderFunc is a producer's behavior. The registry stores it but never
// invokes it; slot resolution calls it with the slot author's params.
type RenderFunc func(params any) (any, error)

// Record is one registered plug instance.
type Record struct {
	// ID is unique within its slot; identity key for upsert/remove.
	ID string
	// Slot is the target slot name; immutable after creation.
	Slot string
	// Order is the sort key; lower sorts first, default 0.
	Order int
	// Name is an optional human label with no effect on ordering.
	Name string
	// Extra is a caller-defined payload, never interpreted by the registry.
	Extra any
	// Render is invoked by the slot's rendering logic with its params.
	Render RenderFunc
}

// Bucket is the ordered sequence of records registered under one slot name,
// stably sorted ascending by Order. Records with equal Order keep their
// relative insertion order.
type Bucket []Record

// IDs returns the record ids in bucket order.
func (b Bucket) IDs() []string {
	ids := make([]string, len(b))
	for i, r := range b {
		ids[i] = r.ID
	}
	return ids
}

// Find returns the record with the given id and whether it was present.
func (b Bucket) Find(id string) (Record, bool) {
	for _, r := range b {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}
