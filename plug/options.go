package plug

// Options carries the registration metadata a producer attaches to its
// renderer.
type Options struct {
	// Name is an optional human label; it has no effect on ordering or
	// resolution.
	Name string
	// Order is the sort key within the slot's bucket; lower sorts first.
	Order int
	// Extra is an opaque caller-defined payload passed through to slot
	// authors untouched.
	Extra any
}
