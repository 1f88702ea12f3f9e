// Package plug implements the producer side of the registry: a Binding
// registers a renderer into a slot for as long as the producer is present
// in the host tree, re-registering when its declared dependencies change
// and removing itself on unmount.
//
// The dependency reconcile step is owned by the binding itself: Activate
// shallow-compares the new dependency tuple against the previous one and is
// side-effect-free when nothing changed, so buckets are never re-sorted and
// downstream slots never re-render without cause.
package plug
