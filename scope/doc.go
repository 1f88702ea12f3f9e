// Package scope ties one registry store to one provider in the host UI
// tree. A Scope is created when the provider mounts, made reachable to the
// subtree below it (explicitly or through a context.Context), and closed on
// teardown, discarding every record registered under it.
//
// Scopes never merge: a producer or slot always binds to the nearest
// enclosing scope, and two scopes with identical slot names are fully
// independent.
package scope
