package scope

import (
	"context"

	"github.com/kbukum/slotkit/errors"
)

// ctxKey is an unexported type for the scope context key to avoid collisions.
type ctxKey struct{}

// NewContext returns a context carrying the given scope. A nested provider
// calls this again with its own scope, shadowing the outer one for its
// subtree — descendants always see the nearest enclosing scope.
func NewContext(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the nearest enclosing scope. It fails with a
// SCOPE_MISSING error when the context carries none; operating against no
// registry would silently drop registrations, so there is no default scope.
func FromContext(ctx context.Context) (*Scope, error) {
	s, ok := ctx.Value(ctxKey{}).(*Scope)
	if !ok || s == nil {
		return nil, errors.MissingScope("scope.FromContext")
	}
	return s, nil
}

// MustFromContext is like FromContext but panics when no scope is reachable.
func MustFromContext(ctx context.Context) *Scope {
	s, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return s
}
