package scope

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kbukum/slotkit/logger"
	"github.com/kbukum/slotkit/registry"
)

// Scope identifies one provider's registry instance. The zero value is not
// usable; create scopes with New.
type Scope struct {
	id     string
	name   string
	store  *registry.Store
	closed atomic.Bool
}

// Option configures a Scope during creation.
type Option func(*Scope)

// WithName sets a human-readable scope name for logs.
func WithName(name string) Option {
	return func(s *Scope) { s.name = name }
}

// New creates a provider scope with an empty registry store.
func New(opts ...Option) *Scope {
	s := &Scope{
		id:    uuid.NewString(),
		store: registry.NewStore(),
	}
	for _, opt := range opts {
		opt(s)
	}

	logger.WithComponent("scope").Debug("scope created", logger.Fields(
		logger.FieldScopeID, s.id,
		"name", s.name,
	))
	return s
}

// ID returns the scope's unique identifier.
func (s *Scope) ID() string { return s.id }

// Name returns the optional human-readable scope name.
func (s *Scope) Name() string { return s.name }

// Store returns the scope's registry store.
func (s *Scope) Store() *registry.Store { return s.store }

// Closed reports whether the scope has been torn down.
func (s *Scope) Closed() bool { return s.closed.Load() }

// Close tears the scope down, discarding every registered record.
// Close is idempotent. Registrations against a closed scope fail with a
// SCOPE_CLOSED error rather than silently writing into discarded state.
func (s *Scope) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.store.Reset()

	logger.WithComponent("scope").Debug("scope closed", logger.Fields(
		logger.FieldScopeID, s.id,
	))
}
