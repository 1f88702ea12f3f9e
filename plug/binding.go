package plug

import (
	"context"
	"reflect"
	"sync"

	"github.com/kbukum/slotkit/errors"
	"github.com/kbukum/slotkit/logger"
	"github.com/kbukum/slotkit/registry"
	"github.com/kbukum/slotkit/scope"
)

// Binding attaches one producer to one slot in one scope for the duration
// of the producer's presence in the host tree.
type Binding struct {
	scope  *scope.Scope
	slot   string
	id     string
	render registry.RenderFunc
	opts   Options

	mu       sync.Mutex
	deps     []any
	attached bool
}

// NewBinding creates a binding against an explicit scope. It fails fast
// with a SCOPE_MISSING error when the scope is nil: registering into a
// non-existent registry is a programming error, not a silent no-op.
func NewBinding(sc *scope.Scope, slot, id string, render registry.RenderFunc, opts Options) (*Binding, error) {
	if sc == nil {
		return nil, errors.MissingScope("plug.NewBinding")
	}
	if slot == "" {
		return nil, errors.InvalidInput("slot", "slot name must not be empty")
	}
	if id == "" {
		return nil, errors.InvalidInput("id", "plug id must not be empty")
	}
	return &Binding{
		scope:  sc,
		slot:   slot,
		id:     id,
		render: render,
		opts:   opts,
	}, nil
}

// BindingFromContext creates a binding against the nearest enclosing scope
// carried by ctx.
func BindingFromContext(ctx context.Context, slot, id string, render registry.RenderFunc, opts Options) (*Binding, error) {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return NewBinding(sc, slot, id, render, opts)
}

// Activate registers the producer. The first call attaches; later calls
// shallow-compare deps against the previous tuple and do nothing when they
// are equal. When deps changed, the old registration is removed before the
// new one is inserted — detach-before-attach is a guarantee of the binding,
// not an artifact of host scheduling.
func (b *Binding) Activate(deps ...any) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.scope.Closed() {
		return errors.ScopeClosed(b.scope.ID())
	}
	if b.attached && shallowEqual(b.deps, deps) {
		return nil
	}
	if b.attached {
		b.scope.Store().Remove(b.slot, b.id)
		logger.WithComponent("plug").Debug("binding reattaching", logger.Fields(
			logger.FieldSlot, b.slot,
			logger.FieldPlugID, b.id,
		))
	}

	b.scope.Store().Upsert(b.slot, b.id, registry.Record{
		Order:  b.opts.Order,
		Name:   b.opts.Name,
		Extra:  b.opts.Extra,
		Render: b.render,
	})
	b.deps = append([]any(nil), deps...)
	b.attached = true
	return nil
}

// Deactivate removes the producer's registration. It is idempotent, and a
// no-op after the owning scope has been closed (teardown already discarded
// the record).
func (b *Binding) Deactivate() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	b.deps = nil
	if b.scope.Closed() {
		return nil
	}
	b.scope.Store().Remove(b.slot, b.id)
	return nil
}

// Attached reports whether the producer is currently registered.
func (b *Binding) Attached() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attached
}

// Deps returns a copy of the dependency tuple from the last activation.
func (b *Binding) Deps() []any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]any(nil), b.deps...)
}

// shallowEqual compares two dependency tuples element-wise by value.
// Non-comparable elements (slices, maps, funcs) never compare equal, so a
// producer passing one always reattaches.
func shallowEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameValue(a[i], b[i]) {
			return false
		}
	}
	return true
}

func sameValue(x, y any) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	tx := reflect.TypeOf(x)
	if tx != reflect.TypeOf(y) {
		return false
	}
	if !tx.Comparable() {
		return false
	}
	return x == y
}
