package plug

import (
	"context"

	"github.com/kbukum/slotkit/registry"
	"github.com/kbukum/slotkit/scope"
)

// Binder pre-binds a scope and slot name so producer authors targeting one
// slot do not repeat the plumbing on every registration.
type Binder struct {
	scope *scope.Scope
	slot  string
}

// NewBinder creates a producer binder for a fixed scope and slot name.
func NewBinder(sc *scope.Scope, slot string) Binder {
	return Binder{scope: sc, slot: slot}
}

// BinderFromContext creates a producer binder against the nearest
// enclosing scope carried by ctx.
func BinderFromContext(ctx context.Context, slot string) (Binder, error) {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return Binder{}, err
	}
	return NewBinder(sc, slot), nil
}

// Bind creates a binding for one producer under the binder's slot.
func (b Binder) Bind(id string, render registry.RenderFunc, opts Options) (*Binding, error) {
	return NewBinding(b.scope, b.slot, id, render, opts)
}

// Slot returns the pre-bound slot name.
func (b Binder) Slot() string { return b.slot }
