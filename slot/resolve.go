package slot

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/slotkit/errors"
	"github.com/kbukum/slotkit/observability"
	"github.com/kbukum/slotkit/registry"
	"github.com/kbukum/slotkit/scope"
	"github.com/kbukum/slotkit/util"
)

// Records returns the slot's current sequence after truncation and reversal,
// without rendering. Slot authors doing manual layout start here.
func Records(sc *scope.Scope, name string, opts Options) ([]registry.Record, error) {
	if sc == nil {
		return nil, errors.MissingScope("slot.Records")
	}
	recs := []registry.Record(sc.Store().Snapshot(name))
	// Truncation happens before reversal.
	if opts.MaxCount > 0 {
		recs = util.Take(recs, opts.MaxCount)
	}
	if opts.Reversed {
		recs = util.Reverse(recs)
	}
	return recs, nil
}

// Resolve reads the slot's current bucket and renders it. With a RenderFn
// set, the post-processed sequence is handed over and the result returned
// verbatim; otherwise every record's renderer is invoked with Params in
// sequence order and the results collected as []Rendered.
func Resolve(sc *scope.Scope, name string, opts Options) (any, error) {
	return resolve(context.Background(), sc, name, opts)
}

// ResolveFromContext resolves against the nearest enclosing scope carried
// by ctx.
func ResolveFromContext(ctx context.Context, name string, opts Options) (any, error) {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return resolve(ctx, sc, name, opts)
}

func resolve(ctx context.Context, sc *scope.Scope, name string, opts Options) (any, error) {
	if sc == nil {
		return nil, errors.MissingScope("slot.Resolve")
	}
	if opts.Params != nil && opts.RenderFn != nil {
		return nil, errors.ConflictingResolution(name)
	}

	start := time.Now()
	ctx, span := observability.StartSpan(ctx, observability.SpanResolve, trace.WithAttributes(
		attribute.String(observability.AttrSlot, name),
		attribute.String(observability.AttrScopeID, sc.ID()),
		attribute.Int(observability.AttrMaxCount, opts.MaxCount),
		attribute.Bool(observability.AttrReversed, opts.Reversed),
	))
	defer span.End()

	recs, err := Records(sc, name, opts)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int(observability.AttrCount, len(recs)))

	out, err := render(name, recs, opts)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}
	observability.RecordResolve(name, time.Since(start))
	return out, nil
}

func render(name string, recs []registry.Record, opts Options) (any, error) {
	if opts.RenderFn != nil {
		return opts.RenderFn(recs)
	}

	items := make([]Rendered, 0, len(recs))
	for _, r := range recs {
		if r.Render == nil {
			items = append(items, Rendered{Key: r.ID})
			continue
		}
		v, err := r.Render(opts.Params)
		if err != nil {
			return nil, errors.RenderFailed(name, r.ID, err)
		}
		items = append(items, Rendered{Key: r.ID, Value: v})
	}
	return items, nil
}
