package observability

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const defaultMeterName = "github.com/kbukum/slotkit/observability"

// RegistryMetrics holds the instruments recorded by the registry store and
// slot resolution.
type RegistryMetrics struct {
	upserts         metric.Int64Counter
	removes         metric.Int64Counter
	resolves        metric.Int64Counter
	resolveDuration metric.Float64Histogram
}

// NewRegistryMetrics creates the registry instruments from a meter.
func NewRegistryMetrics(meter metric.Meter) (*RegistryMetrics, error) {
	upserts, err := meter.Int64Counter("slotkit.registry.upserts",
		metric.WithDescription("Number of plug upserts per slot"))
	if err != nil {
		return nil, err
	}
	removes, err := meter.Int64Counter("slotkit.registry.removes",
		metric.WithDescription("Number of plug removals per slot"))
	if err != nil {
		return nil, err
	}
	resolves, err := meter.Int64Counter("slotkit.slot.resolves",
		metric.WithDescription("Number of slot resolutions per slot"))
	if err != nil {
		return nil, err
	}
	resolveDuration, err := meter.Float64Histogram("slotkit.slot.resolve.duration",
		metric.WithDescription("Slot resolution duration in milliseconds"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}
	return &RegistryMetrics{
		upserts:         upserts,
		removes:         removes,
		resolves:        resolves,
		resolveDuration: resolveDuration,
	}, nil
}

var (
	defaultMetrics     *RegistryMetrics
	defaultMetricsOnce sync.Once
)

// metrics returns the shared instruments, creating them on first use from
// the global meter provider. Instruments created before a real provider is
// installed delegate to it once otel.SetMeterProvider runs.
func metrics() *RegistryMetrics {
	defaultMetricsOnce.Do(func() {
		m, err := NewRegistryMetrics(otel.Meter(defaultMeterName))
		if err != nil {
			return
		}
		defaultMetrics = m
	})
	return defaultMetrics
}

// RecordUpsert counts one upsert against a slot.
func RecordUpsert(slot string) {
	if m := metrics(); m != nil {
		m.upserts.Add(context.Background(), 1, metric.WithAttributes(attribute.String(AttrSlot, slot)))
	}
}

// RecordRemove counts one removal against a slot.
func RecordRemove(slot string) {
	if m := metrics(); m != nil {
		m.removes.Add(context.Background(), 1, metric.WithAttributes(attribute.String(AttrSlot, slot)))
	}
}

// RecordResolve counts one slot resolution and records its latency.
func RecordResolve(slot string, d time.Duration) {
	m := metrics()
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrSlot, slot))
	m.resolves.Add(context.Background(), 1, attrs)
	m.resolveDuration.Record(context.Background(), float64(d.Nanoseconds())/1e6, attrs)
}
