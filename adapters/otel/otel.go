// Package otel provides an OpenTelemetry implementation of store.Metrics.
package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/codewandler/cacheroo-go/core/store"
)

const instrumentationName = "github.com/codewandler/cacheroo-go"

// StoreMetrics holds the store instruments of one meter.
type StoreMetrics struct {
	lookups     metric.Int64Counter
	inserts     metric.Int64Counter
	replaces    metric.Int64Counter
	removes     metric.Int64Counter
	expirations metric.Int64Counter
	entries     metric.Int64UpDownCounter
}

// NewStoreMetrics creates the store instruments on meter. A nil meter uses
// the global meter provider.
func NewStoreMetrics(meter metric.Meter) (*StoreMetrics, error) {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}

	var (
		m   StoreMetrics
		err error
	)
	if m.lookups, err = meter.Int64Counter("cacheroo.store.lookups",
		metric.WithDescription("Number of Get calls"),
		metric.WithUnit("{lookup}")); err != nil {
		return nil, err
	}
	if m.inserts, err = meter.Int64Counter("cacheroo.store.inserts",
		metric.WithDescription("Number of inserts"),
		metric.WithUnit("{insert}")); err != nil {
		return nil, err
	}
	if m.replaces, err = meter.Int64Counter("cacheroo.store.replaces",
		metric.WithDescription("Number of inserts that replaced an existing entry"),
		metric.WithUnit("{insert}")); err != nil {
		return nil, err
	}
	if m.removes, err = meter.Int64Counter("cacheroo.store.removes",
		metric.WithDescription("Number of explicit removals"),
		metric.WithUnit("{remove}")); err != nil {
		return nil, err
	}
	if m.expirations, err = meter.Int64Counter("cacheroo.store.expirations",
		metric.WithDescription("Number of fired expiration timers"),
		metric.WithUnit("{timer}")); err != nil {
		return nil, err
	}
	if m.entries, err = meter.Int64UpDownCounter("cacheroo.store.entries",
		metric.WithDescription("Number of live entries"),
		metric.WithUnit("{entry}")); err != nil {
		return nil, err
	}
	return &m, nil
}

// For returns a store.Metrics that records with the store=name attribute.
func (m *StoreMetrics) For(name string) store.Metrics {
	attrs := func(kv ...attribute.KeyValue) metric.MeasurementOption {
		return metric.WithAttributeSet(attribute.NewSet(append(kv, attribute.String("store", name))...))
	}
	return &boundStoreMetrics{
		m:          m,
		base:       attrs(),
		hit:        attrs(attribute.Bool("hit", true)),
		miss:       attrs(attribute.Bool("hit", false)),
		withTTL:    attrs(attribute.Bool("lifetime", true)),
		withoutTTL: attrs(attribute.Bool("lifetime", false)),
		fresh:      attrs(attribute.Bool("stale", false)),
		stale:      attrs(attribute.Bool("stale", true)),
	}
}

type boundStoreMetrics struct {
	m *StoreMetrics

	base                metric.MeasurementOption
	hit, miss           metric.MeasurementOption
	withTTL, withoutTTL metric.MeasurementOption
	fresh, stale        metric.MeasurementOption
}

// Store events carry no context; measurements use the background context.
var bg = context.Background()

func (b *boundStoreMetrics) Hit()  { b.m.lookups.Add(bg, 1, b.hit) }
func (b *boundStoreMetrics) Miss() { b.m.lookups.Add(bg, 1, b.miss) }

func (b *boundStoreMetrics) Inserted(withLifetime bool) {
	if withLifetime {
		b.m.inserts.Add(bg, 1, b.withTTL)
		return
	}
	b.m.inserts.Add(bg, 1, b.withoutTTL)
}

func (b *boundStoreMetrics) Replaced()        { b.m.replaces.Add(bg, 1, b.base) }
func (b *boundStoreMetrics) Removed()         { b.m.removes.Add(bg, 1, b.base) }
func (b *boundStoreMetrics) Expired()         { b.m.expirations.Add(bg, 1, b.fresh) }
func (b *boundStoreMetrics) StaleExpiration() { b.m.expirations.Add(bg, 1, b.stale) }

func (b *boundStoreMetrics) EntriesDelta(delta int) {
	b.m.entries.Add(bg, int64(delta), b.base)
}

var _ store.Metrics = (*boundStoreMetrics)(nil)
