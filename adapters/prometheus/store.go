package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/cacheroo-go/core/store"
)

// StoreMetrics holds the metric families shared by all stores registered on
// one registry. Every store gets its own "store" label via For.
type StoreMetrics struct {
	lookups     *prometheus.CounterVec
	inserts     *prometheus.CounterVec
	replaces    *prometheus.CounterVec
	removes     *prometheus.CounterVec
	expirations *prometheus.CounterVec
	entries     *prometheus.GaugeVec
}

// NewStoreMetrics creates the store metric families and registers them on reg.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	m := &StoreMetrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_lookups_total",
			Help:      "Total number of Get calls",
		}, []string{"store", "hit"}),

		inserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_inserts_total",
			Help:      "Total number of inserts",
		}, []string{"store", "lifetime"}),

		replaces: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_replaces_total",
			Help:      "Total number of inserts that replaced an existing entry",
		}, []string{"store"}),

		removes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_removes_total",
			Help:      "Total number of explicit removals",
		}, []string{"store"}),

		expirations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_expirations_total",
			Help:      "Total number of fired expiration timers",
		}, []string{"store", "stale"}),

		entries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_entries",
			Help:      "Number of live entries",
		}, []string{"store"}),
	}

	reg.MustRegister(
		m.lookups,
		m.inserts,
		m.replaces,
		m.removes,
		m.expirations,
		m.entries,
	)

	return m
}

// For returns a store.Metrics bound to the given store name.
func (m *StoreMetrics) For(name string) store.Metrics {
	return &boundStoreMetrics{
		hit:         m.lookups.WithLabelValues(name, boolToStr(true)),
		miss:        m.lookups.WithLabelValues(name, boolToStr(false)),
		insertTTL:   m.inserts.WithLabelValues(name, boolToStr(true)),
		insert:      m.inserts.WithLabelValues(name, boolToStr(false)),
		replaced:    m.replaces.WithLabelValues(name),
		removed:     m.removes.WithLabelValues(name),
		expired:     m.expirations.WithLabelValues(name, boolToStr(false)),
		staleExpiry: m.expirations.WithLabelValues(name, boolToStr(true)),
		entries:     m.entries.WithLabelValues(name),
	}
}

// boundStoreMetrics resolves label values once so the hot path is a plain
// atomic add.
type boundStoreMetrics struct {
	hit, miss         prometheus.Counter
	insertTTL, insert prometheus.Counter
	replaced, removed prometheus.Counter
	expired           prometheus.Counter
	staleExpiry       prometheus.Counter
	entries           prometheus.Gauge
}

func (b *boundStoreMetrics) Hit()  { b.hit.Inc() }
func (b *boundStoreMetrics) Miss() { b.miss.Inc() }

func (b *boundStoreMetrics) Inserted(withLifetime bool) {
	if withLifetime {
		b.insertTTL.Inc()
		return
	}
	b.insert.Inc()
}

func (b *boundStoreMetrics) Replaced()              { b.replaced.Inc() }
func (b *boundStoreMetrics) Removed()               { b.removed.Inc() }
func (b *boundStoreMetrics) Expired()               { b.expired.Inc() }
func (b *boundStoreMetrics) StaleExpiration()       { b.staleExpiry.Inc() }
func (b *boundStoreMetrics) EntriesDelta(delta int) { b.entries.Add(float64(delta)) }

var _ store.Metrics = (*boundStoreMetrics)(nil)
