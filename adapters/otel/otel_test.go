package otel

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/codewandler/cacheroo-go/core/store"
)

// sum returns the value of the int64 sum data point of instrument name whose
// attributes contain all of want.
func sum(t *testing.T, reader *sdkmetric.ManualReader, name string, want ...attribute.KeyValue) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(t.Context(), &rm))

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			data, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is not an int64 sum", name)
		points:
			for _, dp := range data.DataPoints {
				for _, kv := range want {
					v, ok := dp.Attributes.Value(kv.Key)
					if !ok || v != kv.Value {
						continue points
					}
				}
				return dp.Value
			}
		}
	}
	return 0
}

func TestStoreMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(t.Context()) })

	m, err := NewStoreMetrics(mp.Meter("test"))
	require.NoError(t, err)

	clock := clockwork.NewFakeClock()
	s := store.New[string, int](
		store.WithName("users"),
		store.WithClock(clock),
		store.WithMetrics(m.For("users")),
	)

	users := attribute.String("store", "users")

	s.Insert("a", 1)
	s.Insert("a", 2)
	s.InsertWithLifetime("b", 3, time.Second)
	s.Get("a")
	s.Get("nope")
	s.Remove("a")

	require.EqualValues(t, 1, sum(t, reader, "cacheroo.store.lookups", users, attribute.Bool("hit", true)))
	require.EqualValues(t, 1, sum(t, reader, "cacheroo.store.lookups", users, attribute.Bool("hit", false)))
	require.EqualValues(t, 2, sum(t, reader, "cacheroo.store.inserts", users, attribute.Bool("lifetime", false)))
	require.EqualValues(t, 1, sum(t, reader, "cacheroo.store.inserts", users, attribute.Bool("lifetime", true)))
	require.EqualValues(t, 1, sum(t, reader, "cacheroo.store.replaces", users))
	require.EqualValues(t, 1, sum(t, reader, "cacheroo.store.removes", users))
	require.EqualValues(t, 1, sum(t, reader, "cacheroo.store.entries", users))

	clock.Advance(time.Second)

	require.Eventually(t, func() bool {
		return sum(t, reader, "cacheroo.store.expirations", users, attribute.Bool("stale", false)) == 1 &&
			sum(t, reader, "cacheroo.store.entries", users) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestNewStoreMetrics_GlobalMeter(t *testing.T) {
	m, err := NewStoreMetrics(nil)
	require.NoError(t, err)

	// The global provider is a no-op until one is installed.
	b := m.For("x")
	b.Hit()
	b.EntriesDelta(-1)
}
