// Package prometheus provides a Prometheus implementation of store.Metrics.
//
//	m := prometheus.NewStoreMetrics(prom.DefaultRegisterer)
//	sessions := store.New[string, *Session](
//	    store.WithName("sessions"),
//	    store.WithMetrics(m.For("sessions")),
//	)
package prometheus

// All metric names are prefixed with this namespace.
const namespace = "cacheroo"

func boolToStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
