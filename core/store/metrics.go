package store

// Metrics receives store events. Implementations must be safe for concurrent
// use; they are never called while the store lock is held.
type Metrics interface {
	// Reads
	Hit()
	Miss()

	// Writes
	Inserted(withLifetime bool)
	Replaced()
	Removed()

	// Expiration
	Expired()
	StaleExpiration()

	// EntriesDelta adjusts the number of live entries.
	EntriesDelta(delta int)
}

type nopMetrics struct{}

func (nopMetrics) Hit()             {}
func (nopMetrics) Miss()            {}
func (nopMetrics) Inserted(bool)    {}
func (nopMetrics) Replaced()        {}
func (nopMetrics) Removed()         {}
func (nopMetrics) Expired()         {}
func (nopMetrics) StaleExpiration() {}
func (nopMetrics) EntriesDelta(int) {}

// NopMetrics returns a no-op Metrics implementation.
func NopMetrics() Metrics { return nopMetrics{} }
