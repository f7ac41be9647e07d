package store

import (
	"sync"
	"sync/atomic"
	"time"
)

// manualScheduler records actions and only runs them when asked to.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	fn      func()
	stopped atomic.Bool
}

func (t *manualTimer) Stop() bool { return !t.stopped.Swap(true) }

// fire runs the action regardless of Stop, like a timer that had already
// started when it was cancelled.
func (t *manualTimer) fire() { t.fn() }

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{d: d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) timer(i int) *manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timers[i]
}

type recordingMetrics struct {
	hits, misses, inserted, insertedTTL atomic.Int64
	replaced, removed, expired, stale   atomic.Int64
	entries                             atomic.Int64
}

func (m *recordingMetrics) Hit()  { m.hits.Add(1) }
func (m *recordingMetrics) Miss() { m.misses.Add(1) }
func (m *recordingMetrics) Inserted(withLifetime bool) {
	m.inserted.Add(1)
	if withLifetime {
		m.insertedTTL.Add(1)
	}
}
func (m *recordingMetrics) Replaced()              { m.replaced.Add(1) }
func (m *recordingMetrics) Removed()               { m.removed.Add(1) }
func (m *recordingMetrics) Expired()               { m.expired.Add(1) }
func (m *recordingMetrics) StaleExpiration()       { m.stale.Add(1) }
func (m *recordingMetrics) EntriesDelta(delta int) { m.entries.Add(int64(delta)) }

var (
	_ Scheduler = (*manualScheduler)(nil)
	_ Metrics   = (*recordingMetrics)(nil)
)
