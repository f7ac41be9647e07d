package store

import (
	"log/slog"

	"github.com/jonboulle/clockwork"
)

// Option configures a Store.
type Option func(*options)

type options struct {
	name      string
	scheduler Scheduler
	log       *slog.Logger
	metrics   Metrics
}

func newOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.name == "" {
		o.name = "default"
	}
	if o.scheduler == nil {
		o.scheduler = SchedulerFromClock(clockwork.NewRealClock())
	}
	if o.log == nil {
		o.log = slog.Default()
	}
	if o.metrics == nil {
		o.metrics = NopMetrics()
	}
	return o
}

// WithName sets the name used in log records and metric labels (default: "default").
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithClock sets the clock expiration timers are scheduled on.
// Tests typically pass a clockwork.FakeClock.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.scheduler = SchedulerFromClock(clock)
		}
	}
}

// WithScheduler overrides the scheduler that runs expiration actions.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		if s != nil {
			o.scheduler = s
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithMetrics sets the metrics implementation. Defaults to a no-op.
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}
