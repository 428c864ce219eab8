package fluxion

import (
	"github.com/ygrebnov/fluxion/metrics"
	"github.com/ygrebnov/fluxion/pool"
)

// Option configures a terminator (Subscribe, SubscribeLatest, SubscribeAll).
// Consolidates what the teacher split across options.go/config.go/defaults.go
// into one file, since fluxion's terminators have a smaller configuration
// surface than the teacher's Workers (no task buffering/ordering modes — a
// Stream is already ordered by construction).
type Option func(*terminatorOptions)

type poolKind int

const (
	poolKindUnspecified poolKind = iota
	poolKindDynamic
	poolKindFixed
)

type terminatorOptions struct {
	metrics       metrics.Provider
	poolKind      poolKind
	fixedCapacity uint
	stopOnError   bool
	onError       func(error)
}

func defaultTerminatorOptions() terminatorOptions {
	return terminatorOptions{
		metrics: metrics.NewNoopProvider(),
	}
}

// WithMetrics records per-item counters/histograms through provider instead
// of the default no-op provider (spec.md's SUPPLEMENTED FEATURES; grounded
// on teacher's metrics.Provider wiring).
func WithMetrics(provider metrics.Provider) Option {
	return func(o *terminatorOptions) { o.metrics = provider }
}

// WithFixedPool selects a fixed-capacity handler-slot pool (see pool.Fixed),
// instead of the default dynamic sync.Pool-backed one.
func WithFixedPool(capacity uint) Option {
	return func(o *terminatorOptions) {
		if o.poolKind != poolKindUnspecified && o.poolKind != poolKindFixed {
			panic("fluxion: conflicting pool options: WithFixedPool and WithDynamicPool both specified")
		}
		if capacity == 0 {
			panic("fluxion: WithFixedPool requires capacity > 0")
		}
		o.poolKind = poolKindFixed
		o.fixedCapacity = capacity
	}
}

// WithDynamicPool selects the dynamic sync.Pool-backed handler-slot pool
// (the default).
func WithDynamicPool() Option {
	return func(o *terminatorOptions) {
		if o.poolKind != poolKindUnspecified && o.poolKind != poolKindDynamic {
			panic("fluxion: conflicting pool options: WithFixedPool and WithDynamicPool both specified")
		}
		o.poolKind = poolKindDynamic
	}
}

// WithStopOnError makes Subscribe return as soon as the first handler
// failure is observed, instead of draining the whole stream and aggregating
// every failure. Stream-level StreamItem errors never trigger an early
// return (spec.md §7: "do not abort the subscription") regardless of this
// option; see WithErrorCallback for observing them.
func WithStopOnError() Option {
	return func(o *terminatorOptions) { o.stopOnError = true }
}

// WithErrorCallback registers h to be invoked, synchronously and in stream
// order, for every StreamItem error a terminator observes (spec.md §4.11.1:
// "On Error, invoke the user's error callback, not the handler"; §7: stream
// errors "are delivered to the user's error callback... and do not abort
// the subscription"). Stream errors observed this way are never added to
// the terminator's aggregated MultipleErrors return value — only handler
// failures are. Without this option, stream errors are silently dropped
// after being counted in metrics.
func WithErrorCallback(h func(error)) Option {
	return func(o *terminatorOptions) { o.onError = h }
}

func buildTerminatorOptions(opts []Option) terminatorOptions {
	o := defaultTerminatorOptions()
	for _, opt := range opts {
		if opt == nil {
			panic("fluxion: nil option")
		}
		opt(&o)
	}
	return o
}

func (o terminatorOptions) newHandlerSlotPool(newFn func() interface{}) pool.Pool {
	if o.poolKind == poolKindFixed {
		return pool.NewFixed(o.fixedCapacity, newFn)
	}
	return pool.NewDynamic(newFn)
}
