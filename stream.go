package fluxion

import "time"

// Stream is the pull-driven, lazy sequence every operator consumes and
// produces: a receive-only channel of StreamItem. This is the concrete
// rendition of spec.md §6.1's "Unbounded MPSC channel capability" — in Go,
// the channel itself is the capability; there is no separate Sender/Receiver
// pair to inject.
type Stream[T Fluxion, TS Timestamp] <-chan StreamItem[T, TS]

// Source wraps a Stream to offer chainable operator methods for the subset
// of operators that do not change the item type (Go generics cannot add a
// fresh method type parameter to reshape T, so type-changing operators —
// MapOrdered, CombineLatest's snapshot type, WindowByCount, etc. — are free
// functions instead).
type Source[T Fluxion, TS Timestamp] struct {
	Stream[T, TS]
}

// NewSource wraps s for chaining.
func NewSource[T Fluxion, TS Timestamp](s Stream[T, TS]) Source[T, TS] {
	return Source[T, TS]{Stream: s}
}

func (s Source[T, TS]) FilterOrdered(p func(T) bool) Source[T, TS] {
	return NewSource(FilterOrdered(s.Stream, p))
}

func (s Source[T, TS]) DistinctUntilChanged() Source[T, TS] {
	return NewSource(DistinctUntilChanged(s.Stream))
}

func (s Source[T, TS]) TakeItems(n int) Source[T, TS] {
	return NewSource(TakeItems(s.Stream, n))
}

func (s Source[T, TS]) SkipItems(n int) Source[T, TS] {
	return NewSource(SkipItems(s.Stream, n))
}

func (s Source[T, TS]) Tap(f func(T)) Source[T, TS] {
	return NewSource(Tap(s.Stream, f))
}

func (s Source[T, TS]) OnError(h func(error) bool) Source[T, TS] {
	return NewSource(OnError(s.Stream, h))
}

func (s Source[T, TS]) StartWith(values ...StreamItem[T, TS]) Source[T, TS] {
	return NewSource(StartWith(s.Stream, values...))
}

func (s Source[T, TS]) SampleRatio(r float64, seed uint64) Source[T, TS] {
	return NewSource(SampleRatio(s.Stream, r, seed))
}

// Debounce, Throttle, Delay, Sample and Timeout below are the chainable
// forms of this package's time-bound operators, all bound to the default
// timer.System{} — matching spec.md §6.1's "users write
// stream.debounce(duration) without naming a timer." Callers needing a
// pluggable timer.Timer use the free *WithTimer functions directly instead.

func (s Source[T, TS]) Debounce(d time.Duration) Source[T, TS] {
	return NewSource(Debounce(s.Stream, d))
}

func (s Source[T, TS]) Throttle(d time.Duration) Source[T, TS] {
	return NewSource(Throttle(s.Stream, d))
}

func (s Source[T, TS]) Delay(d time.Duration) Source[T, TS] {
	return NewSource(Delay(s.Stream, d))
}

func (s Source[T, TS]) Sample(d time.Duration) Source[T, TS] {
	return NewSource(Sample(s.Stream, d))
}

func (s Source[T, TS]) Timeout(d time.Duration) Source[T, TS] {
	return NewSource(Timeout(s.Stream, d))
}
