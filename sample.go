package fluxion

import (
	"time"

	"github.com/ygrebnov/fluxion/timer"
)

// Sample is SampleWithTimer bound to timer.System{}, the default-timer
// primary form spec.md §6.1 names.
func Sample[T Fluxion, TS Timestamp](s Stream[T, TS], d time.Duration) Stream[T, TS] {
	return SampleWithTimer(s, d, timer.System{})
}

// SampleWithTimer emits source's latest value once every d, the time-bound
// sibling of TakeLatestWhen (spec.md §5: periodic tick instead of a trigger
// stream). The emitted item keeps its own original timestamp — the tick
// only decides when, never what, is re-emitted. Errors pass through the
// instant they arrive, independent of the sampling tick. This is the
// advanced form for callers supplying their own timer.Timer; most callers
// want Sample.
func SampleWithTimer[T Fluxion, TS Timestamp](s Stream[T, TS], d time.Duration, tm timer.Timer) Stream[T, TS] {
	out := make(chan StreamItem[T, TS])

	go func() {
		defer close(out)

		handle := tm.NewHandle(d)
		defer handle.Stop()

		var latest StreamItem[T, TS]
		have := false

		for {
			select {
			case item, ok := <-s:
				if !ok {
					return
				}
				if item.IsError() {
					out <- item
					continue
				}
				latest = item
				have = true

			case <-handle.C():
				if have {
					out <- latest
					have = false
				}
				handle.Reset(d)
			}
		}
	}()

	return out
}
