package fluxion

import (
	"time"

	"github.com/ygrebnov/fluxion/timer"
)

// Debounce is DebounceWithTimer bound to timer.System{}, the default-timer
// primary form spec.md §6.1 names: "users write stream.debounce(duration)
// without naming a timer."
func Debounce[T Fluxion, TS Timestamp](s Stream[T, TS], d time.Duration) Stream[T, TS] {
	return DebounceWithTimer(s, d, timer.System{})
}

// DebounceWithTimer emits a value only once d has elapsed without a newer
// value arriving, collapsing bursts into their last member (spec.md §5).
// Errors are never debounced — they pass through the instant they arrive.
// This is the advanced form for callers supplying their own timer.Timer;
// most callers want Debounce.
func DebounceWithTimer[T Fluxion, TS Timestamp](s Stream[T, TS], d time.Duration, tm timer.Timer) Stream[T, TS] {
	out := make(chan StreamItem[T, TS])

	go func() {
		defer close(out)

		handle := tm.NewHandle(d)
		handle.Stop()

		var pending StreamItem[T, TS]
		have := false

		for {
			select {
			case item, ok := <-s:
				if !ok {
					if have {
						out <- pending
					}
					return
				}
				if item.IsError() {
					out <- item
					continue
				}
				pending = item
				have = true
				handle.Reset(d)

			case <-handle.C():
				if have {
					out <- pending
					have = false
				}
			}
		}
	}()

	return out
}
