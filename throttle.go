package fluxion

import (
	"time"

	"github.com/ygrebnov/fluxion/timer"
)

// Throttle is ThrottleWithTimer bound to timer.System{}, the default-timer
// primary form spec.md §6.1 names.
func Throttle[T Fluxion, TS Timestamp](s Stream[T, TS], d time.Duration) Stream[T, TS] {
	return ThrottleWithTimer(s, d, timer.System{})
}

// ThrottleWithTimer emits a value immediately, then drops every value that
// arrives within d of the last emission — leading-edge throttling (spec.md
// §5). Errors always pass through, and do not reset the throttle window.
// This is the advanced form for callers supplying their own timer.Timer;
// most callers want Throttle.
func ThrottleWithTimer[T Fluxion, TS Timestamp](s Stream[T, TS], d time.Duration, tm timer.Timer) Stream[T, TS] {
	out := make(chan StreamItem[T, TS])

	go func() {
		defer close(out)

		var lastEmit time.Time
		emitted := false

		for item := range s {
			if item.IsError() {
				out <- item
				continue
			}
			now := tm.Now()
			if emitted && now.Sub(lastEmit) < d {
				continue
			}
			lastEmit = now
			emitted = true
			out <- item
		}
	}()

	return out
}
