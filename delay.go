package fluxion

import (
	"time"

	"github.com/ygrebnov/fluxion/timer"
)

// Delay is DelayWithTimer bound to timer.System{}, the default-timer primary
// form spec.md §6.1 names.
func Delay[T Fluxion, TS Timestamp](s Stream[T, TS], d time.Duration) Stream[T, TS] {
	return DelayWithTimer(s, d, timer.System{})
}

// DelayWithTimer forwards every item d after this stage observes it,
// preserving order (spec.md §5). Because deadlines are derived from a
// constant offset applied in arrival order, they are already non-decreasing,
// so a single goroutine waiting sequentially is sufficient — no reordering
// buffer is needed the way OrderedMerge needs one for genuinely concurrent
// sources. This is the advanced form for callers supplying their own
// timer.Timer; most callers want Delay.
func DelayWithTimer[T Fluxion, TS Timestamp](s Stream[T, TS], d time.Duration, tm timer.Timer) Stream[T, TS] {
	out := make(chan StreamItem[T, TS])

	go func() {
		defer close(out)
		for item := range s {
			if d > 0 {
				<-tm.After(d)
			}
			out <- item
		}
	}()

	return out
}
