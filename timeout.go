package fluxion

import (
	"time"

	"github.com/ygrebnov/fluxion/timer"
)

// Timeout is TimeoutWithTimer bound to timer.System{}, the default-timer
// primary form spec.md §6.1 names.
func Timeout[T Fluxion, TS Timestamp](s Stream[T, TS], d time.Duration) Stream[T, TS] {
	return TimeoutWithTimer(s, d, timer.System{})
}

// TimeoutWithTimer forwards every item, but if d elapses with no item
// arriving it emits a single KindStreamProcessing FluxionError and closes
// (spec.md §5; errors.go's KindStreamProcessing doc cites exactly this
// operator). The error's timestamp is the zero value of TS since no
// upstream item anchors it. This is the advanced form for callers supplying
// their own timer.Timer; most callers want Timeout.
func TimeoutWithTimer[T Fluxion, TS Timestamp](s Stream[T, TS], d time.Duration, tm timer.Timer) Stream[T, TS] {
	out := make(chan StreamItem[T, TS])

	go func() {
		defer close(out)

		handle := tm.NewHandle(d)
		defer handle.Stop()

		for {
			select {
			case item, ok := <-s:
				if !ok {
					return
				}
				out <- item
				handle.Reset(d)

			case <-handle.C():
				var zero TS
				out <- Error[T](NewStreamProcessingError("timeout: no item within deadline"), zero)
				return
			}
		}
	}()

	return out
}
