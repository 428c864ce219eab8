package fluxion

import (
	"context"
	"sync"
	"time"
)

// SubscribeLatest drains s, coalescing bursts: if a new value arrives while
// the previous value's handler is still running, the previous handler's
// CancellationToken is cancelled before the new handler starts (spec.md
// §4.11.2). The superseded handler is not forcibly killed — cancellation is
// cooperative — but its error, if any, is discarded once it has been
// superseded, since only the latest handler's outcome is considered current.
//
// Grounded on run_stream.go's forwarder-goroutine shape (intake loop reading
// from a channel, wrapping each unit, tracking completion) combined with the
// teacher's StopOnError cancellation path (cancel() called before
// forwarding the next unit of work, not after).
func SubscribeLatest[T Fluxion, TS Timestamp](ctx context.Context, s Stream[T, TS], handler HandlerFunc[T], opts ...Option) error {
	o := buildTerminatorOptions(opts)

	itemsCounter := o.metrics.Counter("fluxion_items_processed")
	errorsCounter := o.metrics.Counter("fluxion_items_errors")
	durationHist := o.metrics.Histogram("fluxion_items_handler_duration_seconds")

	slots := o.newHandlerSlotPool(newHandlerSlot[T])

	var (
		mu           sync.Mutex
		errs         []error
		wg           sync.WaitGroup
		currentToken CancellationToken
		haveCurrent  bool
	)

	recordErr := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

loop:
	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			if haveCurrent {
				currentToken.Cancel()
			}
			mu.Unlock()
			recordErr(ctx.Err())
			break loop

		case item, ok := <-s:
			if !ok {
				break loop
			}

			if err, isErr := item.TryError(); isErr {
				errorsCounter.Add(1)
				if o.onError != nil {
					o.onError(err)
				}
				continue
			}

			v, _ := item.TryValue()

			slot := slots.Get().(*handlerSlot[T])
			slot.reset()

			mu.Lock()
			if haveCurrent {
				currentToken.Cancel()
			}
			currentToken = slot.token
			haveCurrent = true
			mu.Unlock()

			wg.Add(1)
			go func(slot *handlerSlot[T], v T) {
				defer wg.Done()
				defer slots.Put(slot)

				start := time.Now()
				err := invokeHandler(ctx, handler, v, slot.token)
				durationHist.Record(time.Since(start).Seconds())
				itemsCounter.Add(1)

				if err != nil && !slot.token.Cancelled() {
					errorsCounter.Add(1)
					recordErr(err)
				}
			}(slot, v)
		}
	}

	wg.Wait()
	return aggregateErrors(errs)
}
