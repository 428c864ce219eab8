package fluxion

import (
	"context"
	"fmt"
	"time"
)

// HandlerFunc is invoked once per value item by Subscribe/SubscribeLatest.
// It receives its own CancellationToken so a long-running handler can
// observe cancellation without threading extra plumbing through the
// caller's closure.
type HandlerFunc[T Fluxion] func(ctx context.Context, value T, token CancellationToken) error

// Subscribe drains s sequentially, calling handler for every value and
// collecting handler failures into one aggregated error (spec.md §4.11.1).
// Stream-level error items never reach the handler or the aggregate; they
// go to WithErrorCallback if one was registered. Grounded directly on the
// teacher's RunAll (run_all.go): wrap each unit of work, track completion,
// then errors.Join the collected failures — here the join result is
// wrapped as a FluxionError.KindMultiple instead of a plain joined error.
//
// Subscribe never dispatches handler concurrently with itself: stream order
// is the whole point of this package, so the next item is not read until
// the current handler returns.
func Subscribe[T Fluxion, TS Timestamp](ctx context.Context, s Stream[T, TS], handler HandlerFunc[T], opts ...Option) error {
	o := buildTerminatorOptions(opts)

	itemsCounter := o.metrics.Counter("fluxion_items_processed")
	errorsCounter := o.metrics.Counter("fluxion_items_errors")
	durationHist := o.metrics.Histogram("fluxion_items_handler_duration_seconds")

	slots := o.newHandlerSlotPool(newHandlerSlot[T])

	var errs []error

	for item := range s {
		select {
		case <-ctx.Done():
			errs = append(errs, ctx.Err())
			return aggregateErrors(errs)
		default:
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

		start := time.Now()
		err := invokeHandler(ctx, handler, v, slot.token)
		durationHist.Record(time.Since(start).Seconds())
		slots.Put(slot)

		itemsCounter.Add(1)
		if err != nil {
			errorsCounter.Add(1)
			errs = append(errs, err)
			if o.stopOnError {
				return aggregateErrors(errs)
			}
		}
	}

	return aggregateErrors(errs)
}

// invokeHandler runs handler, converting a panic into an error the way the
// teacher's task.go/worker.go do (recover, wrap as an error, never let a
// panic escape the terminator).
func invokeHandler[T Fluxion](ctx context.Context, handler HandlerFunc[T], v T, token CancellationToken) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fluxion: handler panicked: %v", r)
		}
	}()
	return handler(ctx, v, token)
}

// aggregateErrors returns nil (not a typed-nil FluxionError in an error
// interface) when errs is empty, and a KindMultiple FluxionError otherwise.
func aggregateErrors(errs []error) error {
	fe := NewMultipleErrors(errs...)
	if fe == nil {
		return nil
	}
	return fe
}
