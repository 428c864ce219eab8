package fluxion

import "context"

// SubscribeAll processes a fixed, already-known batch of items (supplemented
// feature: the teacher's RunAll operates on a []Task slice rather than a
// channel, and this is that same "batch of known size" convenience applied
// to Subscribe). It is a thin wrapper: items are loaded into a closed,
// pre-filled channel and handed to Subscribe.
func SubscribeAll[T Fluxion, TS Timestamp](ctx context.Context, items []StreamItem[T, TS], handler HandlerFunc[T], opts ...Option) error {
	ch := make(chan StreamItem[T, TS], len(items))
	for _, item := range items {
		ch <- item
	}
	close(ch)

	return Subscribe[T, TS](ctx, ch, handler, opts...)
}
