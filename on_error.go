package fluxion

// OnError invokes handler for every error item, forwarding values
// untouched. If handler returns true the error is consumed — swallowed,
// not forwarded; if false, the error is forwarded downstream unchanged
// (spec.md §4.8; chain-of-responsibility composition in §8.2 scenario 5:
// a later OnError stage never observes an error an earlier stage
// consumed).
func OnError[T Fluxion, TS Timestamp](s Stream[T, TS], handler func(error) bool) Stream[T, TS] {
	out := make(chan StreamItem[T, TS])
	go func() {
		defer close(out)
		for item := range s {
			if err, isErr := item.TryError(); isErr {
				if handler(err) {
					continue
				}
				out <- item
				continue
			}
			out <- item
		}
	}()
	return out
}
