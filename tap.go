package fluxion

// Tap invokes f for every value's side effect, forwarding the item
// unchanged (spec.md §4.6). f is never called for error items.
func Tap[T Fluxion, TS Timestamp](s Stream[T, TS], f func(T)) Stream[T, TS] {
	out := make(chan StreamItem[T, TS])
	go func() {
		defer close(out)
		for item := range s {
			if v, ok := item.TryValue(); ok {
				f(v)
			}
			out <- item
		}
	}()
	return out
}
