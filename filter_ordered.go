package fluxion

// FilterOrdered drops values that do not satisfy p, preserving order and
// passing errors through untouched (spec.md §4.6).
func FilterOrdered[T Fluxion, TS Timestamp](s Stream[T, TS], p func(T) bool) Stream[T, TS] {
	out := make(chan StreamItem[T, TS])
	go func() {
		defer close(out)
		for item := range s {
			if v, ok := item.TryValue(); ok && !p(v) {
				continue
			}
			out <- item
		}
	}()
	return out
}
