package fluxion

// StartWith prepends values ahead of s's own items, emitted in the order
// given before anything from s is read (spec.md §4.6). Callers are
// responsible for timestamps that keep the prepended items ordered
// consistently with s's own timestamps if that matters downstream.
func StartWith[T Fluxion, TS Timestamp](s Stream[T, TS], values ...StreamItem[T, TS]) Stream[T, TS] {
	out := make(chan StreamItem[T, TS])
	go func() {
		defer close(out)
		for _, v := range values {
			out <- v
		}
		for item := range s {
			out <- item
		}
	}()
	return out
}
