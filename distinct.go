package fluxion

// DistinctUntilChanged drops a value equal to the immediately preceding
// value, using == (spec.md §4.6). T must be comparable, which Fluxion
// already requires. An error always emits and resets the comparison
// baseline (spec.md §4.8), so the value immediately following an error is
// never suppressed regardless of what preceded the error.
func DistinctUntilChanged[T Fluxion, TS Timestamp](s Stream[T, TS]) Stream[T, TS] {
	out := make(chan StreamItem[T, TS])
	go func() {
		defer close(out)
		var prev T
		hasPrev := false
		for item := range s {
			v, ok := item.TryValue()
			if !ok {
				out <- item
				hasPrev = false
				continue
			}
			if hasPrev && prev == v {
				continue
			}
			prev, hasPrev = v, true
			out <- item
		}
	}()
	return out
}

// DistinctUntilChangedBy is DistinctUntilChanged generalized to a caller
// key function, for values whose natural equality is too coarse or too
// expensive (spec.md §4.6). Like DistinctUntilChanged, an error resets the
// comparison baseline (spec.md §4.8).
func DistinctUntilChangedBy[T Fluxion, K comparable, TS Timestamp](s Stream[T, TS], keyFn func(T) K) Stream[T, TS] {
	out := make(chan StreamItem[T, TS])
	go func() {
		defer close(out)
		var prevKey K
		hasPrev := false
		for item := range s {
			v, ok := item.TryValue()
			if !ok {
				out <- item
				hasPrev = false
				continue
			}
			key := keyFn(v)
			if hasPrev && prevKey == key {
				continue
			}
			prevKey, hasPrev = key, true
			out <- item
		}
	}()
	return out
}
