package fluxion

// PreviousAndCurrent is the pair CombineWithPrevious emits.
type PreviousAndCurrent[T Fluxion] struct {
	Previous T
	Current  T
}

// CombineWithPrevious pairs each value with the one immediately before it
// (spec.md §4.6). The first value has no predecessor, so it is not emitted
// on its own — pairing starts from the second value. Errors pass through
// untouched and do not become the "previous" of the next pair.
func CombineWithPrevious[T Fluxion, TS Timestamp](s Stream[T, TS]) Stream[PreviousAndCurrent[T], TS] {
	out := make(chan StreamItem[PreviousAndCurrent[T], TS])
	go func() {
		defer close(out)
		var prev T
		hasPrev := false
		for item := range s {
			if err, isErr := item.TryError(); isErr {
				out <- Error[PreviousAndCurrent[T]](err, item.Timestamp())
				continue
			}
			v, _ := item.TryValue()
			if hasPrev {
				out <- Value(PreviousAndCurrent[T]{Previous: prev, Current: v}, item.Timestamp())
			}
			prev, hasPrev = v, true
		}
	}()
	return out
}
