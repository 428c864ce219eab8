package fluxion

// CombineLatest emits a snapshot of every upstream's latest value each time
// any upstream emits, once every upstream has emitted at least once and the
// supplied predicate accepts the assembled state (spec.md §4.2). The
// snapshot is []T rather than a fixed-arity tuple: Go generics cannot
// express a variadic tuple type, so the slice index mirrors the upstream
// index, same convention SourceIndex() uses elsewhere.
//
// predicate is consulted only once every upstream has produced at least one
// value; a predicate that always returns true reproduces the unconditional
// form used in spec.md §8.2 scenario 2.
//
// Errors pass through immediately, tagged with the upstream index that
// produced them, without waiting for every upstream to have emitted.
func CombineLatest[T Fluxion, TS Timestamp](predicate func([]T) bool, upstreams ...Stream[T, TS]) (Stream[[]T, TS], error) {
	if len(upstreams) == 0 {
		return nil, ErrEmptyUpstreams
	}

	out := make(chan StreamItem[[]T, TS])
	n := len(upstreams)

	go func() {
		defer close(out)

		latest := make([]T, n)
		filled := make([]bool, n)
		filledCount := 0

		for entry := range orderedMergeIndexed(upstreams...) {
			if err, isErr := entry.item.TryError(); isErr {
				out <- Error[[]T](TagSourceError(err, "combine_latest", entry.source), entry.item.Timestamp())
				continue
			}

			v, _ := entry.item.TryValue()
			latest[entry.source] = v
			if !filled[entry.source] {
				filled[entry.source] = true
				filledCount++
			}

			if filledCount < n {
				continue
			}

			snapshot := make([]T, n)
			copy(snapshot, latest)
			if !predicate(snapshot) {
				continue
			}
			out <- Value(snapshot, entry.item.Timestamp())
		}
	}()

	return out, nil
}
