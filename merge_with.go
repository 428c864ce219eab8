package fluxion

// MergeWith folds events from multiple upstreams into one evolving state,
// emitting the state after each reducer application (spec.md §4.4). Unlike
// OrderedMerge, which simply interleaves items by timestamp, MergeWith
// threads every event through reducer to produce a running accumulator —
// the multi-source analogue of ScanOrdered.
//
// Cross-source ordering is preserved by driving the fold from
// orderedMergeIndexed: every event reaches the reducer through the single
// goroutine below, so reducer never runs concurrently with itself and no
// explicit lock is needed to satisfy spec.md §5's "reducers see the state
// under mutual exclusion" — exclusion falls out of the fan-in structure,
// the same simplification DESIGN.md documents for the rest of L2.
//
// Errors from any upstream pass through immediately, tagged with the
// upstream index that produced them, without touching state.
func MergeWith[S, E Fluxion, TS Timestamp](initial S, reducer func(S, E) S, upstreams ...Stream[E, TS]) Stream[S, TS] {
	out := make(chan StreamItem[S, TS])
	if len(upstreams) == 0 {
		close(out)
		return out
	}

	go func() {
		defer close(out)

		state := initial
		for entry := range orderedMergeIndexed(upstreams...) {
			if err, isErr := entry.item.TryError(); isErr {
				out <- Error[S](TagSourceError(err, "merge_with", entry.source), entry.item.Timestamp())
				continue
			}

			v, _ := entry.item.TryValue()
			state = reducer(state, v)
			out <- Value(state, entry.item.Timestamp())
		}
	}()

	return out
}
