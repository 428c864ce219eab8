package fluxion

import "container/heap"

// TakeLatestWhen emits source's latest value every time trigger fires and
// predicate accepts the triggering value, re-stamped with trigger's
// timestamp (spec.md §4.6, "on each trigger matching the user predicate,
// emit the buffered value with the trigger's timestamp"; see item.go's
// WithTimestamp). Nothing is emitted until source has produced at least one
// value — a trigger arriving before that is silently dropped, matching a
// trigger predicate rejects it.
//
// Errors on source pass through immediately, tagged with source index 0.
// Errors on trigger are forwarded too, tagged with source index 1, and
// never consult predicate.
func TakeLatestWhen[T, G Fluxion, TS Timestamp](s Stream[T, TS], trigger Stream[G, TS], predicate func(G) bool) Stream[T, TS] {
	out := make(chan StreamItem[T, TS])

	go func() {
		defer close(out)

		var latest T
		hasLatest := false

		h := &ewHeap[T, G, TS]{}
		heap.Init(h)

		pull := func(isSource bool) bool {
			if isSource {
				item, ok := <-s
				if !ok {
					return false
				}
				heap.Push(h, ewEntry[T, G, TS]{isSource: true, source: item})
				return true
			}
			item, ok := <-trigger
			if !ok {
				return false
			}
			heap.Push(h, ewEntry[T, G, TS]{isSource: false, gate: item})
			return true
		}

		pull(true)
		pull(false)

		for h.Len() > 0 {
			entry := heap.Pop(h).(ewEntry[T, G, TS])

			if entry.isSource {
				if err, isErr := entry.source.TryError(); isErr {
					out <- Error[T](TagSourceError(err, "take_latest_when", 0), entry.source.Timestamp())
				} else {
					v, _ := entry.source.TryValue()
					latest, hasLatest = v, true
				}
				pull(true)
				continue
			}

			if err, isErr := entry.gate.TryError(); isErr {
				out <- Error[T](TagSourceError(err, "take_latest_when", 1), entry.gate.Timestamp())
			} else {
				v, _ := entry.gate.TryValue()
				if hasLatest && predicate(v) {
					out <- Value(latest, entry.gate.Timestamp())
				}
			}
			pull(false)
		}
	}()

	return out
}
