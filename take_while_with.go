package fluxion

import "container/heap"

// TakeWhileWith emits source items (timestamp preserved) for as long as the
// most recent filter item satisfies predicate (spec.md §4.7). The operator
// terminates the first time predicate fails on a filter item; because both
// streams are evaluated through a single timestamp-ordered heap — the same
// frontier shape as EmitWhen and TakeLatestWhen — a failing filter item that
// arrives before or at the same timestamp as the next source item is always
// observed first, so the termination point is deterministic regardless of
// arrival order.
//
// Before any filter item has arrived, the gate is considered open: source
// items pass through until the first filter failure. Errors on either
// stream pass through immediately (tagged with source index 0 for source,
// 1 for filter) without affecting the gate state.
func TakeWhileWith[T, G Fluxion, TS Timestamp](source Stream[T, TS], filter Stream[G, TS], predicate func(G) bool) Stream[T, TS] {
	out := make(chan StreamItem[T, TS])

	go func() {
		defer close(out)

		filterOK := true

		h := &ewHeap[T, G, TS]{}
		heap.Init(h)

		pull := func(isSource bool) bool {
			if isSource {
				item, ok := <-source
				if !ok {
					return false
				}
				heap.Push(h, ewEntry[T, G, TS]{isSource: true, source: item})
				return true
			}
			item, ok := <-filter
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
					out <- Error[T](TagSourceError(err, "take_while_with", 0), entry.source.Timestamp())
					pull(true)
					continue
				}
				// The heap pops a source item before a filter item with the same
				// timestamp, so that filter item is evaluated here first.
				if h.Len() > 0 && !(*h)[0].isSource && (*h)[0].timestamp() == entry.source.Timestamp() {
					if v, ok := (*h)[0].gate.TryValue(); ok && !predicate(v) {
						return
					}
				}
				if !filterOK {
					return
				}
				out <- entry.source
				pull(true)
				continue
			}

			if err, isErr := entry.gate.TryError(); isErr {
				out <- Error[T](TagSourceError(err, "take_while_with", 1), entry.gate.Timestamp())
				pull(false)
				continue
			}

			v, _ := entry.gate.TryValue()
			filterOK = predicate(v)
			if !filterOK {
				return
			}
			pull(false)
		}
	}()

	return out
}
