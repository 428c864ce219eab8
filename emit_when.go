package fluxion

import "container/heap"

// EmitWhen passes a source item through only while gate's latest value
// satisfies predicate (spec.md §4.5). Before gate has emitted its first
// value the gate is considered closed. The latest source value is always
// buffered, even while the gate is closed; a gate value that satisfies
// predicate re-emits that buffered value stamped with the gate item's
// timestamp.
//
// Errors on source pass through immediately, tagged with source index 0.
// Errors on gate are forwarded too (tagged with source index 1), and close
// the gate (predicate is not consulted again until gate produces a new
// value).
func EmitWhen[T, G Fluxion, TS Timestamp](source Stream[T, TS], gate Stream[G, TS], predicate func(G) bool) Stream[T, TS] {
	out := make(chan StreamItem[T, TS])

	go func() {
		defer close(out)

		var latestGate G
		gateOpen := false

		var bufferedSource T
		hasBuffered := false

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
			item, ok := <-gate
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
					out <- Error[T](TagSourceError(err, "emit_when", 0), entry.source.Timestamp())
				} else {
					v, _ := entry.source.TryValue()
					bufferedSource = v
					hasBuffered = true
					if gateOpen {
						out <- entry.source
					}
				}
				pull(true)
				continue
			}

			if err, isErr := entry.gate.TryError(); isErr {
				out <- Error[T](TagSourceError(err, "emit_when", 1), entry.gate.Timestamp())
				gateOpen = false
			} else {
				v, _ := entry.gate.TryValue()
				latestGate = v
				gateOpen = predicate(latestGate)
				// A filter item that opens the gate re-emits whatever source
				// value is currently buffered, stamped with the filter's own
				// timestamp (spec.md §4.5, §8.2 scenario 3) — not the source
				// item's original timestamp.
				if gateOpen && hasBuffered {
					out <- Value(bufferedSource, entry.gate.Timestamp())
				}
			}
			pull(false)
		}
	}()

	return out
}

type ewEntry[T, G Fluxion, TS Timestamp] struct {
	isSource bool
	source   StreamItem[T, TS]
	gate     StreamItem[G, TS]
}

func (e ewEntry[T, G, TS]) timestamp() TS {
	if e.isSource {
		return e.source.Timestamp()
	}
	return e.gate.Timestamp()
}

type ewHeap[T, G Fluxion, TS Timestamp] []ewEntry[T, G, TS]

func (h ewHeap[T, G, TS]) Len() int { return len(h) }

func (h ewHeap[T, G, TS]) Less(i, j int) bool {
	ti, tj := h[i].timestamp(), h[j].timestamp()
	if ti != tj {
		return ti < tj
	}
	// source items (false isSource sorts after true? keep source before gate on tie)
	return h[i].isSource && !h[j].isSource
}

func (h ewHeap[T, G, TS]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *ewHeap[T, G, TS]) Push(x any) {
	*h = append(*h, x.(ewEntry[T, G, TS]))
}

func (h *ewHeap[T, G, TS]) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	*h = old[:n-1]
	return entry
}
