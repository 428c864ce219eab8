package fluxion

import "container/heap"

// WithLatestSnapshot is the item WithLatestFrom emits: the triggering
// primary value paired with the latest known value from every "other"
// upstream at the moment the primary fired.
type WithLatestSnapshot[T, U Fluxion] struct {
	Primary T
	Others  []U
}

// WithLatestFrom emits once per primary item, pairing it with the latest
// value seen on each of others (spec.md §4.3). Unlike CombineLatest, only
// primary triggers emission; others are sampled, not merged as triggers.
// No emission happens until every other upstream has produced at least one
// value, so the snapshot is always fully populated.
//
// Errors on primary pass through immediately, tagged with source index 0.
// Errors on an "other" upstream are forwarded too (tagged with their
// 1-based source index) since they still signal a broken upstream, but they
// never themselves trigger an emission.
func WithLatestFrom[T, U Fluxion, TS Timestamp](primary Stream[T, TS], others ...Stream[U, TS]) (Stream[WithLatestSnapshot[T, U], TS], error) {
	if len(others) == 0 {
		return nil, ErrEmptyUpstreams
	}

	out := make(chan StreamItem[WithLatestSnapshot[T, U], TS])
	n := len(others)

	go func() {
		defer close(out)

		latest := make([]U, n)
		filled := make([]bool, n)
		filledCount := 0

		h := &wlfHeap[T, U, TS]{}
		heap.Init(h)

		pull := func(source int) bool {
			if source == 0 {
				item, ok := <-primary
				if !ok {
					return false
				}
				heap.Push(h, wlfEntry[T, U, TS]{source: 0, primary: item})
				return true
			}
			item, ok := <-others[source-1]
			if !ok {
				return false
			}
			heap.Push(h, wlfEntry[T, U, TS]{source: source, other: item})
			return true
		}

		pull(0)
		for i := range others {
			pull(i + 1)
		}

		for h.Len() > 0 {
			entry := heap.Pop(h).(wlfEntry[T, U, TS])

			if entry.source == 0 {
				if err, isErr := entry.primary.TryError(); isErr {
					out <- Error[WithLatestSnapshot[T, U]](TagSourceError(err, "with_latest_from", 0), entry.primary.Timestamp())
				} else if filledCount == n {
					v, _ := entry.primary.TryValue()
					snapshot := WithLatestSnapshot[T, U]{Primary: v, Others: make([]U, n)}
					copy(snapshot.Others, latest)
					out <- Value(snapshot, entry.primary.Timestamp())
				}
			} else {
				idx := entry.source - 1
				if err, isErr := entry.other.TryError(); isErr {
					out <- Error[WithLatestSnapshot[T, U]](TagSourceError(err, "with_latest_from", entry.source), entry.other.Timestamp())
				} else {
					v, _ := entry.other.TryValue()
					latest[idx] = v
					if !filled[idx] {
						filled[idx] = true
						filledCount++
					}
				}
			}

			pull(entry.source)
		}
	}()

	return out, nil
}

type wlfEntry[T, U Fluxion, TS Timestamp] struct {
	source  int
	primary StreamItem[T, TS]
	other   StreamItem[U, TS]
}

func (e wlfEntry[T, U, TS]) timestamp() TS {
	if e.source == 0 {
		return e.primary.Timestamp()
	}
	return e.other.Timestamp()
}

type wlfHeap[T, U Fluxion, TS Timestamp] []wlfEntry[T, U, TS]

func (h wlfHeap[T, U, TS]) Len() int { return len(h) }

func (h wlfHeap[T, U, TS]) Less(i, j int) bool {
	ti, tj := h[i].timestamp(), h[j].timestamp()
	if ti != tj {
		return ti < tj
	}
	return h[i].source < h[j].source
}

func (h wlfHeap[T, U, TS]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *wlfHeap[T, U, TS]) Push(x any) {
	*h = append(*h, x.(wlfEntry[T, U, TS]))
}

func (h *wlfHeap[T, U, TS]) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	*h = old[:n-1]
	return entry
}
