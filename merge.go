package fluxion

import "container/heap"

// OrderedMerge fans multiple upstreams into one stream that emits items in
// non-decreasing timestamp order, breaking ties by upstream index (spec.md
// §4.1). It is the algorithmic keystone every multi-source operator in this
// package is built on.
//
// The approach is the classic k-way merge over a priority queue, adapted to
// channels: a "frontier" holds at most one buffered item per upstream.
// Initially one item is pulled from every upstream; each emission pops the
// frontier's minimum, then pulls a replacement from that same upstream's
// channel. Cost is O(log N) per emission for N live upstreams, matching
// container/heap's guarantees — no corpus example supplies a generic
// priority-queue merge, so this is built directly on the standard library's
// heap.Interface (see DESIGN.md).
//
// An upstream closing simply drops out of the frontier; OrderedMerge closes
// its output once every upstream has closed.
//
// An error with no prior item on its own upstream is synthesized a
// timestamp rather than trusting whatever it was constructed with — see
// orderedMergeIndexed's push closure and DESIGN.md's Open Questions entry.
func OrderedMerge[T Fluxion, TS Timestamp](upstreams ...Stream[T, TS]) Stream[T, TS] {
	out := make(chan StreamItem[T, TS])
	if len(upstreams) == 0 {
		close(out)
		return out
	}

	indexed := orderedMergeIndexed(upstreams...)
	go func() {
		defer close(out)
		for entry := range indexed {
			out <- entry.item
		}
	}()

	return out
}

// orderedMergeIndexed is OrderedMerge's core, exposing the source index each
// emitted item came from. CombineLatest and MergeWith need that attribution,
// so they build on this rather than on OrderedMerge itself. WithLatestFrom,
// EmitWhen, TakeLatestWhen and TakeWhileWith merge upstreams of different
// item types, so they run their own heaps (wlfHeap, ewHeap) instead.
func orderedMergeIndexed[T Fluxion, TS Timestamp](upstreams ...Stream[T, TS]) <-chan mergeEntry[T, TS] {
	out := make(chan mergeEntry[T, TS])
	if len(upstreams) == 0 {
		close(out)
		return out
	}

	go func() {
		defer close(out)

		h := &mergeHeap[T, TS]{}
		heap.Init(h)

		// prevTS/havePrev track, per upstream, the timestamp of the last item
		// pulled from it — the "upstream's previous item" spec.md §4.1's
		// Errors paragraph synthesizes a missing error timestamp from.
		prevTS := make([]TS, len(upstreams))
		havePrev := make([]bool, len(upstreams))

		push := func(idx int, item StreamItem[T, TS]) {
			ts := item.Timestamp()
			if item.IsError() {
				if havePrev[idx] {
					ts = prevTS[idx]
				} else if h.Len() > 0 {
					// No prior item from this upstream: fall back to the
					// current heap root's timestamp, so the error still
					// emits in its arrival window (spec.md §4.1).
					ts = (*h)[0].item.Timestamp()
				} else {
					var zero TS
					ts = zero
				}
				item = item.WithTimestamp(ts)
			}
			prevTS[idx] = ts
			havePrev[idx] = true
			heap.Push(h, mergeEntry[T, TS]{item: item, source: idx})
		}

		for idx, up := range upstreams {
			if item, ok := <-up; ok {
				push(idx, item)
			}
		}

		for h.Len() > 0 {
			entry := heap.Pop(h).(mergeEntry[T, TS])
			out <- entry

			if next, ok := <-upstreams[entry.source]; ok {
				push(entry.source, next)
			}
		}
	}()

	return out
}

type mergeEntry[T Fluxion, TS Timestamp] struct {
	item   StreamItem[T, TS]
	source int
}

// mergeHeap implements container/heap.Interface, ordering by timestamp then
// by source index to make ties deterministic.
type mergeHeap[T Fluxion, TS Timestamp] []mergeEntry[T, TS]

func (h mergeHeap[T, TS]) Len() int { return len(h) }

func (h mergeHeap[T, TS]) Less(i, j int) bool {
	ti, tj := h[i].item.Timestamp(), h[j].item.Timestamp()
	if ti != tj {
		return ti < tj
	}
	return h[i].source < h[j].source
}

func (h mergeHeap[T, TS]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *mergeHeap[T, TS]) Push(x any) {
	*h = append(*h, x.(mergeEntry[T, TS]))
}

func (h *mergeHeap[T, TS]) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	*h = old[:n-1]
	return entry
}
