package fluxion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func chanOf[T Fluxion, TS Timestamp](items ...StreamItem[T, TS]) Stream[T, TS] {
	ch := make(chan StreamItem[T, TS], len(items))
	for _, it := range items {
		ch <- it
	}
	close(ch)
	return ch
}

func drain[T Fluxion, TS Timestamp](s Stream[T, TS]) []StreamItem[T, TS] {
	var out []StreamItem[T, TS]
	for item := range s {
		out = append(out, item)
	}
	return out
}

func TestOrderedMerge_InterleavesByTimestamp(t *testing.T) {
	a := chanOf(Value[int, int](1, 1), Value[int, int](3, 3), Value[int, int](5, 5))
	b := chanOf(Value[int, int](2, 2), Value[int, int](4, 4), Value[int, int](6, 6))

	merged := OrderedMerge(a, b)
	got := drain(merged)

	require.Len(t, got, 6)
	for i, item := range got {
		v, ok := item.TryValue()
		require.True(t, ok)
		require.Equal(t, i+1, v)
		require.Equal(t, i+1, item.Timestamp())
	}
}

func TestOrderedMerge_TieBreaksOnSourceIndex(t *testing.T) {
	a := chanOf(Value[string, int]("a", 1))
	b := chanOf(Value[string, int]("b", 1))

	got := drain(OrderedMerge(a, b))
	require.Len(t, got, 2)
	v0, _ := got[0].TryValue()
	v1, _ := got[1].TryValue()
	require.Equal(t, "a", v0)
	require.Equal(t, "b", v1)
}

func TestOrderedMerge_NoUpstreams(t *testing.T) {
	got := drain(OrderedMerge[int, int]())
	require.Empty(t, got)
}

func TestOrderedMerge_OneUpstreamClosesEarly(t *testing.T) {
	a := chanOf(Value[int, int](1, 1))
	b := chanOf(Value[int, int](2, 2), Value[int, int](3, 3))

	got := drain(OrderedMerge(a, b))
	require.Len(t, got, 3)
	last, _ := got[2].TryValue()
	require.Equal(t, 3, last)
}

func TestOrderedMerge_ErrorInheritsItsOwnUpstreamsPreviousTimestamp(t *testing.T) {
	boom := errors.New("boom")
	// a's error carries ts=99 from its producer, but a already emitted a
	// value at ts=1 — spec.md §4.1 says the error is "treated as an item
	// with the timestamp of the upstream's previous item," so the merge
	// must override it to 1, discarding the producer-supplied 99.
	a := chanOf(Value[int, int](1, 1), Error[int, int](boom, 99))

	got := drain(OrderedMerge(a))
	require.Len(t, got, 2)
	require.True(t, got[1].IsError())
	require.Equal(t, 1, got[1].Timestamp())
}

func TestOrderedMerge_ErrorWithNoPriorUsesCurrentHeapRoot(t *testing.T) {
	boom := errors.New("boom")
	// b's very first item is an error (no prior item on b), arriving while
	// a's value (ts=5) is already sitting in the frontier — the error is
	// synthesized a's ts=5 rather than keeping its own producer-supplied 999.
	a := chanOf(Value[int, int](10, 5))
	b := chanOf(Error[int, int](boom, 999))

	got := drain(OrderedMerge(a, b))
	require.Len(t, got, 2)

	require.False(t, got[0].IsError())
	require.Equal(t, 5, got[0].Timestamp())

	require.True(t, got[1].IsError())
	require.Equal(t, 5, got[1].Timestamp(), "synthesized from the heap root at push time, not the producer's own 999")
}

func TestOrderedMerge_ErrorWithNoPriorAndEmptyHeapUsesZeroValue(t *testing.T) {
	boom := errors.New("boom")
	// The sole upstream's very first item is an error: no previous item on
	// its own upstream and nothing else in the frontier, so spec.md §4.1's
	// fallback is the zero value of the timestamp type.
	a := chanOf(Error[int, int](boom, 42))

	got := drain(OrderedMerge(a))
	require.Len(t, got, 1)
	require.True(t, got[0].IsError())
	require.Equal(t, 0, got[0].Timestamp())
}
