package fluxion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCombineWithPrevious(t *testing.T) {
	s := chanOf(Value[int, int](1, 1), Value[int, int](2, 2), Value[int, int](3, 3))
	got := drain(CombineWithPrevious(s))
	require.Len(t, got, 2)

	p0, _ := got[0].TryValue()
	require.Equal(t, PreviousAndCurrent[int]{Previous: 1, Current: 2}, p0)
}

func TestWindowByCount(t *testing.T) {
	s := chanOf(
		Value[int, int](1, 1), Value[int, int](2, 2), Value[int, int](3, 3),
		Value[int, int](4, 4), Value[int, int](5, 5),
	)
	got := drain(WindowByCount(s, 2))
	require.Len(t, got, 3)

	b0, _ := got[0].TryValue()
	b2, _ := got[2].TryValue()
	require.Equal(t, []int{1, 2}, b0)
	require.Equal(t, []int{5}, b2, "trailing partial batch is still emitted")
	require.Equal(t, 1, got[0].Timestamp(), "batch is stamped with its first member's timestamp")
}

func TestWindowByCount_ErrorFlushesPartialBatch(t *testing.T) {
	boomErr := errors.New("boom")
	s := chanOf(
		Value[int, int](1, 1),
		Error[int, int](boomErr, 2),
		Value[int, int](2, 3),
	)

	got := drain(WindowByCount(s, 3))
	require.Len(t, got, 3, "the partial [1] batch is flushed, then the error, then the trailing [2] batch")

	b0, _ := got[0].TryValue()
	require.Equal(t, []int{1}, b0)
	require.True(t, got[1].IsError())
	b2, _ := got[2].TryValue()
	require.Equal(t, []int{2}, b2)
}

func TestSampleRatio_ZeroKeepsNothing(t *testing.T) {
	s := chanOf(Value[int, int](1, 1), Value[int, int](2, 2), Value[int, int](3, 3))
	got := drain(SampleRatio(s, 0, 42))
	require.Empty(t, got)
}

func TestSampleRatio_OneKeepsEverything(t *testing.T) {
	s := chanOf(Value[int, int](1, 1), Value[int, int](2, 2), Value[int, int](3, 3))
	got := drain(SampleRatio(s, 1, 42))
	require.Len(t, got, 3)
}

func TestSampleRatio_OutOfRangeEmitsError(t *testing.T) {
	s := chanOf(Value[int, int](1, 1))
	got := drain(SampleRatio(s, 1.5, 1))
	require.Len(t, got, 1)
	require.True(t, got[0].IsError())
	err, _ := got[0].TryError()
	require.ErrorIs(t, err, ErrSampleRatioRange)
}

func TestScanOrdered_AccumulatesRunningSum(t *testing.T) {
	s := chanOf(Value[int, int](1, 1), Value[int, int](2, 2), Value[int, int](3, 3))
	got := drain(ScanOrdered(s, 0, func(acc, v int) int { return acc + v }))

	var sums []int
	for _, item := range got {
		v, _ := item.TryValue()
		sums = append(sums, v)
	}
	require.Equal(t, []int{1, 3, 6}, sums)
}

func TestStartWith_PrependsBeforeSource(t *testing.T) {
	s := chanOf(Value[int, int](2, 2))
	got := drain(StartWith(s, Value[int, int](1, 1)))

	require.Len(t, got, 2)
	v0, _ := got[0].TryValue()
	v1, _ := got[1].TryValue()
	require.Equal(t, 1, v0)
	require.Equal(t, 2, v1)
}

func TestTap_InvokesSideEffectWithoutAlteringStream(t *testing.T) {
	s := chanOf(Value[int, int](1, 1), Value[int, int](2, 2))

	var seen []int
	got := drain(Tap(s, func(v int) { seen = append(seen, v) }))

	require.Equal(t, []int{1, 2}, seen)
	require.Len(t, got, 2)
}

func TestOnError_SwallowsWhenHandlerReturnsTrue(t *testing.T) {
	boom := errors.New("boom")
	s := chanOf(Value[int, int](1, 1), Error[int, int](boom, 2), Value[int, int](2, 3))

	got := drain(OnError(s, func(err error) bool { return true }))
	require.Len(t, got, 2)
}

func TestOnError_ForwardsWhenHandlerReturnsFalse(t *testing.T) {
	boom := errors.New("boom")
	s := chanOf(Value[int, int](1, 1), Error[int, int](boom, 2))

	var handled []error
	got := drain(OnError(s, func(err error) bool {
		handled = append(handled, err)
		return false
	}))
	require.Len(t, got, 2)
	require.Len(t, handled, 1)
}

func TestTakeWhileWith_StopsWhenFilterFails(t *testing.T) {
	source := chanOf(
		Value[int, int](1, 1),
		Value[int, int](2, 2),
		Value[int, int](10, 3),
		Value[int, int](1, 4),
	)
	filter := chanOf(
		Value[bool, int](true, 0),
		Value[bool, int](true, 2),
		Value[bool, int](false, 3),
	)

	got := drain(TakeWhileWith(source, filter, func(b bool) bool { return b }))

	// The filter fails at ts=3, the same timestamp as the third source
	// item; a failing filter item at the same timestamp is evaluated before
	// that source item, so the operator terminates without emitting it or
	// the ts=4 item.
	require.Len(t, got, 2)
	values := make([]int, len(got))
	for i, item := range got {
		values[i], _ = item.TryValue()
	}
	require.Equal(t, []int{1, 2}, values)
}

func TestWithLatestFrom_WaitsForOthersThenSamplesOnPrimary(t *testing.T) {
	primary := chanOf(Value[int, int](1, 1), Value[int, int](2, 3))
	other := chanOf(Value[string, int]("a", 2))

	out, err := WithLatestFrom[int, string, int](primary, other)
	require.NoError(t, err)

	got := drain(out)
	require.Len(t, got, 1, "primary item before other's first value is dropped")

	snap, _ := got[0].TryValue()
	require.Equal(t, 2, snap.Primary)
	require.Equal(t, []string{"a"}, snap.Others)
}

func TestEmitWhen_GateControlsPassthrough(t *testing.T) {
	source := chanOf(
		Value[int, int](1, 1),
		Value[int, int](2, 3),
		Value[int, int](3, 5),
	)
	gate := chanOf(
		Value[bool, int](false, 0),
		Value[bool, int](true, 2),
		Value[bool, int](false, 4),
	)

	got := drain(EmitWhen(source, gate, func(b bool) bool { return b }))
	require.Len(t, got, 2)

	// The gate opening at ts=2 re-emits the currently buffered source value
	// (1, buffered at ts=1) stamped with the gate's own timestamp.
	v0, _ := got[0].TryValue()
	require.Equal(t, 1, v0)
	require.Equal(t, 2, got[0].Timestamp())

	// The source item arriving at ts=3, while the gate is still open,
	// passes through with its own timestamp.
	v1, _ := got[1].TryValue()
	require.Equal(t, 2, v1)
	require.Equal(t, 3, got[1].Timestamp())
}

func TestEmitWhen_FilterTriggerStampsEmission(t *testing.T) {
	source := chanOf(Value[string, int]("x", 5))
	filter := chanOf(Value[bool, int](true, 7))

	got := drain(EmitWhen(source, filter, func(b bool) bool { return b }))
	require.Len(t, got, 1)

	v, _ := got[0].TryValue()
	require.Equal(t, "x", v)
	require.Equal(t, 7, got[0].Timestamp())
}

func TestTakeLatestWhen_EmitsLatestSourceOnTrigger(t *testing.T) {
	source := chanOf(Value[int, int](1, 1), Value[int, int](2, 3))
	trigger := chanOf(Value[struct{}, int](struct{}{}, 2), Value[struct{}, int](struct{}{}, 4))

	got := drain(TakeLatestWhen(source, trigger, func(struct{}) bool { return true }))
	require.Len(t, got, 2)

	v0, _ := got[0].TryValue()
	v1, _ := got[1].TryValue()
	require.Equal(t, 1, v0)
	require.Equal(t, 2, v1)
}

func TestTakeLatestWhen_PredicateRejectsTrigger(t *testing.T) {
	source := chanOf(Value[int, int](1, 1), Value[int, int](2, 3))
	trigger := chanOf(
		Value[bool, int](false, 2),
		Value[bool, int](true, 4),
	)

	got := drain(TakeLatestWhen(source, trigger, func(b bool) bool { return b }))
	require.Len(t, got, 1, "the ts=2 trigger fails the predicate and is silently dropped")

	v0, _ := got[0].TryValue()
	require.Equal(t, 2, v0)
	require.Equal(t, 4, got[0].Timestamp())
}

func TestMergeWith_FoldsAcrossUpstreamsInOrder(t *testing.T) {
	a := chanOf(Value[int, int](1, 1), Value[int, int](3, 3))
	b := chanOf(Value[int, int](2, 2))

	sum := func(acc int, v int) int { return acc + v }
	got := drain(MergeWith(0, sum, Stream[int, int](a), Stream[int, int](b)))

	require.Len(t, got, 3)
	values := make([]int, len(got))
	for i, item := range got {
		values[i], _ = item.TryValue()
	}
	require.Equal(t, []int{1, 3, 6}, values, "running sum over 1, then +2, then +3")
}

func TestMergeWith_ErrorPassesThroughWithoutTouchingState(t *testing.T) {
	boomErr := errors.New("boom")
	a := chanOf(Value[int, int](1, 1), Error[int, int](boomErr, 2), Value[int, int](3, 3))

	sum := func(acc int, v int) int { return acc + v }
	got := drain(MergeWith(0, sum, Stream[int, int](a)))

	require.Len(t, got, 3)
	require.False(t, got[0].IsError())
	require.True(t, got[1].IsError())
	require.False(t, got[2].IsError())

	last, _ := got[2].TryValue()
	require.Equal(t, 4, last, "the error did not perturb the running sum")
}
