package fluxion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/fluxion/spawn"
)

func TestSubject_BroadcastsToAllSubscribers(t *testing.T) {
	subj := NewSubject[int, int](spawn.NewSpawner(context.Background()))

	s1, unsub1 := subj.Subscribe()
	s2, unsub2 := subj.Subscribe()
	defer unsub1()
	defer unsub2()

	require.NoError(t, subj.Send(Value[int, int](1, 1)))

	select {
	case item := <-s1:
		v, _ := item.TryValue()
		require.Equal(t, 1, v)
	case <-time.After(time.Second):
		t.Fatal("subscriber 1 did not receive item")
	}

	select {
	case item := <-s2:
		v, _ := item.TryValue()
		require.Equal(t, 1, v)
	case <-time.After(time.Second):
		t.Fatal("subscriber 2 did not receive item")
	}
}

func TestSubject_SendAfterCloseErrors(t *testing.T) {
	subj := NewSubject[int, int](spawn.NewSpawner(context.Background()))
	subj.Close()

	err := subj.Send(Value[int, int](1, 1))
	require.ErrorIs(t, err, ErrSubjectClosed)
}

func TestSubject_SubscribeAfterCloseReturnsClosedStream(t *testing.T) {
	subj := NewSubject[int, int](spawn.NewSpawner(context.Background()))
	subj.Close()

	s, unsub := subj.Subscribe()
	defer unsub()

	_, ok := <-s
	require.False(t, ok)
}

func TestSubject_UnsubscribeDuringInFlightDetachedSendDoesNotPanic(t *testing.T) {
	subj := NewSubject[int, int](spawn.NewSpawner(context.Background()))

	s, unsub := subj.Subscribe()

	// The subscriber's buffer (capacity 1) is filled without being drained,
	// so the next Send takes the detached-delivery path and blocks trying
	// to hand item 2 to this subscriber.
	require.NoError(t, subj.Send(Value[int, int](1, 1)))
	require.NoError(t, subj.Send(Value[int, int](2, 2)))

	// Unsubscribing while that detached send is still blocked must not
	// panic with "send on closed channel" (spec.md §7; §4.10.1: "in-flight
	// sends to that subscriber are abandoned without error").
	require.NotPanics(t, unsub)

	// The first item was already buffered before unsubscribing and is
	// still drainable; the channel is closed once that buffered item is
	// consumed, and the second (in-flight, abandoned) item never arrives.
	item, ok := <-s
	require.True(t, ok)
	v, _ := item.TryValue()
	require.Equal(t, 1, v)

	_, ok = <-s
	require.False(t, ok, "the subscriber's channel is closed once unsubscribe has drained its in-flight sends")
}
