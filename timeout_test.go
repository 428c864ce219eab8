package fluxion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/fluxion/timer"
)

func TestTimeout_FiresWhenNoItemArrives(t *testing.T) {
	src := make(chan StreamItem[int, int])
	out := TimeoutWithTimer(Stream[int, int](src), 20*time.Millisecond, timer.System{})

	go func() {
		src <- Value[int, int](1, 1)
		// then stay silent past the deadline
	}()

	got := drain(out)
	require.Len(t, got, 2)
	require.False(t, got[0].IsError())
	require.True(t, got[1].IsError())

	err, _ := got[1].TryError()
	var fe *FluxionError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, KindStreamProcessing, fe.Kind())
}

func TestTimeout_DefaultTimerFormFires(t *testing.T) {
	src := make(chan StreamItem[int, int])
	out := Timeout(Stream[int, int](src), 20*time.Millisecond)

	got := drain(out)
	require.Len(t, got, 1)
	require.True(t, got[0].IsError())
}
