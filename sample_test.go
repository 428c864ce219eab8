package fluxion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/fluxion/timer"
)

func TestSample_EmitsLatestOncePerTickThenClearsBuffer(t *testing.T) {
	src := make(chan StreamItem[int, int])
	out := SampleWithTimer(Stream[int, int](src), 40*time.Millisecond, timer.System{})

	go func() {
		src <- Value[int, int](1, 1)
		time.Sleep(60 * time.Millisecond) // one tick fires, buffer has 1
		// no new value before the second tick: it must emit nothing
		time.Sleep(60 * time.Millisecond)
		src <- Value[int, int](2, 2)
		time.Sleep(60 * time.Millisecond)
		close(src)
	}()

	got := drain(out)

	require.Len(t, got, 2, "an empty tick must not re-emit the previous value")
	v0, _ := got[0].TryValue()
	v1, _ := got[1].TryValue()
	require.Equal(t, 1, v0)
	require.Equal(t, 2, v1)
}

func TestSample_DefaultTimerFormEmitsLatest(t *testing.T) {
	src := make(chan StreamItem[int, int])
	out := Sample(Stream[int, int](src), 40*time.Millisecond)

	go func() {
		src <- Value[int, int](1, 1)
		time.Sleep(60 * time.Millisecond)
		close(src)
	}()

	got := drain(out)
	require.Len(t, got, 1)
	v0, _ := got[0].TryValue()
	require.Equal(t, 1, v0)
}
