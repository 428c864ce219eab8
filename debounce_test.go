package fluxion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/fluxion/timer"
)

func TestDebounce_CollapsesBurstToLastValue(t *testing.T) {
	src := make(chan StreamItem[int, int])
	out := DebounceWithTimer(Stream[int, int](src), 30*time.Millisecond, timer.System{})

	go func() {
		src <- Value[int, int](1, 1)
		src <- Value[int, int](2, 2)
		src <- Value[int, int](3, 3)
		time.Sleep(80 * time.Millisecond)
		close(src)
	}()

	var got []StreamItem[int, int]
	for item := range out {
		got = append(got, item)
	}

	require.Len(t, got, 1)
	v, _ := got[0].TryValue()
	require.Equal(t, 3, v)
}

func TestDebounce_DefaultTimerFormCollapsesBurst(t *testing.T) {
	src := make(chan StreamItem[int, int])
	out := Debounce(Stream[int, int](src), 30*time.Millisecond)

	go func() {
		src <- Value[int, int](1, 1)
		src <- Value[int, int](2, 2)
		time.Sleep(80 * time.Millisecond)
		close(src)
	}()

	got := drain(out)
	require.Len(t, got, 1)
	v, _ := got[0].TryValue()
	require.Equal(t, 2, v)
}

func TestDebounce_ErrorsBypassTheWindow(t *testing.T) {
	src := make(chan StreamItem[int, int])
	out := DebounceWithTimer(Stream[int, int](src), 30*time.Millisecond, timer.System{})

	errItem := Error[int, int](require.AnError, 1)

	go func() {
		src <- errItem
		close(src)
	}()

	got := drain(out)
	require.Len(t, got, 1)
	require.True(t, got[0].IsError())
}
