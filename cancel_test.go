package fluxion

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCancellationToken_CancelIsIdempotent(t *testing.T) {
	tok := NewCancellationToken()
	require.False(t, tok.Cancelled())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok.Cancel()
		}()
	}
	wg.Wait()

	require.True(t, tok.Cancelled())
	select {
	case <-tok.Done():
	default:
		t.Fatal("Done channel should be closed after Cancel")
	}
}

func TestCancellationToken_IndependentInstances(t *testing.T) {
	a := NewCancellationToken()
	b := NewCancellationToken()
	a.Cancel()
	require.True(t, a.Cancelled())
	require.False(t, b.Cancelled())
}
