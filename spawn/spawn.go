// Package spawn abstracts concurrent task launching for fluxion's broadcast
// operators (Subject, Share, Partition), which need to start one goroutine
// per subscriber and tear all of them down together on first failure or on
// explicit Abort — exactly the shape of the teacher's dispatcher.go
// (goroutine-per-task plus *sync.WaitGroup inflight tracking), generalized
// into a capability interface the way pool/metrics are.
package spawn

import "context"

// Spawner launches fn in its own goroutine and returns a Handle to track
// and control it.
type Spawner interface {
	Go(fn func(ctx context.Context) error) Handle
}

// Handle represents one spawned task.
type Handle interface {
	// Wait blocks until fn returns, yielding its error.
	Wait() error
	// Abort cancels the context passed to fn. Safe to call more than once.
	Abort()
}
