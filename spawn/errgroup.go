package spawn

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ErrgroupSpawner is the default Spawner, backed by
// golang.org/x/sync/errgroup.Group: exactly "spawn + track + cancel whole
// group on first error" (spec.md §6.1's spawn(future) -> TaskHandle
// description, almost verbatim), replacing the teacher's bare
// *sync.WaitGroup inflight counter (dispatcher.go) with a primitive that
// also propagates the first error and cancels siblings.
type ErrgroupSpawner struct {
	group *errgroup.Group
	ctx   context.Context
}

// NewSpawner derives a cancellable group context from parent.
func NewSpawner(parent context.Context) *ErrgroupSpawner {
	g, ctx := errgroup.WithContext(parent)
	return &ErrgroupSpawner{group: g, ctx: ctx}
}

// Go launches fn with a context derived from the group's, individually
// cancellable via the returned Handle's Abort, but also cancelled group-wide
// if any sibling task returns an error.
func (s *ErrgroupSpawner) Go(fn func(ctx context.Context) error) Handle {
	taskCtx, cancel := context.WithCancel(s.ctx)
	done := make(chan error, 1)

	s.group.Go(func() error {
		err := fn(taskCtx)
		done <- err
		return err
	})

	return &errgroupHandle{cancel: cancel, done: done}
}

// Wait blocks until every task spawned through s has returned, yielding the
// first non-nil error.
func (s *ErrgroupSpawner) Wait() error { return s.group.Wait() }

type errgroupHandle struct {
	cancel context.CancelFunc
	done   chan error
}

func (h *errgroupHandle) Wait() error { return <-h.done }

func (h *errgroupHandle) Abort() { h.cancel() }
