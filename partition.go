package fluxion

import (
	"context"

	"github.com/ygrebnov/fluxion/spawn"
)

// Partition splits source into two streams by predicate, consuming source
// exactly once through a single routing goroutine launched via spawn.Spawner
// (spec.md §6). An error item cannot be classified by predicate, so it is
// forwarded to both branches rather than arbitrarily dropped from one.
//
// The returned Handle lets a caller abort routing early (e.g. if only one
// branch is still being read) without waiting for source to close.
func Partition[T Fluxion, TS Timestamp](source Stream[T, TS], spawner spawn.Spawner, predicate func(T) bool) (trueBranch, falseBranch Stream[T, TS], handle spawn.Handle) {
	t := make(chan StreamItem[T, TS])
	f := make(chan StreamItem[T, TS])

	h := spawner.Go(func(ctx context.Context) error {
		defer close(t)
		defer close(f)

		for {
			select {
			case item, ok := <-source:
				if !ok {
					return nil
				}

				if item.IsError() {
					select {
					case t <- item:
					case <-ctx.Done():
						return nil
					}
					select {
					case f <- item:
					case <-ctx.Done():
						return nil
					}
					continue
				}

				v, _ := item.TryValue()
				dest := f
				if predicate(v) {
					dest = t
				}
				select {
				case dest <- item:
				case <-ctx.Done():
					return nil
				}

			case <-ctx.Done():
				return nil
			}
		}
	})

	return t, f, h
}
