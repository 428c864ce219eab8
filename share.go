package fluxion

import (
	"github.com/ygrebnov/fluxion/spawn"
)

// Shared is a source stream turned hot: one pump goroutine drains source
// once and fans every item out to any number of subscribers through a
// Subject. Stop tears the pump down deterministically exactly once,
// grounded on lifecycle.go's sync.Once-guarded shutdown sequence — here
// that guarantee comes from CancellationToken, itself built the same way.
type Shared[T Fluxion, TS Timestamp] struct {
	subject *Subject[T, TS]
	token   CancellationToken
}

// Share starts pumping source into a fresh Subject immediately (spec.md §6,
// "multicast a cold source to many subscribers"). spawner is threaded
// through to the underlying Subject for its slow-subscriber delivery path.
func Share[T Fluxion, TS Timestamp](source Stream[T, TS], spawner spawn.Spawner) *Shared[T, TS] {
	subject := NewSubject[T, TS](spawner)
	token := NewCancellationToken()

	go func() {
		defer subject.Close()
		for {
			select {
			case item, ok := <-source:
				if !ok {
					return
				}
				_ = subject.Send(item)
			case <-token.Done():
				return
			}
		}
	}()

	return &Shared[T, TS]{subject: subject, token: token}
}

// Subscribe registers a new subscriber to the shared stream.
func (sh *Shared[T, TS]) Subscribe() (Stream[T, TS], func()) {
	return sh.subject.Subscribe()
}

// Stop tears the pump down and closes every current subscriber's stream.
// Safe to call more than once.
func (sh *Shared[T, TS]) Stop() {
	sh.token.Cancel()
}
