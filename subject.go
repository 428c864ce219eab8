package fluxion

import (
	"context"
	"sync"

	"github.com/ygrebnov/fluxion/metrics"
	"github.com/ygrebnov/fluxion/spawn"
)

// subEntry is one subscriber's channel plus its own stop signal: Send's
// detached-delivery goroutine (below) selects on stop in addition to the
// Subject-wide closeCh, so a single unsubscribe can abandon an in-flight
// send targeting just that subscriber without waiting for every other
// subscriber or for Close.
type subEntry[T Fluxion, TS Timestamp] struct {
	ch   chan StreamItem[T, TS]
	stop chan struct{}
}

// Subject is a multi-subscriber broadcast hub (spec.md §6, "requires the
// Spawner capability"). Its subscriber roster is a mutex-guarded map,
// grounded on metrics/basic.go's RWMutex-guarded-map-of-instruments shape;
// delivering to a slow subscriber without blocking Send is grounded on
// error_forwarder.go's "detached sender on full channel" pattern, with the
// detached goroutine launched through spawn.Spawner instead of a bare `go`
// statement so its lifecycle is tracked the same way every other fan-out
// goroutine in this package is.
type Subject[T Fluxion, TS Timestamp] struct {
	mu          sync.RWMutex
	subscribers map[int]*subEntry[T, TS]
	nextID      int
	closed      bool
	closeCh     chan struct{}
	closeOnce   sync.Once

	spawner      spawn.Spawner
	pending      []spawn.Handle
	pendingBySub map[int][]spawn.Handle
	pendingM     sync.Mutex

	subscriberGauge metrics.UpDownCounter
	sendCounter     metrics.Counter
}

// NewSubject constructs an empty Subject with no metrics instrumentation.
// spawner is used to deliver to subscribers whose buffer is momentarily
// full without blocking Send.
func NewSubject[T Fluxion, TS Timestamp](spawner spawn.Spawner) *Subject[T, TS] {
	return NewSubjectWithMetrics[T, TS](spawner, metrics.NewNoopProvider())
}

// NewSubjectWithMetrics is NewSubject plus a metrics.Provider: fluxion
// instruments subscriber count and fan-out volume the way the teacher wires
// its own metrics.Provider, renamed from `workers_tasks_*` to
// `fluxion_items_*` (see DESIGN.md, "metrics subpackage").
func NewSubjectWithMetrics[T Fluxion, TS Timestamp](spawner spawn.Spawner, provider metrics.Provider) *Subject[T, TS] {
	return &Subject[T, TS]{
		subscribers:     make(map[int]*subEntry[T, TS]),
		pendingBySub:    make(map[int][]spawn.Handle),
		closeCh:         make(chan struct{}),
		spawner:         spawner,
		subscriberGauge: provider.UpDownCounter("fluxion_items_subject_subscribers"),
		sendCounter:     provider.Counter("fluxion_items_subject_sends"),
	}
}

// Subscribe registers a new subscriber and returns its stream plus an
// unsubscribe function. Subscribing to a closed Subject returns an
// already-closed stream.
func (s *Subject[T, TS]) Subscribe() (Stream[T, TS], func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		ch := make(chan StreamItem[T, TS])
		close(ch)
		return ch, func() {}
	}

	id := s.nextID
	s.nextID++
	entry := &subEntry[T, TS]{
		ch:   make(chan StreamItem[T, TS], 1),
		stop: make(chan struct{}),
	}
	s.subscribers[id] = entry
	s.subscriberGauge.Add(1)

	unsubscribe := func() {
		s.mu.Lock()
		e, ok := s.subscribers[id]
		if ok {
			delete(s.subscribers, id)
		}
		s.mu.Unlock()
		if !ok {
			return
		}

		// Signal any detached delivery targeting this subscriber to give
		// up before we touch its channel, then wait for it to actually
		// exit — otherwise it could still be blocked on `ch <- item` the
		// instant we close ch below, panicking with "send on closed
		// channel" (spec.md §7: no panicking in library code).
		close(e.stop)

		s.pendingM.Lock()
		handles := s.pendingBySub[id]
		delete(s.pendingBySub, id)
		s.pendingM.Unlock()
		for _, h := range handles {
			_ = h.Wait()
		}

		s.subscriberGauge.Add(-1)
		close(e.ch)
	}

	return entry.ch, unsubscribe
}

// IsClosed reports whether Close has been called (spec.md §4.10.1).
func (s *Subject[T, TS]) IsClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// SubscriberCount returns the number of currently attached subscribers
// (spec.md §4.10.1).
func (s *Subject[T, TS]) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

// Send fans item out to every current subscriber. A subscriber whose buffer
// is full gets a detached delivery attempt instead of blocking the other
// subscribers or the caller.
func (s *Subject[T, TS]) Send(item StreamItem[T, TS]) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrSubjectClosed
	}

	s.sendCounter.Add(1)

	for id, entry := range s.subscribers {
		select {
		case entry.ch <- item:
		default:
			id := id
			c := entry.ch
			stop := entry.stop
			h := s.spawner.Go(func(ctx context.Context) error {
				select {
				case c <- item:
				case <-stop:
				case <-s.closeCh:
				case <-ctx.Done():
				}
				return nil
			})
			s.pendingM.Lock()
			s.pending = append(s.pending, h)
			s.pendingBySub[id] = append(s.pendingBySub[id], h)
			s.pendingM.Unlock()
		}
	}

	return nil
}

// Close closes every subscriber's stream, after waiting for any in-flight
// detached deliveries to finish or give up. Safe to call more than once.
func (s *Subject[T, TS]) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		subs := s.subscribers
		s.subscribers = nil
		s.mu.Unlock()

		close(s.closeCh)

		s.pendingM.Lock()
		pending := s.pending
		s.pending = nil
		s.pendingBySub = nil
		s.pendingM.Unlock()
		for _, h := range pending {
			_ = h.Wait()
		}

		for _, entry := range subs {
			close(entry.ch)
		}
	})
}
