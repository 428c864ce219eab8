// Package fluxion is a reactive stream processing library built around one
// invariant: every item carries a monotonic Timestamp, and every
// multi-source operator emits items in non-decreasing timestamp order
// regardless of arrival order.
//
// Streams
//
// A Stream[T, TS] is a receive-only channel of StreamItem[T, TS] — value-or-
// error observations, never an explicit "complete" item; end-of-stream is
// the channel closing. Per-source monotonicity is assumed (not enforced);
// cross-source total order is guaranteed by every multi-source operator.
//
// Layers
//
//   - Item model: StreamItem, HasTimestamp, the Fluxion bound.
//   - Ordered k-way merge: OrderedMerge, the algorithmic keystone.
//   - Multi-source operators: CombineLatest, WithLatestFrom, MergeWith,
//     EmitWhen, TakeLatestWhen, TakeWhileWith.
//   - Stateful single-source operators: MapOrdered, FilterOrdered, ScanOrdered,
//     DistinctUntilChanged(By), TakeItems/SkipItems, CombineWithPrevious,
//     WindowByCount, StartWith, Tap, SampleRatio, OnError.
//   - Time-bound operators over the timer.Timer capability: Debounce,
//     Throttle, Delay, Sample, Timeout.
//   - Broadcast: Subject, Share, Partition (require the spawn.Spawner
//     capability).
//   - Terminators: Subscribe, SubscribeLatest, SubscribeAll.
//
// Capabilities
//
// The Timer (package timer) and Spawner (package spawn) interfaces are the
// only runtime-specific surface; concrete channel/timer/spawn
// implementations beyond the stdlib-backed defaults are external
// collaborators, not this package's concern.
package fluxion
