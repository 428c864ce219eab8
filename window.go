package fluxion

// WindowByCount batches values into slices of up to n, emitting each batch
// timestamped with its first member's timestamp (spec.md §4.6, §4.8). A
// trailing partial batch (fewer than n values when the source closes) is
// still emitted. An error flushes whatever partial batch is currently
// buffered — stamped with that batch's own first-member timestamp — before
// the error itself is forwarded.
func WindowByCount[T Fluxion, TS Timestamp](s Stream[T, TS], n int) Stream[[]T, TS] {
	out := make(chan StreamItem[[]T, TS])
	go func() {
		defer close(out)
		if n <= 0 {
			n = 1
		}
		batch := make([]T, 0, n)
		var firstTS TS
		flush := func() {
			if len(batch) > 0 {
				out <- Value(batch, firstTS)
				batch = make([]T, 0, n)
			}
		}
		for item := range s {
			if err, isErr := item.TryError(); isErr {
				flush()
				out <- Error[[]T](err, item.Timestamp())
				continue
			}
			v, _ := item.TryValue()
			if len(batch) == 0 {
				firstTS = item.Timestamp()
			}
			batch = append(batch, v)
			if len(batch) == n {
				flush()
			}
		}
		flush()
	}()
	return out
}
