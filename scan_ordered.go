package fluxion

// ScanOrdered folds seed through accumulator across values, emitting the
// running accumulation after every value (spec.md §4.6). Errors pass
// through untouched and do not perturb the accumulator.
func ScanOrdered[T, A Fluxion, TS Timestamp](s Stream[T, TS], seed A, accumulator func(A, T) A) Stream[A, TS] {
	out := make(chan StreamItem[A, TS])
	go func() {
		defer close(out)
		acc := seed
		for item := range s {
			if err, isErr := item.TryError(); isErr {
				out <- Error[A](err, item.Timestamp())
				continue
			}
			v, _ := item.TryValue()
			acc = accumulator(acc, v)
			out <- Value(acc, item.Timestamp())
		}
	}()
	return out
}
