package fluxion

import "math/rand/v2"

// SampleRatio keeps each value independently with probability r, using a
// caller-supplied seed (spec.md §4.8; decided Open Question in DESIGN.md:
// determinism is part of the contract, so there is no implicit
// time-based default). r must be in [0, 1]. Errors always pass through —
// sampling applies to values only.
func SampleRatio[T Fluxion, TS Timestamp](s Stream[T, TS], r float64, seed uint64) Stream[T, TS] {
	out := make(chan StreamItem[T, TS])
	if r < 0 || r > 1 {
		go func() {
			defer close(out)
			var zero TS
			out <- Error[T](ErrSampleRatioRange, zero)
		}()
		return out
	}

	go func() {
		defer close(out)
		rng := rand.New(rand.NewPCG(seed, seed))
		for item := range s {
			if item.IsError() {
				out <- item
				continue
			}
			if rng.Float64() < r {
				out <- item
			}
		}
	}()
	return out
}
