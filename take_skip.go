package fluxion

// TakeItems emits at most n values, then closes (spec.md §4.6). Errors pass
// through freely and do not count toward n (decided Open Question, see
// DESIGN.md).
func TakeItems[T Fluxion, TS Timestamp](s Stream[T, TS], n int) Stream[T, TS] {
	out := make(chan StreamItem[T, TS])
	go func() {
		defer close(out)
		if n <= 0 {
			for item := range s {
				if item.IsError() {
					out <- item
				}
			}
			return
		}
		taken := 0
		for item := range s {
			if item.IsError() {
				out <- item
				continue
			}
			out <- item
			taken++
			if taken >= n {
				return
			}
		}
	}()
	return out
}

// SkipItems drops the first n values, forwarding everything after (spec.md
// §4.6). Errors pass through freely and do not count toward n.
func SkipItems[T Fluxion, TS Timestamp](s Stream[T, TS], n int) Stream[T, TS] {
	out := make(chan StreamItem[T, TS])
	go func() {
		defer close(out)
		skipped := 0
		for item := range s {
			if item.IsError() {
				out <- item
				continue
			}
			if skipped < n {
				skipped++
				continue
			}
			out <- item
		}
	}()
	return out
}
