package fluxion

import "fmt"

// StreamItem is the closed value-or-error sum every observation in a
// pipeline is wrapped in (spec.md §3.1). Construction is always total: use
// Value or Error. End-of-stream has no variant here — it is signalled by the
// underlying Stream channel closing.
type StreamItem[T Fluxion, TS Timestamp] struct {
	ts      TS
	value   T
	err     error
	isError bool
}

// Value constructs a successful item carrying v, stamped with ts.
func Value[T Fluxion, TS Timestamp](v T, ts TS) StreamItem[T, TS] {
	return StreamItem[T, TS]{value: v, ts: ts}
}

// Error constructs a failed item carrying err, stamped with ts. Per spec.md
// §3.2, errors participate in ordering only through whatever timestamp an
// operator chooses to assign them — there is no "errors sort last" rule.
func Error[T Fluxion, TS Timestamp](err error, ts TS) StreamItem[T, TS] {
	return StreamItem[T, TS]{err: err, isError: true, ts: ts}
}

// Timestamp implements HasTimestamp.
func (i StreamItem[T, TS]) Timestamp() TS { return i.ts }

// IsError reports whether i carries an error rather than a value.
func (i StreamItem[T, TS]) IsError() bool { return i.isError }

// TryValue returns the carried value and true, or the zero value and false
// if i is an error.
func (i StreamItem[T, TS]) TryValue() (T, bool) {
	if i.isError {
		var zero T
		return zero, false
	}
	return i.value, true
}

// TryError returns the carried error and true, or nil and false if i is a
// value.
func (i StreamItem[T, TS]) TryError() (error, bool) {
	if !i.isError {
		return nil, false
	}
	return i.err, true
}

// WithTimestamp returns a copy of i re-stamped with ts. OrderedMerge uses
// this to give an error item its synthesized timestamp. Gated operators
// (emit_when, take_latest_when, scan_ordered) re-stamp by building a fresh
// item with Value(v, ts) instead (spec.md §3.2, "re-stamp by trigger").
func (i StreamItem[T, TS]) WithTimestamp(ts TS) StreamItem[T, TS] {
	i.ts = ts
	return i
}

// MapValue applies f to i's value, preserving the timestamp; it is a no-op
// on an error item. map_ordered is built directly on this.
func MapValue[T, U Fluxion, TS Timestamp](i StreamItem[T, TS], f func(T) U) StreamItem[U, TS] {
	if i.isError {
		return Error[U](i.err, i.ts)
	}
	return Value(f(i.value), i.ts)
}

func (i StreamItem[T, TS]) String() string {
	if i.isError {
		return fmt.Sprintf("Error(%v)@%v", i.err, i.ts)
	}
	return fmt.Sprintf("Value(%v)@%v", i.value, i.ts)
}
