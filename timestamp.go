package fluxion

import "cmp"

// Timestamp is the totally ordered, copyable value every stream item carries.
// It can be a sequence counter, a monotonic instant, or any user-supplied
// totally ordered type — the core never consults wall-clock time itself
// (spec.md §4.9.1).
type Timestamp = cmp.Ordered

// HasTimestamp is the read-only capability every ordering decision in the
// core consults. StreamItem implements it directly; operators that need to
// re-stamp a value with a triggering stream's timestamp instead of its own
// do so via item.go's WithTimestamp/Value, not a separate wrapper type.
type HasTimestamp[TS Timestamp] interface {
	Timestamp() TS
}
