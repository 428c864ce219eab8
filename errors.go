package fluxion

import (
	"errors"
	"fmt"
	"strings"
)

const Namespace = "fluxion"

// Sentinel errors for conditions that are not in-band FluxionError values —
// they are returned directly by constructors/terminators for immediate,
// synchronous setup failures (mirrors teacher's errors.go sentinels, which
// are likewise returned by AddTask/New rather than delivered on a channel).
// ErrSampleRatioRange is the exception: SampleRatio does not reject an
// out-of-range r when it is called; it returns a stream whose only item is
// this error.
var (
	ErrInvalidOptions    = errors.New(Namespace + ": conflicting or invalid options")
	ErrEmptyUpstreams    = errors.New(Namespace + ": at least one upstream is required")
	ErrSampleRatioRange  = errors.New(Namespace + ": sample_ratio requires r in [0,1]")
	ErrSpawnUnavailable  = errors.New(Namespace + ": this runtime configuration has no spawn capability")
	ErrSubjectClosed     = errors.New(Namespace + ": subject is closed")
)

// Kind identifies one of the four FluxionError variants (spec.md §3.1).
type Kind int

const (
	// KindLock reports that an internal shared-state acquisition failed
	// (poisoned or contended with an unrecoverable state).
	KindLock Kind = iota
	// KindStreamProcessing reports that an operator's own invariant was
	// violated at runtime (e.g. a timeout operator's deadline firing).
	KindStreamProcessing
	// KindUser wraps an arbitrary foreign error from a user callback.
	KindUser
	// KindMultiple aggregates failures collected by a terminator.
	KindMultiple
)

func (k Kind) String() string {
	switch k {
	case KindLock:
		return "LockError"
	case KindStreamProcessing:
		return "StreamProcessingError"
	case KindUser:
		return "UserError"
	case KindMultiple:
		return "MultipleErrors"
	default:
		return "UnknownError"
	}
}

// FluxionError is the library's single error type: a tagged sum with exactly
// four variants (spec.md §3.1, §7). It is deliberately comparable-by-value
// only for diagnostics, and clonable because an in-band error may need to be
// duplicated across subscribers in broadcast operators (Subject.send clones
// the StreamItem, including any FluxionError it carries).
type FluxionError struct {
	kind     Kind
	message  string
	wrapped  error   // KindUser
	children []error // KindMultiple
}

// NewLockError constructs a KindLock FluxionError.
func NewLockError(message string) *FluxionError {
	return &FluxionError{kind: KindLock, message: message}
}

// NewStreamProcessingError constructs a KindStreamProcessing FluxionError.
func NewStreamProcessingError(message string) *FluxionError {
	return &FluxionError{kind: KindStreamProcessing, message: message}
}

// NewUserError wraps err as a KindUser FluxionError.
func NewUserError(err error) *FluxionError {
	return &FluxionError{kind: KindUser, message: err.Error(), wrapped: err}
}

// NewMultipleErrors aggregates errs into a KindMultiple FluxionError. Empty
// or all-nil input returns nil, consistent with errors.Join's convention
// (teacher's run_all.go relies on this same convention via errors.Join).
func NewMultipleErrors(errs ...error) *FluxionError {
	var nonNil []error
	for _, e := range errs {
		if e != nil {
			nonNil = append(nonNil, e)
		}
	}
	if len(nonNil) == 0 {
		return nil
	}
	return &FluxionError{kind: KindMultiple, children: nonNil}
}

func (e *FluxionError) Kind() Kind { return e.kind }

func (e *FluxionError) Error() string {
	switch e.kind {
	case KindUser:
		return Namespace + ": " + e.wrapped.Error()
	case KindMultiple:
		msgs := make([]string, len(e.children))
		for i, c := range e.children {
			msgs[i] = c.Error()
		}
		return fmt.Sprintf("%s: %d errors occurred: [%s]", Namespace, len(e.children), strings.Join(msgs, "; "))
	default:
		return Namespace + ": " + e.message
	}
}

// Unwrap exposes the wrapped error for errors.Is/errors.As, and the child
// list for KindMultiple so errors.Is can find a sentinel anywhere inside.
func (e *FluxionError) Unwrap() []error {
	switch e.kind {
	case KindUser:
		return []error{e.wrapped}
	case KindMultiple:
		return e.children
	default:
		return nil
	}
}

// Errors returns the aggregated errors of a KindMultiple FluxionError, or
// nil otherwise.
func (e *FluxionError) Errors() []error {
	if e.kind != KindMultiple {
		return nil
	}
	return e.children
}
