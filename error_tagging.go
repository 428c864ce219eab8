package fluxion

import (
	"errors"
	"fmt"
)

// OperatorMetaError exposes correlation metadata for an error produced
// inside a multi-source operator: which operator produced it, and which
// upstream index it came from (if any). Modeled directly on the teacher's
// TaskMetaError (error_tagging.go), substituting task ID/index for operator
// name/source index.
type OperatorMetaError interface {
	error
	Unwrap() error
	Operator() string
	SourceIndex() (int, bool)
}

type operatorTaggedError struct {
	err      error
	operator string
	index    int
	hasIndex bool
}

// TagOperatorError wraps err with the operator name that produced it. Use
// TagSourceError when the failure is attributable to a specific upstream
// index (as in ordered_merge and the multi-source operators).
func TagOperatorError(err error, operator string) error {
	if err == nil {
		return nil
	}
	return &operatorTaggedError{err: err, operator: operator}
}

// TagSourceError wraps err with the operator name and the upstream index
// that produced it.
func TagSourceError(err error, operator string, index int) error {
	if err == nil {
		return nil
	}
	return &operatorTaggedError{err: err, operator: operator, index: index, hasIndex: true}
}

func (e *operatorTaggedError) Error() string { return e.err.Error() }
func (e *operatorTaggedError) Unwrap() error { return e.err }

func (e *operatorTaggedError) Operator() string { return e.operator }

func (e *operatorTaggedError) SourceIndex() (int, bool) {
	if !e.hasIndex {
		return 0, false
	}
	return e.index, true
}

func (e *operatorTaggedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			if e.hasIndex {
				_, _ = fmt.Fprintf(s, "operator(%s, source=%d): %+v", e.operator, e.index, e.err)
			} else {
				_, _ = fmt.Fprintf(s, "operator(%s): %+v", e.operator, e.err)
			}
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractOperator returns the operator name from err if present.
func ExtractOperator(err error) (string, bool) {
	var ome OperatorMetaError
	if errors.As(err, &ome) {
		return ome.Operator(), true
	}
	return "", false
}

// ExtractSourceIndex returns the upstream source index from err if present.
func ExtractSourceIndex(err error) (int, bool) {
	var ome OperatorMetaError
	if errors.As(err, &ome) {
		return ome.SourceIndex()
	}
	return 0, false
}
