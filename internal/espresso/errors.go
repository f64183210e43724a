// SPDX-License-Identifier: Apache-2.0
package espresso

import (
	"fmt"

	"espresso/internal/cube"
)

// Kind classifies the errors the core surfaces. Transformation primitives
// never recover from any of them; the driver treats only SoftTimeout and
// LimitExceeded as recoverable.
type Kind int

const (
	// InvalidInput marks a cube with an empty variable field or a width
	// disagreeing with the layout.
	InvalidInput Kind = iota + 1
	// OffsetConflict marks an ON-set and OFF-set sharing a point. Detected
	// before any transformation.
	OffsetConflict
	// CoverageGap marks a result that fails to cover an original minterm.
	// Always an internal bug.
	CoverageGap
	// SoftTimeout marks a deadline expiry; the current best cover is still
	// returned alongside it.
	SoftTimeout
	// LimitExceeded marks an exact-solver table or search growing past its
	// configured ceiling.
	LimitExceeded
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case OffsetConflict:
		return "offset conflict"
	case CoverageGap:
		return "coverage gap"
	case SoftTimeout:
		return "soft timeout"
	case LimitExceeded:
		return "limit exceeded"
	default:
		return "unknown"
	}
}

// Error is a classified core error, optionally carrying the witness cube
// that triggered it.
type Error struct {
	Kind    Kind
	Message string
	Witness cube.Cube
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a core Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
