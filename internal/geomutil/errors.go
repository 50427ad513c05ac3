package geomutil

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInputKind is returned for inputs that are neither a supported
	// geometry nor a feature wrapping one.
	ErrInvalidInputKind = errors.New("invalid input kind")
	// ErrUnsupportedGeometry is returned when an operation is given a
	// geometry kind it does not operate on.
	ErrUnsupportedGeometry = errors.New("unsupported geometry")
	// ErrMixedGeometryKinds is returned by merge when the inputs do not share
	// one base kind.
	ErrMixedGeometryKinds = errors.New("mixed geometry kinds")
	ErrEmptyInput         = errors.New("empty input")
	ErrInvalidDistance    = errors.New("invalid distance")
	// ErrDegenerateCut is returned by split when the cutting line lies
	// entirely outside the polygon's extent.
	ErrDegenerateCut = errors.New("degenerate cut")
)

// OpError records the operation and input that caused an error.
type OpError struct {
	Op     string // operation name, e.g. "split"
	Detail string // offending input, if known
	Err    error  // one of the Err* sentinels
}

// Error implements the error interface.
func (e *OpError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Detail)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func opError(op string, err error, format string, args ...any) *OpError {
	return &OpError{Op: op, Detail: fmt.Sprintf(format, args...), Err: err}
}
