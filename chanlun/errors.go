package chanlun

import (
	"errors"
	"fmt"
)

// Sentinel error kinds per the input/invariant taxonomy. Use errors.Is to
// test a returned error against these.
var (
	// ErrInputShape marks a missing required field, empty input, or
	// non-monotonic timestamps.
	ErrInputShape = errors.New("chanlun: input shape error")

	// ErrInputValue marks a non-positive price or violated OHLC ordering.
	ErrInputValue = errors.New("chanlun: input value error")

	// ErrInvariant marks an internal post-condition failure (a bug in this
	// package, not a caller error).
	ErrInvariant = errors.New("chanlun: invariant violation")
)

// ProcessError wraps a sentinel kind with a human-readable message.
type ProcessError struct {
	Kind error
	Msg  string
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
}

func (e *ProcessError) Unwrap() error {
	return e.Kind
}

func shapeErrorf(format string, args ...any) error {
	return &ProcessError{Kind: ErrInputShape, Msg: fmt.Sprintf(format, args...)}
}

func valueErrorf(format string, args ...any) error {
	return &ProcessError{Kind: ErrInputValue, Msg: fmt.Sprintf(format, args...)}
}

func invariantErrorf(format string, args ...any) error {
	return &ProcessError{Kind: ErrInvariant, Msg: fmt.Sprintf(format, args...)}
}
