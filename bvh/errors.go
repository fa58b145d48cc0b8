package bvh

import (
	"errors"
	"fmt"
)

var (
	ErrMissingMarker        = errors.New("bvh: text dump must start with LBVH")
	ErrMalformedLine        = errors.New("bvh: malformed node line")
	ErrUnexpectedEndOfInput = errors.New("bvh: unexpected end of input")
	ErrTruncatedNode        = errors.New("bvh: truncated node")
)

// LineError reports a text dump failure at a 1-based line number.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("%s (line %d)", e.Err, e.Line)
	}
	return fmt.Sprintf("%s (line %d: %q)", e.Err, e.Line, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// OffsetError reports a binary dump failure for the node whose marker
// starts at Offset.
type OffsetError struct {
	Offset int64
	Err    error
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("%s (node at byte %d)", e.Err, e.Offset)
}

func (e *OffsetError) Unwrap() error {
	return e.Err
}
