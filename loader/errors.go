package loader

import (
	"errors"
	"io"

	"github.com/patricklbell/raytracer/bvh"
	"github.com/patricklbell/raytracer/ray"
)

var (
	// ErrEmptyInput is informational: the source holds no records or nodes
	// and there is nothing to project.
	ErrEmptyInput = errors.New("loader: nothing to load")

	ErrUnsupportedFormat = errors.New("loader: unsupported format")

	// ErrSourceChanged is returned when the two passes over a binary BVH
	// disagree, e.g. because the producer rewrote the file in between.
	ErrSourceChanged = errors.New("loader: source changed between passes")
)

// IsCorrupt returns true if err reports structurally invalid dump content
// rather than a failure to access the dump.
func IsCorrupt(err error) bool {
	switch errorType(err) {
	case "empty_input", "io":
		return false
	}
	return true
}

// errorType classifies err for metrics labels.
func errorType(err error) string {
	switch {
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, ErrSourceChanged):
		return "source_changed"
	case errors.Is(err, ray.ErrTruncatedRecord):
		return "truncated_record"
	case errors.Is(err, bvh.ErrTruncatedNode):
		return "truncated_node"
	case errors.Is(err, bvh.ErrMalformedLine):
		return "malformed_line"
	case errors.Is(err, bvh.ErrMissingMarker):
		return "missing_marker"
	case errors.Is(err, bvh.ErrUnexpectedEndOfInput):
		return "unexpected_end"
	case errors.Is(err, io.ErrUnexpectedEOF):
		return "unexpected_eof"
	}
	return "io"
}
