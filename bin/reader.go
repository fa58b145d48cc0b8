// Package bin provides a little-endian cursor over dump streams.
//
// A clean end of stream (no bytes available where a field starts) is
// reported as io.EOF; running out of bytes in the middle of a field is
// reported as io.ErrUnexpectedEOF. Decoders build their own error taxonomy
// on top of this distinction.
package bin

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/patricklbell/raytracer/types"
)

// Reader reads fixed-width little-endian fields from an io.Reader. It keeps
// its own single byte lookahead so PeekU8 never consumes input, independent
// of any buffering done by the underlying stream.
type Reader struct {
	r      io.Reader
	offset int64

	peeked  bool
	peekVal byte

	scratch [8]byte
}

// NewReader wraps r. Callers streaming from files should pass a buffered
// reader; the Reader itself issues small reads.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

// ReadExact reads exactly n bytes into a new slice.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := r.fill(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// PeekU8 returns the next byte without consuming it.
func (r *Reader) PeekU8() (byte, error) {
	if r.peeked {
		return r.peekVal, nil
	}

	var b [1]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		return 0, err
	}
	r.peeked = true
	r.peekVal = b[0]
	return b[0], nil
}

// ReadU8 reads a single byte.
func (r *Reader) ReadU8() (byte, error) {
	if err := r.fill(r.scratch[:1]); err != nil {
		return 0, err
	}
	return r.scratch[0], nil
}

// ReadU64 reads a little-endian uint64.
func (r *Reader) ReadU64() (uint64, error) {
	if err := r.fill(r.scratch[:8]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(r.scratch[:8]), nil
}

// ReadF32 reads a little-endian IEEE-754 float32.
func (r *Reader) ReadF32() (float32, error) {
	if err := r.fill(r.scratch[:4]); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(r.scratch[:4])), nil
}

// ReadVec3 reads three consecutive float32 values. A stream ending after
// the first component is reported as io.ErrUnexpectedEOF.
func (r *Reader) ReadVec3() (types.Vec3, error) {
	var buf [12]byte
	if err := r.fill(buf[:]); err != nil {
		return types.Vec3{}, err
	}
	return Vec3(buf[:]), nil
}

// Vec3 decodes three little-endian float32 values from the first 12 bytes of buf.
func Vec3(buf []byte) types.Vec3 {
	return types.Vec3{
		math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])),
		math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])),
		math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])),
	}
}

// fill reads len(buf) bytes, draining the lookahead byte first.
func (r *Reader) fill(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	n := 0
	if r.peeked {
		buf[0] = r.peekVal
		r.peeked = false
		n = 1
	}

	read, err := io.ReadFull(r.r, buf[n:])
	n += read
	r.offset += int64(n)

	switch {
	case err == nil:
		return nil
	case err != io.EOF && err != io.ErrUnexpectedEOF:
		return err
	case n == 0:
		return io.EOF
	default:
		return io.ErrUnexpectedEOF
	}
}
