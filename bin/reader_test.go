package bin

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"

	"github.com/patricklbell/raytracer/types"
)

func le(fields ...interface{}) []byte {
	var buf bytes.Buffer
	for _, f := range fields {
		binary.Write(&buf, binary.LittleEndian, f)
	}
	return buf.Bytes()
}

func TestReadFields(t *testing.T) {
	data := le(uint8(7), uint64(0x0102030405060708), float32(1.5), [3]float32{1, -2, 3})
	r := NewReader(bytes.NewReader(data))

	b, err := r.ReadU8()
	require.NoError(t, err)
	require.Equal(t, byte(7), b)

	id, err := r.ReadU64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102030405060708), id)

	f, err := r.ReadF32()
	require.NoError(t, err)
	require.Equal(t, float32(1.5), f)

	v, err := r.ReadVec3()
	require.NoError(t, err)
	require.Equal(t, types.Vec3{1, -2, 3}, v)

	require.Equal(t, int64(len(data)), r.Offset())

	_, err = r.ReadU8()
	require.Equal(t, io.EOF, err)
}

func TestPeekDoesNotConsume(t *testing.T) {
	r := NewReader(iotest.OneByteReader(bytes.NewReader(le(uint8(1), uint64(42)))))

	for i := 0; i < 3; i++ {
		b, err := r.PeekU8()
		require.NoError(t, err)
		require.Equal(t, byte(1), b)
	}
	require.Equal(t, int64(0), r.Offset())

	b, err := r.ReadU8()
	require.NoError(t, err)
	require.Equal(t, byte(1), b)

	// Peek the first byte of a multi-byte field, then read the whole field
	_, err = r.PeekU8()
	require.NoError(t, err)
	id, err := r.ReadU64()
	require.NoError(t, err)
	require.Equal(t, uint64(42), id)
	require.Equal(t, int64(9), r.Offset())

	_, err = r.PeekU8()
	require.Equal(t, io.EOF, err)
}

func TestShortReads(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2, 3}))
	_, err := r.ReadU64()
	require.Equal(t, io.ErrUnexpectedEOF, err)

	r = NewReader(bytes.NewReader(le(float32(1), float32(2))))
	_, err = r.ReadVec3()
	require.Equal(t, io.ErrUnexpectedEOF, err)

	r = NewReader(bytes.NewReader(nil))
	_, err = r.ReadExact(60)
	require.Equal(t, io.EOF, err)

	// A peeked byte followed by end of stream is a partial field
	r = NewReader(bytes.NewReader([]byte{9}))
	_, err = r.PeekU8()
	require.NoError(t, err)
	_, err = r.ReadF32()
	require.Equal(t, io.ErrUnexpectedEOF, err)
}

func TestUnderlyingErrorsPropagate(t *testing.T) {
	boom := errors.New("disk on fire")
	r := NewReader(iotest.ErrReader(boom))
	_, err := r.ReadU8()
	require.Equal(t, boom, err)
}

func TestVec3Decoding(t *testing.T) {
	v := Vec3(le([3]float32{float32(math.Inf(1)), 0.25, -0}))
	require.True(t, math.IsInf(float64(v[0]), 1))
	require.Equal(t, float32(0.25), v[1])
}
