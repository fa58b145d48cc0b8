package ray

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/patricklbell/raytracer/bin"
	"github.com/patricklbell/raytracer/types"
)

// RecordSize is the packed size of a dumped ray: 13 float32 fields followed
// by a uint64 id, little-endian, no padding.
const RecordSize = 13*4 + 8

// ErrTruncatedRecord is returned when a stream with a known size ends
// before all of its records were read.
var ErrTruncatedRecord = errors.New("ray: dump ends in the middle of a record")

// Record is a single traced ray as written by the renderer's dump hook.
type Record struct {
	Origin    types.Vec3
	Direction types.Vec3
	HitPoint  types.Vec3

	// Written by the producer (surface normal) but not interpreted here.
	Reserved types.Vec3

	// Hit parameter; the producer writes -1 for misses.
	T float32

	ID uint64
}

// IsHit reports whether the ray hit something. A parameter of exactly zero
// counts as a miss.
func (r Record) IsHit() bool {
	return r.T > 0.0
}

// Decode unpacks a record from the first RecordSize bytes of buf.
func Decode(buf []byte) Record {
	return Record{
		Origin:    bin.Vec3(buf[0:]),
		Direction: bin.Vec3(buf[12:]),
		HitPoint:  bin.Vec3(buf[24:]),
		Reserved:  bin.Vec3(buf[36:]),
		T:         math.Float32frombits(binary.LittleEndian.Uint32(buf[48:])),
		ID:        binary.LittleEndian.Uint64(buf[52:]),
	}
}

// Decoder reads records from a stream one at a time.
type Decoder struct {
	r         *bin.Reader
	remaining int64
	trailing  int64
}

// NewDecoder returns a decoder that reads at most limit records from r. A
// negative limit reads until the stream ends.
func NewDecoder(r io.Reader, limit int64) *Decoder {
	return &Decoder{
		r:         bin.NewReader(r),
		remaining: limit,
	}
}

// Next returns the next record. It returns io.EOF once the limit is reached
// or the stream ends. Without a limit a partial trailing record is dropped
// (see Trailing); with a limit, running out of bytes early is
// ErrTruncatedRecord.
func (d *Decoder) Next() (Record, error) {
	if d.remaining == 0 {
		return Record{}, io.EOF
	}

	buf, err := d.r.ReadExact(RecordSize)
	switch {
	case err == io.EOF && d.remaining < 0:
		return Record{}, io.EOF
	case err == io.ErrUnexpectedEOF && d.remaining < 0:
		d.trailing = d.r.Offset() % RecordSize
		return Record{}, io.EOF
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		return Record{}, ErrTruncatedRecord
	case err != nil:
		return Record{}, err
	}

	if d.remaining > 0 {
		d.remaining--
	}
	return Decode(buf), nil
}

// Trailing returns the size of the partial record dropped at the end of an
// unlimited stream.
func (d *Decoder) Trailing() int64 {
	return d.trailing
}

// ReadAll decodes every record in r in file order and reports how many
// trailing bytes were ignored. If size is known, only floor(size /
// RecordSize) records are read. A negative size reads until the stream
// ends; a partial record at the end is dropped the same way. An empty
// result is not an error.
func ReadAll(r io.Reader, size int64) ([]Record, int64, error) {
	limit := int64(-1)
	capHint := 0
	if size >= 0 {
		limit = size / RecordSize
		capHint = int(limit)
	}

	records := make([]Record, 0, capHint)
	dec := NewDecoder(r, limit)
	for {
		rec, err := dec.Next()
		if err == io.EOF && size >= 0 {
			return records, size % RecordSize, nil
		}
		if err == io.EOF {
			return records, dec.Trailing(), nil
		}
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
}

// DecodeBytes decodes floor(len(data) / RecordSize) records, silently
// discarding any remainder.
func DecodeBytes(data []byte) []Record {
	records := make([]Record, len(data)/RecordSize)
	for i := range records {
		records[i] = Decode(data[i*RecordSize:])
	}
	return records
}

// Encode writes records using the producer's packed layout.
func Encode(w io.Writer, records []Record) error {
	var buf bytes.Buffer
	for _, rec := range records {
		buf.Reset()
		binary.Write(&buf, binary.LittleEndian, rec.Origin)
		binary.Write(&buf, binary.LittleEndian, rec.Direction)
		binary.Write(&buf, binary.LittleEndian, rec.HitPoint)
		binary.Write(&buf, binary.LittleEndian, rec.Reserved)
		binary.Write(&buf, binary.LittleEndian, rec.T)
		binary.Write(&buf, binary.LittleEndian, rec.ID)
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
