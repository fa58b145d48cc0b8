package bvh

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/patricklbell/raytracer/bin"
	"github.com/patricklbell/raytracer/types"
)

const (
	markerAbsent  byte = 0
	markerPresent byte = 1

	// u64 id + 3 x f32 min + 3 x f32 max
	payloadSize = 8 + 12 + 12
)

// nodeReader decodes single node records from a binary dump.
type nodeReader struct {
	r *bin.Reader
}

func newNodeReader(r io.Reader) *nodeReader {
	if _, ok := r.(io.ByteReader); !ok {
		r = bufio.NewReader(r)
	}
	return &nodeReader{r: bin.NewReader(r)}
}

// next reads a marker and, if present, the node payload. It returns
// io.EOF only if the stream is exhausted before the root marker.
func (nr *nodeReader) next(root bool) (present bool, id uint64, min, max types.Vec3, err error) {
	start := nr.r.Offset()

	marker, err := nr.r.ReadU8()
	if err == io.EOF && root {
		return false, 0, min, max, io.EOF
	}
	if err != nil {
		return false, 0, min, max, nr.wrap(start, err)
	}
	if marker == markerAbsent {
		return false, 0, min, max, nil
	}

	buf, err := nr.r.ReadExact(payloadSize)
	if err != nil {
		return false, 0, min, max, nr.wrap(start, err)
	}

	id = binary.LittleEndian.Uint64(buf[0:])
	min = bin.Vec3(buf[8:])
	max = bin.Vec3(buf[20:])
	return true, id, min, max, nil
}

// hasLeft peeks at the marker following a node payload without consuming it.
func (nr *nodeReader) hasLeft() bool {
	marker, err := nr.r.PeekU8()
	return err == nil && marker != markerAbsent
}

func (nr *nodeReader) wrap(offset int64, err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = ErrTruncatedNode
	}
	return &OffsetError{Offset: offset, Err: err}
}

// Decode materializes the tree encoded in r. An empty stream or a stream
// whose root marker is absent yields a nil tree. Bytes following the tree
// are ignored.
func Decode(r io.Reader) (*Node, error) {
	nr := newNodeReader(r)

	var root *Node
	slots := []**Node{&root}
	for len(slots) > 0 {
		slot := slots[len(slots)-1]
		slots = slots[:len(slots)-1]

		present, id, min, max, err := nr.next(slot == &root)
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if !present {
			continue
		}

		node := &Node{ID: id, Min: min.Vec3d(), Max: max.Vec3d()}
		*slot = node
		slots = append(slots, &node.Right, &node.Left)
	}

	return root, nil
}

type streamPending struct {
	depth  int
	parent int

	// Right-child slots remember whether their left sibling was absent so
	// that leaves can be counted without lookahead past the right marker.
	right      bool
	leftAbsent bool
}

// Walk streams the tree encoded in r, invoking fn for every present node in
// pre-order without materializing the tree. Memory use is bounded by the
// tree height. A nil fn only collects statistics. The returned stats cover
// the nodes read so far, also when an error aborts the walk.
func Walk(r io.Reader, fn VisitFunc) (Stats, error) {
	s := Stats{MaxDepth: -1}
	nr := newNodeReader(r)

	stack := []streamPending{{parent: -1}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		present, id, min, max, err := nr.next(s.Nodes == 0 && top.parent == -1)
		if err == io.EOF {
			return s, nil
		}
		if err != nil {
			return s, err
		}
		if !present {
			if top.right && top.leftAbsent {
				s.Leaves++
			}
			continue
		}

		index := s.Nodes
		hasLeft := nr.hasLeft()
		s.addNode(top.depth, false)

		if fn != nil {
			err = fn(Visit{
				ID:      id,
				Min:     min.Vec3d(),
				Max:     max.Vec3d(),
				Depth:   top.depth,
				Index:   index,
				Parent:  top.parent,
				HasLeft: hasLeft,
			})
			if err != nil {
				return s, err
			}
		}

		stack = append(stack,
			streamPending{depth: top.depth + 1, parent: index, right: true, leftAbsent: !hasLeft},
			streamPending{depth: top.depth + 1, parent: index},
		)
	}

	return s, nil
}

// Scan streams the tree encoded in r and returns its shape statistics.
func Scan(r io.Reader) (Stats, error) {
	return Walk(r, nil)
}

// MaxDepth streams the tree encoded in r and returns the depth of its
// deepest node (root = 0), or -1 if the tree is empty.
func MaxDepth(r io.Reader) (int, error) {
	s, err := Scan(r)
	if err != nil {
		return -1, err
	}
	return s.MaxDepth, nil
}

// WriteBinary writes the tree in the producer's binary format. A nil root
// is written as a single absent marker.
func WriteBinary(w io.Writer, root *Node) error {
	bw := bufio.NewWriter(w)

	var rec [1 + payloadSize]byte
	stack := []*Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if node == nil {
			bw.WriteByte(markerAbsent)
			continue
		}

		rec[0] = markerPresent
		binary.LittleEndian.PutUint64(rec[1:], node.ID)
		putVec3(rec[9:], node.Min.Vec3())
		putVec3(rec[21:], node.Max.Vec3())
		bw.Write(rec[:])

		stack = append(stack, node.Right, node.Left)
	}

	return bw.Flush()
}

func putVec3(buf []byte, v types.Vec3) {
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v[i]))
	}
}
