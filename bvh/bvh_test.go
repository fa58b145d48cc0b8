package bvh

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"

	"github.com/patricklbell/raytracer/types"
)

func leaf(id uint64, min, max types.Vec3d) *Node {
	return &Node{ID: id, Min: min, Max: max}
}

// randomTree builds a tree whose coordinates are exactly representable as
// float32 and as 6-decimal text.
func randomTree(rng *rand.Rand, depth int) *Node {
	if depth < 0 || rng.Intn(5) == 0 {
		return nil
	}
	coord := func() float64 { return float64(rng.Intn(4096)-2048) / 8 }
	min := types.Vec3d{coord(), coord(), coord()}
	n := &Node{
		ID:  uint64(rng.Intn(1 << 20)),
		Min: min,
		Max: min.Add(types.Vec3d{1.5, 2.25, 0.125}),
	}
	n.Left = randomTree(rng, depth-1)
	n.Right = randomTree(rng, depth-1)
	return n
}

// chain builds a left-skewed tree with n nodes.
func chain(n int) *Node {
	var root *Node
	for i := n - 1; i >= 0; i-- {
		root = &Node{ID: uint64(i), Max: types.Vec3d{1, 1, 1}, Left: root}
	}
	return root
}

func encodeBinary(t *testing.T, root *Node) []byte {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, root))
	return buf.Bytes()
}

func TestTextSingleLeaf(t *testing.T) {
	root, err := ParseText([]string{"LBVH", "NODE 0 0 0 0 1 1 1", "NULL", "NULL"})
	require.NoError(t, err)
	require.Equal(t, leaf(0, types.Vec3d{0, 0, 0}, types.Vec3d{1, 1, 1}), root)
	require.True(t, root.IsLeaf())
}

func TestBinarySingleLeafMatchesText(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(1)
	binary.Write(&buf, binary.LittleEndian, uint64(0))
	binary.Write(&buf, binary.LittleEndian, [3]float32{0, 0, 0})
	binary.Write(&buf, binary.LittleEndian, [3]float32{1, 1, 1})
	buf.Write([]byte{0, 0})
	require.Equal(t, 1+payloadSize+2, buf.Len())

	fromBinary, err := Decode(&buf)
	require.NoError(t, err)

	fromText, err := ParseText([]string{"LBVH", "NODE 0 0 0 0 1 1 1", "NULL", "NULL"})
	require.NoError(t, err)
	require.Equal(t, fromText, fromBinary)
}

func TestBinaryRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		tree := randomTree(rng, 8)
		data := encodeBinary(t, tree)

		decoded, err := Decode(iotest.OneByteReader(bytes.NewReader(data)))
		require.NoError(t, err)
		require.Equal(t, tree, decoded)
		require.Equal(t, tree.Stats(), decoded.Stats())

		scanned, err := Scan(bytes.NewReader(data))
		require.NoError(t, err)
		require.Equal(t, tree.Stats(), scanned)
	}
}

func TestTextRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tree := randomTree(rng, 6)
	for tree == nil {
		tree = randomTree(rng, 6)
	}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, tree))
	require.True(t, strings.HasPrefix(buf.String(), "LBVH 1\n"))

	decoded, err := ReadText(&buf)
	require.NoError(t, err)
	require.Equal(t, tree, decoded)
}

func TestParseNodeReturnsNextLine(t *testing.T) {
	lines := []string{"NODE 3 0 0 0 1 1 1", "NULL", "NULL", "trailing", "document"}
	root, next, err := ParseNode(lines, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(3), root.ID)
	require.Equal(t, 3, next)

	root, next, err = ParseNode([]string{"NULL"}, 0)
	require.NoError(t, err)
	require.Nil(t, root)
	require.Equal(t, 1, next)
}

func TestTextErrors(t *testing.T) {
	specs := []struct {
		lines   []string
		expErr  error
		expLine int
	}{
		{[]string{}, ErrMissingMarker, 0},
		{[]string{"NODE 0 0 0 0 1 1 1", "NULL", "NULL"}, ErrMissingMarker, 0},
		{[]string{"LBVH"}, ErrUnexpectedEndOfInput, 2},
		{[]string{"LBVH 1", "NODE 0 0 0 0 1 1 1"}, ErrUnexpectedEndOfInput, 3},
		{[]string{"LBVH 1", "NODE 0 0 0 0 1 1 1", "NULL"}, ErrUnexpectedEndOfInput, 4},
		{[]string{"LBVH 1", "NODE 0 0 0 0 1 1", "NULL", "NULL"}, ErrMalformedLine, 2},
		{[]string{"LBVH 1", "NODE 0 0 0 0 1 one 1", "NULL", "NULL"}, ErrMalformedLine, 2},
		{[]string{"LBVH 1", "NODE x 0 0 0 1 1 1", "NULL", "NULL"}, ErrMalformedLine, 2},
		{[]string{"LBVH 1", "NODE 0 0 0 0 1 1 1", "LEAF 1 0 0 0 1 1 1 1", "NULL"}, ErrMalformedLine, 3},
	}

	for idx, spec := range specs {
		_, err := ParseText(spec.lines)
		require.Truef(t, errors.Is(err, spec.expErr), "[spec %d] expected %v; got %v", idx, spec.expErr, err)

		var lerr *LineError
		if spec.expLine > 0 {
			require.Truef(t, errors.As(err, &lerr), "[spec %d] expected a LineError; got %T", idx, err)
			require.Equalf(t, spec.expLine, lerr.Line, "[spec %d]", idx)
		}
	}
}

func TestTextNumericIDs(t *testing.T) {
	specs := map[string]uint64{
		"7":    7,
		"3.0":  3,
		"-1":   0,
		"2.5":  0,
		"1e3":  1000,
		"-0.0": 0,
	}

	for token, expID := range specs {
		root, err := ParseText([]string{"LBVH 1", "NODE " + token + " 0 0 0 1 1 1", "NULL", "NULL"})
		require.NoErrorf(t, err, "id %q", token)
		require.Equalf(t, expID, root.ID, "id %q", token)
	}
}

func TestReadTextReportsSourceLines(t *testing.T) {
	src := "\n  LBVH 1\n\nNODE 0 0 0 0 1 1 1\n\n   NULL  \nNODE 1 0 0 0 1 nan? 1\n"
	_, err := ReadText(strings.NewReader(src))

	var lerr *LineError
	require.True(t, errors.As(err, &lerr))
	require.Equal(t, 7, lerr.Line)
	require.True(t, errors.Is(err, ErrMalformedLine))

	_, err = ReadText(strings.NewReader("LBVH 1\nNODE 0 0 0 0 1 1 1\n\n"))
	require.True(t, errors.As(err, &lerr))
	require.True(t, errors.Is(err, ErrUnexpectedEndOfInput))
	require.Equal(t, 4, lerr.Line)
}

func TestBinaryTruncation(t *testing.T) {
	tree := &Node{ID: 0, Max: types.Vec3d{1, 1, 1}, Left: leaf(1, types.Vec3d{}, types.Vec3d{1, 1, 1})}
	data := encodeBinary(t, tree)

	// Cut inside the root payload, inside the child payload and before the
	// final NULL marker.
	for _, cut := range []int{1, 10, 1 + payloadSize + 5, len(data) - 1} {
		_, err := Decode(bytes.NewReader(data[:cut]))
		require.Truef(t, errors.Is(err, ErrTruncatedNode), "cut at %d: got %v", cut, err)

		_, err = Walk(bytes.NewReader(data[:cut]), func(Visit) error { return nil })
		require.Truef(t, errors.Is(err, ErrTruncatedNode), "cut at %d: got %v", cut, err)

		_, err = MaxDepth(bytes.NewReader(data[:cut]))
		require.Truef(t, errors.Is(err, ErrTruncatedNode), "cut at %d: got %v", cut, err)
	}

	_, err := Decode(bytes.NewReader(data[:1+payloadSize+3]))
	var oerr *OffsetError
	require.True(t, errors.As(err, &oerr))
	require.Equal(t, int64(1+payloadSize), oerr.Offset)
}

func TestEmptyBinaryStreams(t *testing.T) {
	root, err := Decode(bytes.NewReader(nil))
	require.NoError(t, err)
	require.Nil(t, root)

	root, err = Decode(bytes.NewReader([]byte{0}))
	require.NoError(t, err)
	require.Nil(t, root)

	depth, err := MaxDepth(bytes.NewReader(nil))
	require.NoError(t, err)
	require.Equal(t, -1, depth)

	stats, err := Walk(bytes.NewReader([]byte{0}), func(Visit) error { return nil })
	require.NoError(t, err)
	require.Equal(t, 0, stats.Nodes)
	require.Equal(t, -1, stats.MaxDepth)
}

func TestStreamingWalk(t *testing.T) {
	//        0
	//      /   \
	//     1     4
	//    / \     \
	//   2   3     5
	//              \
	//               6
	unit := types.Vec3d{1, 1, 1}
	tree := &Node{ID: 0, Max: unit,
		Left: &Node{ID: 1, Max: unit,
			Left:  leaf(2, types.Vec3d{}, unit),
			Right: leaf(3, types.Vec3d{}, unit),
		},
		Right: &Node{ID: 4, Max: unit,
			Right: &Node{ID: 5, Max: unit,
				Right: leaf(6, types.Vec3d{}, unit),
			},
		},
	}

	var streamed, walked []Visit
	streamedStats, err := Walk(bytes.NewReader(encodeBinary(t, tree)), func(v Visit) error {
		streamed = append(streamed, v)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 7, streamedStats.Nodes)

	require.NoError(t, tree.Walk(func(v Visit) error {
		walked = append(walked, v)
		return nil
	}))
	require.Equal(t, walked, streamed)

	expIDs := []uint64{0, 1, 2, 3, 4, 5, 6}
	expDepth := []int{0, 1, 2, 2, 1, 2, 3}
	expParent := []int{-1, 0, 1, 1, 0, 4, 5}
	expLeft := []bool{true, true, false, false, false, false, false}
	for i, v := range streamed {
		require.Equal(t, expIDs[i], v.ID)
		require.Equal(t, i, v.Index)
		require.Equal(t, expDepth[i], v.Depth)
		require.Equal(t, expParent[i], v.Parent)
		require.Equal(t, expLeft[i], v.HasLeft)
	}

	depth, err := MaxDepth(bytes.NewReader(encodeBinary(t, tree)))
	require.NoError(t, err)
	require.Equal(t, 3, depth)

	stats := tree.Stats()
	require.Equal(t, Stats{Nodes: 7, Leaves: 3, MaxDepth: 3, PerDepth: []int{1, 2, 3, 1}}, stats)
	require.Equal(t, 4, stats.Internal())
	require.Equal(t, stats, streamedStats)
}

func TestWalkAbortsOnVisitorError(t *testing.T) {
	stop := errors.New("stop")
	stats, err := Walk(bytes.NewReader(encodeBinary(t, chain(10))), func(v Visit) error {
		if v.Index == 3 {
			return stop
		}
		return nil
	})
	require.Equal(t, stop, err)
	require.Equal(t, 4, stats.Nodes)
}

func TestDeeplySkewedTrees(t *testing.T) {
	const n = 200000
	tree := chain(n)
	data := encodeBinary(t, tree)

	depth, err := MaxDepth(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, n-1, depth)

	decoded, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, n, decoded.Count())
	require.Equal(t, n-1, decoded.Depth())

	var text bytes.Buffer
	require.NoError(t, WriteText(&text, decoded))
	fromText, err := ReadText(&text)
	require.NoError(t, err)
	require.Equal(t, n-1, fromText.Depth())
}

func TestNodeGeometryHelpers(t *testing.T) {
	n := leaf(1, types.Vec3d{-1, 0, 2}, types.Vec3d{1, 4, 3})
	require.Equal(t, types.Vec3d{0, 2, 2.5}, n.Center())
	require.Equal(t, types.Vec3d{2, 4, 1}, n.Size())

	var empty *Node
	require.Equal(t, 0, empty.Count())
	require.Equal(t, -1, empty.Depth())
}
