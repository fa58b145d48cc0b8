package bvh

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/patricklbell/raytracer/types"
)

const (
	textMarker = "LBVH"
	textNode   = "NODE"
	textNull   = "NULL"

	// NODE <id> <min.x> <min.y> <min.z> <max.x> <max.y> <max.z>
	nodeTokens = 8
)

// ReadText reads a text dump, dropping blank lines and surrounding
// whitespace, and parses it with ParseText. Errors report the line number
// in the original input.
func ReadText(r io.Reader) (*Node, error) {
	var (
		lines   []string
		lineNum []int
		num     int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		num++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
		lineNum = append(lineNum, num)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	root, err := ParseText(lines)
	if lerr, ok := err.(*LineError); ok {
		if lerr.Line-1 < len(lineNum) {
			lerr.Line = lineNum[lerr.Line-1]
		} else {
			lerr.Line = num + 1
		}
	}
	return root, err
}

// ParseText parses non-empty, trimmed lines. The first line must start with
// LBVH; the tree follows on the remaining lines. A NULL root yields a nil
// tree. Lines after the tree are ignored.
func ParseText(lines []string) (*Node, error) {
	if len(lines) == 0 || !strings.HasPrefix(lines[0], textMarker) {
		return nil, ErrMissingMarker
	}

	root, _, err := ParseNode(lines, 1)
	return root, err
}

// ParseNode parses the subtree starting at lines[idx] and returns it along
// with the index of the first unconsumed line.
func ParseNode(lines []string, idx int) (*Node, int, error) {
	var root *Node

	// Slots still waiting for a subtree, popped in pre-order.
	slots := []**Node{&root}
	for len(slots) > 0 {
		slot := slots[len(slots)-1]
		slots = slots[:len(slots)-1]

		if idx >= len(lines) {
			return nil, idx, &LineError{Line: idx + 1, Err: ErrUnexpectedEndOfInput}
		}

		line := lines[idx]
		idx++
		if line == textNull {
			continue
		}

		node, err := parseNodeLine(line)
		if err != nil {
			return nil, idx, &LineError{Line: idx, Text: line, Err: err}
		}

		*slot = node
		slots = append(slots, &node.Right, &node.Left)
	}

	return root, idx, nil
}

func parseNodeLine(line string) (*Node, error) {
	tokens := strings.Fields(line)
	if len(tokens) < nodeTokens || tokens[0] != textNode {
		return nil, ErrMalformedLine
	}

	id, err := parseID(tokens[1])
	if err != nil {
		return nil, err
	}

	var coords [6]float64
	for i := range coords {
		coords[i], err = strconv.ParseFloat(tokens[2+i], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad coordinate %q", ErrMalformedLine, tokens[2+i])
		}
	}

	return &Node{
		ID:  id,
		Min: types.Vec3d{coords[0], coords[1], coords[2]},
		Max: types.Vec3d{coords[3], coords[4], coords[5]},
	}, nil
}

// parseID accepts any numeric id token. Ids that are not non-negative
// integers (e.g. -1 or 2.5) carry no usable identity and map to 0.
func parseID(token string) (uint64, error) {
	if id, err := strconv.ParseUint(token, 10, 64); err == nil {
		return id, nil
	}

	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad id %q", ErrMalformedLine, token)
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxUint64 {
		return 0, nil
	}
	return uint64(f), nil
}

// WriteText writes the tree in the producer's text format.
func WriteText(w io.Writer, root *Node) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s 1\n", textMarker)

	stack := []*Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if node == nil {
			fmt.Fprintln(bw, textNull)
			continue
		}

		fmt.Fprintf(bw, "%s %d %f %f %f %f %f %f\n", textNode, node.ID,
			node.Min[0], node.Min[1], node.Min[2],
			node.Max[0], node.Max[1], node.Max[2],
		)
		stack = append(stack, node.Right, node.Left)
	}

	return bw.Flush()
}
