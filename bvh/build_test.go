package bvh

import (
	"bytes"
	"sort"
	"testing"

	"github.com/patricklbell/raytracer/types"
)

func cornerBoxes() []Bounds {
	return []Bounds{
		{types.Vec3d{-2, 0, -2}, types.Vec3d{-1, 1, -1}},
		{types.Vec3d{1, 0, -2}, types.Vec3d{2, 1, -1}},
		{types.Vec3d{-2, 0, 1}, types.Vec3d{-1, 1, 2}},
		{types.Vec3d{1, 0, 1}, types.Vec3d{2, 1, 2}},
	}
}

func TestBuildLeafSizes(t *testing.T) {
	// Partition each item in a single leaf
	root := Build(cornerBoxes(), 1)
	stats := root.Stats()
	if stats.Nodes != 7 {
		t.Fatalf("expected bvh tree to have 7 nodes; got %d", stats.Nodes)
	}
	if stats.Leaves != 4 {
		t.Fatalf("expected bvh tree to have 4 leaves; got %d", stats.Leaves)
	}

	var ids []int
	err := root.Walk(func(v Visit) error {
		if v.ID != 0 {
			ids = append(ids, int(v.ID))
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	sort.Ints(ids)
	if len(ids) != 4 || ids[0] != 1 || ids[3] != 4 {
		t.Fatalf("expected leaf ids 1..4; got %v", ids)
	}

	// Partition two items in a single leaf
	stats = Build(cornerBoxes(), 2).Stats()
	if stats.Nodes != 3 || stats.Leaves != 2 {
		t.Fatalf("expected 3 nodes and 2 leaves; got %d and %d", stats.Nodes, stats.Leaves)
	}
}

func TestBuildBreaksTiesByAxis(t *testing.T) {
	// Splitting along X or Z scores the same for the corner boxes.
	for i := 0; i < 20; i++ {
		left := Build(cornerBoxes(), 1).Left
		if left.Max[0] != -1 || left.Max[2] != 2 {
			t.Fatalf("expected the root to split along X; left child spans %v-%v", left.Min, left.Max)
		}
	}
}

func TestBuildRootBounds(t *testing.T) {
	root := Build(cornerBoxes(), 1)
	expMin := types.Vec3d{-2, 0, -2}
	expMax := types.Vec3d{2, 1, 2}
	if root.Min != expMin || root.Max != expMax {
		t.Fatalf("expected root bounds %v-%v; got %v-%v", expMin, expMax, root.Min, root.Max)
	}

	// Every child must be contained in its parent.
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range []*Node{n.Left, n.Right} {
			if child == nil {
				continue
			}
			for axis := 0; axis < 3; axis++ {
				if child.Min[axis] < n.Min[axis] || child.Max[axis] > n.Max[axis] {
					t.Fatalf("child %v-%v escapes parent %v-%v", child.Min, child.Max, n.Min, n.Max)
				}
			}
			stack = append(stack, child)
		}
	}
}

func TestBuildDegenerateInput(t *testing.T) {
	if Build(nil, 1) != nil {
		t.Fatal("expected nil tree for empty input")
	}

	// Identical boxes cannot be split.
	same := make([]Bounds, 5)
	for i := range same {
		same[i] = Bounds{types.Vec3d{0, 0, 0}, types.Vec3d{1, 1, 1}}
	}
	root := Build(same, 1)
	if !root.IsLeaf() || root.ID != 1 {
		t.Fatalf("expected a single leaf with id 1; got %+v", root)
	}
}

func TestBuiltTreeRoundTrips(t *testing.T) {
	root := Build(cornerBoxes(), 1)

	var buf bytes.Buffer
	if err := WriteBinary(&buf, root); err != nil {
		t.Fatal(err)
	}
	stats, err := Scan(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Nodes != 7 || stats.MaxDepth != 2 {
		t.Fatalf("expected 7 nodes at max depth 2; got %d at %d", stats.Nodes, stats.MaxDepth)
	}
}
