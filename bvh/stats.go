package bvh

// Stats summarizes the shape of a BVH.
type Stats struct {
	Nodes  int
	Leaves int

	// Deepest node depth (root = 0); -1 for an empty tree.
	MaxDepth int

	// Number of nodes at each depth.
	PerDepth []int
}

// Internal returns the number of nodes with at least one child.
func (s Stats) Internal() int {
	return s.Nodes - s.Leaves
}

func (s *Stats) addNode(depth int, leaf bool) {
	s.Nodes++
	if leaf {
		s.Leaves++
	}
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
	for len(s.PerDepth) <= depth {
		s.PerDepth = append(s.PerDepth, 0)
	}
	s.PerDepth[depth]++
}
