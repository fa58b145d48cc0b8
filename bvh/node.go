// Package bvh decodes bounding volume hierarchy dumps written by the LBVH
// builder. Two encodings of the same pre-order binary tree are supported:
//
//	text:   "LBVH 1" header, then "NODE <id> minx miny minz maxx maxy maxz" or "NULL" lines
//	binary: marker byte (0 = absent), u64 id, 3 x f32 min, 3 x f32 max, left, right
//
// Every node is followed by the encoding of its left and then its right
// subtree; absent children are always spelled out. All traversals use an
// explicit stack so arbitrarily skewed trees do not grow the call stack.
package bvh

import (
	"github.com/patricklbell/raytracer/types"
)

// Node is a decoded BVH node. Each node exclusively owns its children.
type Node struct {
	// The producer stores 0 on internal nodes and primitive index + 1 on
	// leaves. Text dumps carry a pre-order counter instead.
	ID uint64

	Min types.Vec3d
	Max types.Vec3d

	Left  *Node
	Right *Node
}

// IsLeaf returns true if the node has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Center returns the midpoint of the node bounds.
func (n *Node) Center() types.Vec3d {
	return n.Min.Add(n.Max).Mul(0.5)
}

// Size returns the extent of the node bounds.
func (n *Node) Size() types.Vec3d {
	return n.Max.Sub(n.Min)
}

// Visit describes a node reached during a pre-order traversal.
type Visit struct {
	ID  uint64
	Min types.Vec3d
	Max types.Vec3d

	// Distance from the root; the root has depth 0.
	Depth int

	// Pre-order index of this node and of its parent (-1 for the root).
	Index  int
	Parent int

	// True if the node has a left child, i.e. the subtree branches here.
	HasLeft bool
}

// VisitFunc is invoked for every present node in pre-order. Returning an
// error aborts the traversal.
type VisitFunc func(v Visit) error

type pending struct {
	node   *Node
	depth  int
	parent int
}

// Walk visits the tree rooted at n in pre-order (node, left, right).
func (n *Node) Walk(fn VisitFunc) error {
	if n == nil {
		return nil
	}

	index := 0
	stack := []pending{{node: n, parent: -1}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := top.node
		err := fn(Visit{
			ID:      node.ID,
			Min:     node.Min,
			Max:     node.Max,
			Depth:   top.depth,
			Index:   index,
			Parent:  top.parent,
			HasLeft: node.Left != nil,
		})
		if err != nil {
			return err
		}

		if node.Right != nil {
			stack = append(stack, pending{node: node.Right, depth: top.depth + 1, parent: index})
		}
		if node.Left != nil {
			stack = append(stack, pending{node: node.Left, depth: top.depth + 1, parent: index})
		}
		index++
	}

	return nil
}

// Stats returns node, leaf and depth counts for the tree rooted at n.
func (n *Node) Stats() Stats {
	s := Stats{MaxDepth: -1}
	if n == nil {
		return s
	}

	stack := []pending{{node: n}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		s.addNode(top.depth, top.node.IsLeaf())
		if top.node.Left != nil {
			stack = append(stack, pending{node: top.node.Left, depth: top.depth + 1})
		}
		if top.node.Right != nil {
			stack = append(stack, pending{node: top.node.Right, depth: top.depth + 1})
		}
	}
	return s
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	return n.Stats().Nodes
}

// Depth returns the maximum node depth (root = 0) or -1 for an empty tree.
func (n *Node) Depth() int {
	return n.Stats().MaxDepth
}
