package geometry

import (
	"errors"
	"fmt"

	"github.com/patricklbell/raytracer/bvh"
)

// ErrOrphanNode is returned when a visited node's parent has not been seen.
var ErrOrphanNode = errors.New("geometry: node visited before its parent")

// Group is a named collection of boxes. A group is opened at every node
// that branches; chains hanging off the right side of a node keep adding
// to the group of their parent.
type Group struct {
	Name  string `json:"name"`
	Depth int    `json:"depth"`

	// Pre-order index of the node that opened the group.
	Index int `json:"index"`

	Mesh     *Mesh    `json:"mesh"`
	Children []*Group `json:"children,omitempty"`
}

// Count returns the number of groups in the subtree rooted at g.
func (g *Group) Count() int {
	count := 0
	stack := []*Group{g}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		stack = append(stack, top.Children...)
	}
	return count
}

// Boxes returns the number of boxes in the subtree rooted at g.
func (g *Group) Boxes() int {
	boxes := 0
	stack := []*Group{g}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		boxes += top.Mesh.Boxes
		stack = append(stack, top.Children...)
	}
	return boxes
}

// GroupName returns the name of the group opened at the given node.
func GroupName(depth, index int) string {
	return fmt.Sprintf("BVH_Node_Collection_%d_%d", depth, index)
}

type ancestor struct {
	index int
	group *Group
}

// Grouper builds a group tree from a pre-order node visit sequence. It only
// remembers the path from the root to the current node, so memory use is
// bounded by the tree height plus the produced geometry.
type Grouper struct {
	opts Options
	root *Group
	path []ancestor
}

// NewGrouper creates an empty grouper.
func NewGrouper(opts Options) *Grouper {
	return &Grouper{opts: opts}
}

// Add places the box of a visited node. It can be passed straight to a bvh
// walk.
func (g *Grouper) Add(v bvh.Visit) error {
	for len(g.path) > 0 && g.path[len(g.path)-1].index != v.Parent {
		g.path = g.path[:len(g.path)-1]
	}

	var parent *Group
	switch {
	case v.Parent < 0:
		if g.root != nil {
			return fmt.Errorf("geometry: second root at index %d", v.Index)
		}
	case len(g.path) == 0:
		return fmt.Errorf("%w: node %d, parent %d", ErrOrphanNode, v.Index, v.Parent)
	default:
		parent = g.path[len(g.path)-1].group
	}

	group := parent
	if parent == nil || v.HasLeft {
		group = &Group{
			Name:  GroupName(v.Depth, v.Index),
			Depth: v.Depth,
			Index: v.Index,
			Mesh:  NewMesh(GroupName(v.Depth, v.Index), g.opts.DepthColor(v.Depth)),
		}
		if parent == nil {
			g.root = group
		} else {
			parent.Children = append(parent.Children, group)
		}
	}

	group.Mesh.AddBox(NewBox(v.Min, v.Max, v.Depth, g.opts))
	g.path = append(g.path, ancestor{index: v.Index, group: group})
	return nil
}

// Root returns the top level group or nil if no node was added.
func (g *Grouper) Root() *Group {
	return g.root
}
