package geometry

import (
	"github.com/patricklbell/raytracer/bvh"
)

// TreeGeometry is the projection of a BVH. Exactly one of Layers or Groups
// is populated, depending on Mode.
type TreeGeometry struct {
	Mode   Mode
	Layers *Layers
	Groups *Group
}

// Meshes returns every mesh of the projection. Group meshes are listed in
// pre-order.
func (t *TreeGeometry) Meshes() []*Mesh {
	if t.Mode == Flat {
		if t.Layers == nil {
			return nil
		}
		return t.Layers.Meshes()
	}

	var out []*Mesh
	if t.Groups == nil {
		return out
	}
	stack := []*Group{t.Groups}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, top.Mesh)
		for i := len(top.Children) - 1; i >= 0; i-- {
			stack = append(stack, top.Children[i])
		}
	}
	return out
}

// ProjectTree projects an in-memory tree using the given mode.
func ProjectTree(root *bvh.Node, mode Mode, opts Options) (*TreeGeometry, error) {
	out := &TreeGeometry{Mode: mode}

	switch mode {
	case Grouping:
		grouper := NewGrouper(opts)
		if err := root.Walk(grouper.Add); err != nil {
			return nil, err
		}
		out.Groups = grouper.Root()
	default:
		out.Mode = Flat
		out.Layers = NewLayers(root.Depth(), opts)
		if err := root.Walk(out.Layers.Add); err != nil {
			return nil, err
		}
	}

	return out, nil
}
