package geometry

import (
	"errors"
	"fmt"

	"github.com/patricklbell/raytracer/bvh"
)

// ErrDepthOutOfRange is returned when a node lies deeper than the depth the
// layers were sized for, e.g. because the source changed between passes.
var ErrDepthOutOfRange = errors.New("geometry: node depth exceeds layer count")

// Layers collects BVH boxes into one mesh per tree depth.
type Layers struct {
	opts   Options
	meshes []*Mesh
}

// NewLayers allocates a mesh for every depth in [0, maxDepth].
func NewLayers(maxDepth int, opts Options) *Layers {
	l := &Layers{opts: opts}
	if maxDepth < 0 {
		return l
	}

	l.meshes = make([]*Mesh, maxDepth+1)
	for depth := range l.meshes {
		l.meshes[depth] = NewMesh(LayerName(depth), opts.DepthColor(depth))
	}
	return l
}

// LayerName returns the mesh name used for a depth bucket.
func LayerName(depth int) string {
	return fmt.Sprintf("BVH_Depth_%d", depth)
}

// Add appends the box of a visited node to the mesh of its depth. It can
// be passed straight to a bvh walk.
func (l *Layers) Add(v bvh.Visit) error {
	if v.Depth < 0 || v.Depth >= len(l.meshes) {
		return fmt.Errorf("%w: depth %d, layers %d", ErrDepthOutOfRange, v.Depth, len(l.meshes))
	}
	l.meshes[v.Depth].AddBox(NewBox(v.Min, v.Max, v.Depth, l.opts))
	return nil
}

// Depths returns the number of depth buckets.
func (l *Layers) Depths() int {
	return len(l.meshes)
}

// Layer returns the mesh for a depth.
func (l *Layers) Layer(depth int) *Mesh {
	return l.meshes[depth]
}

// Meshes returns all depth meshes ordered by depth.
func (l *Layers) Meshes() []*Mesh {
	return l.meshes
}
