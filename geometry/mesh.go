package geometry

import (
	"github.com/patricklbell/raytracer/types"
)

// Mesh is a drawable wireframe: vertices plus index pairs for edges.
// Box meshes store 8 consecutive vertices per box in unit cube order.
type Mesh struct {
	Name     string       `json:"name"`
	Color    types.Vec4   `json:"color"`
	Vertices []types.Vec3 `json:"vertices"`
	Edges    [][2]uint32  `json:"edges,omitempty"`

	// Number of boxes appended with AddBox.
	Boxes int `json:"boxes,omitempty"`
}

// NewMesh creates an empty named mesh.
func NewMesh(name string, color types.Vec4) *Mesh {
	return &Mesh{Name: name, Color: color}
}

// IsEmpty returns true if the mesh has no vertices.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// AddPoint appends a lone vertex.
func (m *Mesh) AddPoint(p types.Vec3) {
	m.Vertices = append(m.Vertices, p)
}

// AddSegment appends a line segment from a to b.
func (m *Mesh) AddSegment(a, b types.Vec3) {
	idx := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, a, b)
	m.Edges = append(m.Edges, [2]uint32{idx, idx + 1})
}

// AddBox appends the 8 corners and 12 edges of a box.
func (m *Mesh) AddBox(b Box) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, b.Corners()...)
	for _, e := range cubeEdges {
		m.Edges = append(m.Edges, [2]uint32{base + e[0], base + e[1]})
	}
	m.Boxes++
}

// Box returns the corners of the i-th box added with AddBox.
func (m *Mesh) Box(i int) []types.Vec3 {
	return m.Vertices[i*8 : i*8+8]
}

// Triangles closes every box of the mesh into 12 triangles, two per face.
// Segments and points are skipped.
func (m *Mesh) Triangles() [][3]types.Vec3 {
	out := make([][3]types.Vec3, 0, m.Boxes*2*len(cubeFaces))
	for i := 0; i < m.Boxes; i++ {
		corners := m.Box(i)
		for _, f := range cubeFaces {
			out = append(out,
				[3]types.Vec3{corners[f[0]], corners[f[1]], corners[f[2]]},
				[3]types.Vec3{corners[f[0]], corners[f[2]], corners[f[3]]},
			)
		}
	}
	return out
}
