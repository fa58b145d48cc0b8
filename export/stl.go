package export

import (
	"errors"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/patricklbell/raytracer/geometry"
	"github.com/patricklbell/raytracer/types"
)

// ErrNoBoxes is returned by WriteSTL when none of the meshes hold boxes.
var ErrNoBoxes = errors.New("export: no boxes to write")

// Solid converts the boxes of meshes into closed triangle soup. Ray and
// point meshes contribute nothing.
func Solid(meshes []*geometry.Mesh) []*sdf.Triangle3 {
	var out []*sdf.Triangle3
	for _, m := range meshes {
		for _, tri := range m.Triangles() {
			out = append(out, &sdf.Triangle3{vec(tri[0]), vec(tri[1]), vec(tri[2])})
		}
	}
	return out
}

// WriteSTL saves the boxes of meshes as a binary STL file.
func WriteSTL(path string, meshes []*geometry.Mesh) (int, error) {
	solid := Solid(meshes)
	if len(solid) == 0 {
		return 0, ErrNoBoxes
	}
	return len(solid), render.SaveSTL(path, solid)
}

func vec(v types.Vec3) v3.Vec {
	return v3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}
