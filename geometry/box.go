package geometry

import (
	"github.com/chewxy/math32"

	"github.com/patricklbell/raytracer/coord"
	"github.com/patricklbell/raytracer/types"
)

// Corners of a unit cube centered at the origin. Indices 0-3 are the
// bottom face and 4-7 the top face, both counter-clockwise.
var unitCube = [8]types.Vec3{
	{-0.5, -0.5, -0.5},
	{+0.5, -0.5, -0.5},
	{+0.5, +0.5, -0.5},
	{-0.5, +0.5, -0.5},
	{-0.5, -0.5, +0.5},
	{+0.5, -0.5, +0.5},
	{+0.5, +0.5, +0.5},
	{-0.5, +0.5, +0.5},
}

var cubeEdges = [12][2]uint32{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Quads used when a box needs to be closed, e.g. for STL export.
var cubeFaces = [6][4]uint32{
	{0, 1, 2, 3},
	{4, 5, 6, 7},
	{0, 1, 5, 4},
	{1, 2, 6, 5},
	{2, 3, 7, 6},
	{3, 0, 4, 7},
}

// Box is an axis aligned box in viewer coordinates.
type Box struct {
	Center types.Vec3
	Extent types.Vec3
}

// NewBox projects a node's bounds into viewer coordinates. The bounds are
// grown by depth*opts.Inflation on every side and then sanitized; min and
// max themselves are not modified.
func NewBox(min, max types.Vec3d, depth int, opts Options) Box {
	grow := float64(depth) * opts.Inflation
	lo := Sanitize(min.Sub(types.Vec3d{grow, grow, grow}).Vec3(), opts.SanitizeBound)
	hi := Sanitize(max.Add(types.Vec3d{grow, grow, grow}).Vec3(), opts.SanitizeBound)

	return Box{
		Center: coord.ToTarget(lo.Add(hi).Mul(0.5)),
		Extent: coord.ToTargetExtent(hi.Sub(lo)),
	}
}

// Corners returns the unit cube template scaled by the box extent and
// translated to its center.
func (b Box) Corners() []types.Vec3 {
	out := make([]types.Vec3, len(unitCube))
	for i, c := range unitCube {
		out[i] = b.Center.Add(c.MulVec(b.Extent))
	}
	return out
}

// Min returns the lowest corner of the box.
func (b Box) Min() types.Vec3 {
	return b.Center.Sub(b.Extent.Mul(0.5))
}

// Max returns the highest corner of the box.
func (b Box) Max() types.Vec3 {
	return b.Center.Add(b.Extent.Mul(0.5))
}

// Sanitize replaces NaN components with 0 and clamps the rest (including
// infinities) to [-bound, bound]. A non-positive bound clamps to the float32
// range instead, so the result is always finite.
func Sanitize(v types.Vec3, bound float32) types.Vec3 {
	if bound <= 0 {
		bound = math32.MaxFloat32
	}
	for i, c := range v {
		if math32.IsNaN(c) {
			c = 0
		}
		v[i] = math32.Max(-bound, math32.Min(bound, c))
	}
	return v
}
