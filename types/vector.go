package types

import (
	"golang.org/x/image/math/f32"
)

// Vec3 is the single precision vector used for all projected geometry and
// for the float32 fields of the dump formats.
type Vec3 f32.Vec3

// Vec4 holds RGBA colors.
type Vec4 f32.Vec4

// Vec3d is the double precision vector produced by the text BVH parser.
type Vec3d [3]float64

// Define a 3 component vector.
func XYZ(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Define a 4 component vector.
func XYZW(x, y, z, w float32) Vec4 {
	return Vec4{x, y, z, w}
}

// Add a vector.
func (v Vec3) Add(v2 Vec3) Vec3 {
	return Vec3{v[0] + v2[0], v[1] + v2[1], v[2] + v2[2]}
}

// Subtract a vector.
func (v Vec3) Sub(v2 Vec3) Vec3 {
	return Vec3{v[0] - v2[0], v[1] - v2[1], v[2] - v2[2]}
}

// Multiply a 3 component vector with a scalar.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Component-wise multiplication.
func (v Vec3) MulVec(v2 Vec3) Vec3 {
	return Vec3{v[0] * v2[0], v[1] * v2[1], v[2] * v2[2]}
}

// Widen to double precision.
func (v Vec3) Vec3d() Vec3d {
	return Vec3d{float64(v[0]), float64(v[1]), float64(v[2])}
}

// Add a vector.
func (v Vec3d) Add(v2 Vec3d) Vec3d {
	return Vec3d{v[0] + v2[0], v[1] + v2[1], v[2] + v2[2]}
}

// Subtract a vector.
func (v Vec3d) Sub(v2 Vec3d) Vec3d {
	return Vec3d{v[0] - v2[0], v[1] - v2[1], v[2] - v2[2]}
}

// Multiply a 3 component vector with a scalar.
func (v Vec3d) Mul(s float64) Vec3d {
	return Vec3d{v[0] * s, v[1] * s, v[2] * s}
}

// Narrow to single precision. Values outside the float32 range become +/-Inf.
func (v Vec3d) Vec3() Vec3 {
	return Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

// Linear interpolation between two colors; t is clamped to [0, 1].
func (v Vec4) Lerp(v2 Vec4, t float32) Vec4 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Vec4{
		v[0] + (v2[0]-v[0])*t,
		v[1] + (v2[1]-v[1])*t,
		v[2] + (v2[2]-v[2])*t,
		v[3] + (v2[3]-v[3])*t,
	}
}

// Calc min component from two vectors
func MinVec3(v1, v2 Vec3) Vec3 {
	out := v1
	if v2[0] < out[0] {
		out[0] = v2[0]
	}
	if v2[1] < out[1] {
		out[1] = v2[1]
	}
	if v2[2] < out[2] {
		out[2] = v2[2]
	}
	return out
}

// Calc max component from two vectors
func MaxVec3(v1, v2 Vec3) Vec3 {
	out := v1
	if v2[0] > out[0] {
		out[0] = v2[0]
	}
	if v2[1] > out[1] {
		out[1] = v2[1]
	}
	if v2[2] > out[2] {
		out[2] = v2[2]
	}
	return out
}
