// Package coord converts between the producer's axes (Y up, X right, Z
// forward into the screen) and the viewer's axes (Z up, X right, Y forward).
//
// Points and directions go through ToTarget. Sizes go through
// ToTargetExtent, which permutes without negating so that a non-negative
// extent stays non-negative.
package coord

import "github.com/patricklbell/raytracer/types"

// ToTarget maps (x, y, z) to (x, -z, y).
func ToTarget(v types.Vec3) types.Vec3 {
	return types.Vec3{v[0], -v[2], v[1]}
}

// ToTargetExtent maps a size (x, y, z) to (x, z, y).
func ToTargetExtent(v types.Vec3) types.Vec3 {
	return types.Vec3{v[0], v[2], v[1]}
}

// FromTarget is the inverse of ToTarget: (x, y, z) maps to (x, z, -y).
func FromTarget(v types.Vec3) types.Vec3 {
	return types.Vec3{v[0], v[2], -v[1]}
}
