package types

import (
	"math"
	"testing"
)

func TestVec3dNarrowing(t *testing.T) {
	v := Vec3d{1.5, -2, math.MaxFloat64}.Vec3()
	if v[0] != 1.5 || v[1] != -2 {
		t.Fatalf("expected (1.5, -2) in first two components; got %v", v)
	}
	if !math.IsInf(float64(v[2]), 1) {
		t.Fatalf("expected out of range component to narrow to +Inf; got %v", v[2])
	}
}

func TestVec3MinMax(t *testing.T) {
	a := XYZ(1, 5, -3)
	b := XYZ(2, -1, -4)

	if exp, got := XYZ(1, -1, -4), MinVec3(a, b); exp != got {
		t.Fatalf("expected min to be %v; got %v", exp, got)
	}
	if exp, got := XYZ(2, 5, -3), MaxVec3(a, b); exp != got {
		t.Fatalf("expected max to be %v; got %v", exp, got)
	}
}

func TestVec4Lerp(t *testing.T) {
	blue := XYZW(0, 0.2, 1, 1)
	red := XYZW(1, 0.2, 0, 1)

	if got := blue.Lerp(red, 0.5); got != XYZW(0.5, 0.2, 0.5, 1) {
		t.Fatalf("expected halfway color; got %v", got)
	}
	if got := blue.Lerp(red, 3); got != red {
		t.Fatalf("expected lerp factor to be clamped; got %v", got)
	}
}
